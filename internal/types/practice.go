package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Practice is a single prescribed practice inside a module.
//
// Code groups practices that are the same technique across modules: every
// practice sharing a Sanskrit name shares a code and vice versa. CVRScore is
// the one field that is module-local and never synchronized across a code
// group.
type Practice struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ModuleID *uuid.UUID `gorm:"type:uuid;index" json:"module_id,omitempty"`
	Module   *Module    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ModuleID;references:ID" json:"module,omitempty"`

	SanskritName string `gorm:"column:sanskrit_name" json:"sanskrit_name"`
	EnglishName  string `gorm:"column:english_name;not null" json:"english_name"`
	Category     string `gorm:"column:category;not null;index" json:"category"`
	SubCategory  string `gorm:"column:sub_category" json:"sub_category"`
	Kosha        string `gorm:"column:kosha;not null" json:"kosha"`
	Code         string `gorm:"column:code;index" json:"code"`

	Rounds               int     `gorm:"column:rounds" json:"rounds,omitempty"`
	TimeMinutes          float64 `gorm:"column:time_minutes" json:"time_minutes,omitempty"`
	StrokesPerMin        int     `gorm:"column:strokes_per_min" json:"strokes_per_min,omitempty"`
	StrokesPerCycle      int     `gorm:"column:strokes_per_cycle" json:"strokes_per_cycle,omitempty"`
	RestBetweenCyclesSec int     `gorm:"column:rest_between_cycles_sec" json:"rest_between_cycles_sec,omitempty"`

	Variations  datatypes.JSON `gorm:"column:variations;type:jsonb" json:"variations,omitempty"`
	Steps       datatypes.JSON `gorm:"column:steps;type:jsonb" json:"steps,omitempty"`
	Description string         `gorm:"column:description" json:"description,omitempty"`
	HowToDo     string         `gorm:"column:how_to_do" json:"how_to_do,omitempty"`

	CVRScore float64 `gorm:"column:cvr_score" json:"cvr_score"`
	RCTCount int     `gorm:"column:rct_count;not null;default:0" json:"rct_count"`

	PhotoPath string `gorm:"column:photo_path" json:"photo_path,omitempty"`
	VideoPath string `gorm:"column:video_path" json:"video_path,omitempty"`

	CitationID *uuid.UUID `gorm:"type:uuid;index" json:"citation_id,omitempty"`
	Citation   *Citation  `gorm:"constraint:OnDelete:SET NULL;foreignKey:CitationID;references:ID" json:"citation,omitempty"`

	Diseases []*Disease `gorm:"many2many:disease_practice" json:"diseases,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Practice) TableName() string { return "practice" }
