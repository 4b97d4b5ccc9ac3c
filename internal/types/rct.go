package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RCT is a randomized controlled trial record. Interventions is a JSON list
// of {practice, category} entries; an empty practice name means the entry
// covers the whole category.
type RCT struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Authors       string         `gorm:"column:authors" json:"authors"`
	Journal       string         `gorm:"column:journal" json:"journal"`
	Year          int            `gorm:"column:year" json:"year"`
	URL           string         `gorm:"column:url" json:"url"`
	Interventions datatypes.JSON `gorm:"column:interventions;type:jsonb" json:"interventions"`

	Symptoms []*RCTSymptom `gorm:"foreignKey:RCTID;references:ID" json:"symptoms,omitempty"`
	Diseases []*Disease    `gorm:"many2many:disease_rct" json:"diseases,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (RCT) TableName() string { return "rct" }

type RCTSymptom struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RCTID  uuid.UUID `gorm:"type:uuid;not null;index" json:"rct_id"`
	Name   string    `gorm:"column:name;not null" json:"name"`
	PValue float64   `gorm:"column:p_value" json:"p_value"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (RCTSymptom) TableName() string { return "rct_symptom" }

// RCTIntervention is one decoded entry of RCT.Interventions.
type RCTIntervention struct {
	Practice string `json:"practice"`
	Category string `json:"category"`
}

// DecodedInterventions parses the intervention list. Malformed JSON yields
// nil: historical import data must never block recommendation generation.
func (r *RCT) DecodedInterventions() []RCTIntervention {
	if len(r.Interventions) == 0 {
		return nil
	}
	var entries []RCTIntervention
	if err := json.Unmarshal(r.Interventions, &entries); err != nil {
		return nil
	}
	return entries
}
