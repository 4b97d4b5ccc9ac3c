package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contraindication forbids a practice identified by (english name, category).
// It fires whenever ANY of its linked diseases appears in the user's
// selection; there is no combination-specific keying.
type Contraindication struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PracticeEnglish  string    `gorm:"column:practice_english;not null" json:"practice_english"`
	PracticeSanskrit string    `gorm:"column:practice_sanskrit" json:"practice_sanskrit"`
	Category         string    `gorm:"column:category;not null" json:"category"`
	SubCategory      string    `gorm:"column:sub_category" json:"sub_category"`
	Reason           string    `gorm:"column:reason" json:"reason"`
	Source           string    `gorm:"column:source" json:"source"`

	Diseases []*Disease `gorm:"many2many:disease_contraindication" json:"diseases,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Contraindication) TableName() string { return "contraindication" }
