package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Citation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Text          string    `gorm:"column:text;not null" json:"text"`
	Type          string    `gorm:"column:type" json:"type"`
	FullReference string    `gorm:"column:full_reference" json:"full_reference"`
	URL           string    `gorm:"column:url" json:"url"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Citation) TableName() string { return "citation" }
