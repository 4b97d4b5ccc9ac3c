package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Module is one research source's practice bundle for a disease. A disease
// may carry several modules; each module exclusively owns its practices.
type Module struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	DiseaseID   uuid.UUID `gorm:"type:uuid;not null;index" json:"disease_id"`
	Disease     *Disease  `gorm:"constraint:OnDelete:CASCADE;foreignKey:DiseaseID;references:ID" json:"disease,omitempty"`
	DevelopedBy string    `gorm:"column:developed_by" json:"developed_by"`
	PaperLink   string    `gorm:"column:paper_link" json:"paper_link"`
	Description string    `gorm:"column:description" json:"description"`

	Practices []*Practice `gorm:"foreignKey:ModuleID;references:ID" json:"practices,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Module) TableName() string { return "module" }
