package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IDs are assigned in code rather than by a database default so the same
// models work on both the postgres and embedded sqlite catalog stores.
type Disease struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description"`

	Modules           []*Module           `gorm:"foreignKey:DiseaseID;references:ID" json:"modules,omitempty"`
	Practices         []*Practice         `gorm:"many2many:disease_practice" json:"practices,omitempty"`
	Contraindications []*Contraindication `gorm:"many2many:disease_contraindication" json:"contraindications,omitempty"`
	RCTs              []*RCT              `gorm:"many2many:disease_rct" json:"rcts,omitempty"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Disease) TableName() string { return "disease" }
