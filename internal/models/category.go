package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category groups products. Names are kept per language, Uzbek first.
type Category struct {
	ID        string         `gorm:"type:varchar(36);primarykey" json:"id"`
	NameUz    string         `gorm:"type:varchar(200);not null" json:"name_uz"`
	NameRu    string         `gorm:"type:varchar(200)" json:"name_ru"`
	Icon      string         `gorm:"type:varchar(500)" json:"icon,omitempty"`
	SortOrder int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate assigns a UUID primary key.
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
