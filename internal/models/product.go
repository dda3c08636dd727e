package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product is a catalog item. Rental products carry a per-period price
// in addition to the sale price.
type Product struct {
	ID                 string         `gorm:"type:varchar(36);primarykey" json:"id"`
	CategoryID         string         `gorm:"type:varchar(36);not null;index" json:"category_id"`
	NameUz             string         `gorm:"type:varchar(300);not null" json:"name_uz"`
	NameRu             string         `gorm:"type:varchar(300)" json:"name_ru"`
	DescriptionUz      string         `gorm:"type:text" json:"description_uz"`
	DescriptionRu      string         `gorm:"type:text" json:"description_ru"`
	Price              Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	Unit               string         `gorm:"type:varchar(30);default:'dona'" json:"unit"`
	ProductType        string         `gorm:"type:varchar(20);not null;default:'sale'" json:"product_type"`
	RentalPricePerUnit *Money         `gorm:"type:decimal(20,2)" json:"rental_price_per_unit,omitempty"`
	RentalTimeUnit     string         `gorm:"type:varchar(10)" json:"rental_time_unit,omitempty"`
	Images             StringArray    `gorm:"type:json" json:"images"`
	StockQuantity      int            `gorm:"not null;default:0" json:"stock_quantity"`
	MinOrderQuantity   int            `gorm:"not null;default:1" json:"min_order_quantity"`
	ViewCount          int64          `gorm:"not null;default:0" json:"view_count"`
	IsAvailable        bool           `gorm:"default:true;index" json:"is_available"`
	IsFeatured         bool           `gorm:"default:false;index" json:"is_featured"`
	IsPopular          bool           `gorm:"default:false;index" json:"is_popular"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID primary key.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
