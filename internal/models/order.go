package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order is a customer order. CustomerName and CustomerPhone are
// denormalized at checkout so the row stays readable after the
// account changes.
type Order struct {
	ID              string         `gorm:"type:varchar(36);primarykey" json:"id"`
	OrderNumber     string         `gorm:"type:varchar(30);uniqueIndex;not null" json:"order_number"`
	UserID          *string        `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	CustomerName    string         `gorm:"type:varchar(240)" json:"customer_name"`
	CustomerPhone   string         `gorm:"type:varchar(32)" json:"customer_phone"`
	Status          string         `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TotalAmount     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`
	IsDelivery      bool           `gorm:"default:false" json:"is_delivery"`
	DeliveryAddress string         `gorm:"type:varchar(500)" json:"delivery_address,omitempty"`
	Notes           string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	User  *User       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate assigns a UUID primary key.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}
