package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a store account. Admins are ordinary users whose role field
// is "admin"; the login flow never promotes anyone.
type User struct {
	ID          string         `gorm:"type:varchar(36);primarykey" json:"id"`
	TelegramID  *string        `gorm:"type:varchar(32);uniqueIndex" json:"telegram_id,omitempty"`
	FirstName   string         `gorm:"type:varchar(120)" json:"first_name"`
	LastName    string         `gorm:"type:varchar(120)" json:"last_name"`
	Username    string         `gorm:"type:varchar(120);index" json:"username"`
	PhoneNumber string         `gorm:"type:varchar(32)" json:"phone_number,omitempty"`
	Email       string         `gorm:"type:varchar(254)" json:"email,omitempty"`
	AvatarURL   string         `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	IsVerified  bool           `gorm:"default:false" json:"is_verified"`
	Role        string         `gorm:"type:varchar(20);not null;default:'customer';index" json:"role"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// BeforeCreate assigns a UUID primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ParsedRole validates the stored role value.
func (u *User) ParsedRole() (Role, error) {
	return ParseRole(u.Role)
}

// IsAdmin reports whether the stored role is a valid admin role.
func (u *User) IsAdmin() bool {
	role, err := u.ParsedRole()
	return err == nil && role.IsAdmin()
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
