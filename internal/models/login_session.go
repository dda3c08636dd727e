package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jamolstroy/admin-api/internal/constants"
)

// WebsiteLoginSession is one browser login attempt awaiting a decision
// in the Telegram bot. TelegramID records who answered, UserID the
// account the browser is signed in as after approval.
type WebsiteLoginSession struct {
	ID         string     `gorm:"type:varchar(36);primarykey" json:"id"`
	TempToken  string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"temp_token"`
	ClientID   string     `gorm:"type:varchar(120);index" json:"client_id"`
	Status     string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	TelegramID *string    `gorm:"type:varchar(32)" json:"telegram_id,omitempty"`
	UserID     *string    `gorm:"type:varchar(36);index" json:"user_id,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	ExpiresAt  time.Time  `gorm:"index;not null" json:"expires_at"`
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName sets the table name.
func (WebsiteLoginSession) TableName() string {
	return "website_login_sessions"
}

// BeforeCreate assigns a UUID primary key.
func (s *WebsiteLoginSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

// IsExpired reports whether the session deadline has passed.
func (s *WebsiteLoginSession) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// IsPending reports whether the session can still be decided.
func (s *WebsiteLoginSession) IsPending() bool {
	return s.Status == constants.LoginStatusPending
}
