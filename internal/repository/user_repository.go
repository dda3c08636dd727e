package repository

import (
	"errors"
	"time"

	"github.com/jamolstroy/admin-api/internal/models"

	"gorm.io/gorm"
)

// UserRepository is the user data access interface.
type UserRepository interface {
	GetByID(id string) (*models.User, error)
	GetByTelegramID(telegramID string) (*models.User, error)
	GetAdminByTelegramID(telegramID string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdateTelegramProfile(id, firstName, lastName, username string) error
}

// GormUserRepository is the GORM implementation.
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository.
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID fetches a user by primary key.
func (r *GormUserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByTelegramID fetches a user by Telegram account id.
func (r *GormUserRepository) GetByTelegramID(telegramID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetAdminByTelegramID fetches a user only when the row carries the
// admin role. Matching in SQL keeps the role check atomic with the
// lookup.
func (r *GormUserRepository) GetAdminByTelegramID(telegramID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("telegram_id = ? AND role = ?", telegramID, string(models.RoleAdmin)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create inserts a user.
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update saves a user.
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// UpdateTelegramProfile refreshes the display fields captured from
// Telegram. The role column is deliberately not touched.
func (r *GormUserRepository) UpdateTelegramProfile(id, firstName, lastName, username string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"first_name": firstName,
		"last_name":  lastName,
		"username":   username,
		"updated_at": time.Now(),
	}).Error
}
