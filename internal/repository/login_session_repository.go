package repository

import (
	"errors"
	"time"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/models"

	"gorm.io/gorm"
)

// LoginSessionRepository is the website login session data access
// interface. Status transitions are guarded in SQL so a session can
// leave "pending" at most once even under concurrent bot callbacks.
type LoginSessionRepository interface {
	Create(session *models.WebsiteLoginSession) error
	GetByToken(tempToken string) (*models.WebsiteLoginSession, error)
	GetApprovedByToken(tempToken string) (*models.WebsiteLoginSession, error)
	MarkApproved(tempToken, userID, telegramID string, approvedAt time.Time) (bool, error)
	MarkDecided(tempToken, status, telegramID string) (bool, error)
	ExpireToken(tempToken string) (bool, error)
	ExpireDue(now time.Time) (int64, error)
	PurgeBefore(cutoff time.Time) (int64, error)
}

// GormLoginSessionRepository is the GORM implementation.
type GormLoginSessionRepository struct {
	db *gorm.DB
}

// NewLoginSessionRepository creates a login session repository.
func NewLoginSessionRepository(db *gorm.DB) *GormLoginSessionRepository {
	return &GormLoginSessionRepository{db: db}
}

// Create inserts a session.
func (r *GormLoginSessionRepository) Create(session *models.WebsiteLoginSession) error {
	return r.db.Create(session).Error
}

// GetByToken fetches a session in any status, with the linked user.
func (r *GormLoginSessionRepository) GetByToken(tempToken string) (*models.WebsiteLoginSession, error) {
	var session models.WebsiteLoginSession
	if err := r.db.Preload("User").Where("temp_token = ?", tempToken).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// GetApprovedByToken fetches a session only when it was approved.
func (r *GormLoginSessionRepository) GetApprovedByToken(tempToken string) (*models.WebsiteLoginSession, error) {
	var session models.WebsiteLoginSession
	err := r.db.Preload("User").
		Where("temp_token = ? AND status = ?", tempToken, constants.LoginStatusApproved).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// MarkApproved moves a pending session to approved and binds the
// account. Returns false when the session already left pending.
func (r *GormLoginSessionRepository) MarkApproved(tempToken, userID, telegramID string, approvedAt time.Time) (bool, error) {
	result := r.db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ? AND status = ?", tempToken, constants.LoginStatusPending).
		Updates(map[string]interface{}{
			"status":      constants.LoginStatusApproved,
			"user_id":     userID,
			"telegram_id": telegramID,
			"approved_at": approvedAt,
			"updated_at":  approvedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkDecided moves a pending session to a terminal non-approved
// status (rejected or unauthorized).
func (r *GormLoginSessionRepository) MarkDecided(tempToken, status, telegramID string) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if telegramID != "" {
		updates["telegram_id"] = telegramID
	}
	result := r.db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ? AND status = ?", tempToken, constants.LoginStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireToken flips one pending session to expired.
func (r *GormLoginSessionRepository) ExpireToken(tempToken string) (bool, error) {
	result := r.db.Model(&models.WebsiteLoginSession{}).
		Where("temp_token = ? AND status = ?", tempToken, constants.LoginStatusPending).
		Updates(map[string]interface{}{
			"status":     constants.LoginStatusExpired,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ExpireDue flips every pending session past its deadline.
func (r *GormLoginSessionRepository) ExpireDue(now time.Time) (int64, error) {
	result := r.db.Model(&models.WebsiteLoginSession{}).
		Where("status = ? AND expires_at <= ?", constants.LoginStatusPending, now).
		Updates(map[string]interface{}{
			"status":     constants.LoginStatusExpired,
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

// PurgeBefore hard-deletes sessions created before the cutoff.
func (r *GormLoginSessionRepository) PurgeBefore(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.WebsiteLoginSession{})
	return result.RowsAffected, result.Error
}
