package models

import (
	"strings"

	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/logger"
)

// InitDefaultAdmin seeds the first admin account. Login never creates
// admins, so a fresh database needs at least one row with the admin
// role before anyone can sign in.
func InitDefaultAdmin(telegramID, firstName string) error {
	var count int64
	DB.Model(&User{}).Where("role = ?", constants.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	telegramID = strings.TrimSpace(telegramID)
	if telegramID == "" {
		logger.Warnw("default_admin_skipped", "reason", "no_telegram_id_configured")
		return nil
	}
	if firstName == "" {
		firstName = "Admin"
	}

	admin := User{
		TelegramID: &telegramID,
		FirstName:  firstName,
		Role:       constants.RoleAdmin,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	logger.Warnw("default_admin_created", "telegram_id", telegramID)
	return nil
}
