package service

import "errors"

// Sentinel errors shared across services. Handlers map these to
// business codes and localized messages.
var (
	ErrNotFound              = errors.New("record not found")
	ErrTelegramLoginDisabled = errors.New("telegram login disabled")
	ErrTelegramAuthFailed    = errors.New("telegram auth verification failed")
	ErrTelegramAuthReplayed  = errors.New("telegram auth payload replayed")
	ErrNotAdmin              = errors.New("admin role required")
	ErrLoginSessionNotFound  = errors.New("login session not found")
	ErrLoginSessionExpired   = errors.New("login session expired")
	ErrLoginAlreadyDecided   = errors.New("login session already decided")
	ErrInvalidOrderStatus    = errors.New("invalid order status")
)
