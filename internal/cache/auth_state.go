package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jamolstroy/admin-api/internal/models"
)

const authStateCacheTTL = 10 * time.Minute

// AdminAuthState is a small snapshot of an admin account used by the
// JWT middleware, so repeated requests skip the user table. A role
// downgrade invalidates the snapshot at most one TTL later.
type AdminAuthState struct {
	UserID     string `json:"user_id"`
	TelegramID string `json:"telegram_id"`
	Role       string `json:"role"`
	UpdatedAt  int64  `json:"updated_at"`
}

func adminAuthStateKey(userID string) string {
	return fmt.Sprintf("auth:admin:%s", userID)
}

func webAppReplayKey(hash string) string {
	return fmt.Sprintf("auth:webapp:replay:%s", hash)
}

// BuildAdminAuthState builds an auth snapshot from the user model.
func BuildAdminAuthState(user *models.User) *AdminAuthState {
	if user == nil {
		return nil
	}
	state := &AdminAuthState{
		UserID:    user.ID,
		Role:      user.Role,
		UpdatedAt: time.Now().Unix(),
	}
	if user.TelegramID != nil {
		state.TelegramID = *user.TelegramID
	}
	return state
}

// GetAdminAuthState reads an auth snapshot.
func GetAdminAuthState(ctx context.Context, userID string) (*AdminAuthState, bool, error) {
	if userID == "" {
		return nil, false, nil
	}
	var state AdminAuthState
	hit, err := GetJSON(ctx, adminAuthStateKey(userID), &state)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &state, true, nil
}

// SetAdminAuthState writes an auth snapshot.
func SetAdminAuthState(ctx context.Context, state *AdminAuthState) error {
	if state == nil || state.UserID == "" {
		return nil
	}
	return SetJSON(ctx, adminAuthStateKey(state.UserID), state, authStateCacheTTL)
}

// DelAdminAuthState drops an auth snapshot.
func DelAdminAuthState(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return Del(ctx, adminAuthStateKey(userID))
}

// MarkWebAppAuthUsed records a WebApp initData hash for replay
// protection. Returns false when the same payload was already seen
// inside the TTL window.
func MarkWebAppAuthUsed(ctx context.Context, hash string, ttl time.Duration) (bool, error) {
	if hash == "" {
		return false, nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return SetNX(ctx, webAppReplayKey(hash), "1", ttl)
}
