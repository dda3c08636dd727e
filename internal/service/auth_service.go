package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jamolstroy/admin-api/internal/cache"
	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/queue"
	"github.com/jamolstroy/admin-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AuthService drives both admin login paths: the bot-approved website
// flow and the Telegram WebApp flow. Neither path ever creates or
// promotes accounts; the admin role must already be on the row.
type AuthService struct {
	cfg      *config.Config
	users    repository.UserRepository
	sessions repository.LoginSessionRepository
	queue    *queue.Client
}

// NewAuthService creates the auth service.
func NewAuthService(cfg *config.Config, users repository.UserRepository, sessions repository.LoginSessionRepository, queueClient *queue.Client) *AuthService {
	return &AuthService{
		cfg:      cfg,
		users:    users,
		sessions: sessions,
		queue:    queueClient,
	}
}

// JWTClaims are the admin token claims.
type JWTClaims struct {
	UserID     string `json:"user_id"`
	TelegramID string `json:"telegram_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT issues a signed admin token.
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}
	if user.TelegramID != nil {
		claims.TelegramID = *user.TelegramID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT validates a token and returns its claims.
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// WebsiteLoginRequest is a freshly created login attempt.
type WebsiteLoginRequest struct {
	TempToken   string    `json:"temp_token"`
	TelegramURL string    `json:"telegram_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// RequestWebsiteLogin opens a pending login session and returns the
// deep link the browser should open in Telegram.
func (s *AuthService) RequestWebsiteLogin(clientID string) (*WebsiteLoginRequest, error) {
	if !s.cfg.TelegramAuth.Enabled {
		return nil, ErrTelegramLoginDisabled
	}

	tempToken, err := newTempToken()
	if err != nil {
		return nil, err
	}

	expireSeconds := s.cfg.TelegramAuth.LoginExpireSeconds
	if expireSeconds <= 0 {
		expireSeconds = 300
	}
	expiresAt := time.Now().Add(time.Duration(expireSeconds) * time.Second)

	session := &models.WebsiteLoginSession{
		TempToken: tempToken,
		ClientID:  clientID,
		Status:    constants.LoginStatusPending,
		ExpiresAt: expiresAt,
	}
	if err := s.sessions.Create(session); err != nil {
		return nil, err
	}

	// The expiry task is best effort, the worker sweep catches any
	// session it misses.
	if err := s.queue.EnqueueLoginSessionExpire(queue.LoginSessionExpirePayload{TempToken: tempToken}, time.Until(expiresAt)); err != nil {
		logger.Warnw("login_session_expire_enqueue_failed", "temp_token", tempToken, "error", err)
	}

	return &WebsiteLoginRequest{
		TempToken:   tempToken,
		TelegramURL: fmt.Sprintf("https://t.me/%s?start=%s", s.cfg.TelegramAuth.BotUsername, tempToken),
		ExpiresAt:   expiresAt,
	}, nil
}

// LoginStatusResult is the polling view of a login session. User and
// Token are set only for a usable approval.
type LoginStatusResult struct {
	Status    string       `json:"status"`
	User      *models.User `json:"user,omitempty"`
	Token     string       `json:"token,omitempty"`
	ExpiresAt *time.Time   `json:"token_expires_at,omitempty"`
}

// LoginStatus reports the current state of a login attempt. An
// approved session still runs the full admin gate, so a role change
// between approval and pickup downgrades the answer.
func (s *AuthService) LoginStatus(ctx context.Context, tempToken string) (*LoginStatusResult, error) {
	session, err := s.sessions.GetByToken(tempToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrLoginSessionNotFound
	}

	now := time.Now()
	switch session.Status {
	case constants.LoginStatusPending:
		if session.IsExpired(now) {
			return &LoginStatusResult{Status: constants.LoginStatusExpired}, nil
		}
		return &LoginStatusResult{Status: constants.LoginStatusPending}, nil
	case constants.LoginStatusApproved:
		user, err := s.CheckWebsiteLoginStatus(ctx, tempToken)
		if err != nil {
			return nil, err
		}
		if user == nil {
			if session.IsExpired(now) {
				return &LoginStatusResult{Status: constants.LoginStatusExpired}, nil
			}
			return &LoginStatusResult{Status: constants.LoginStatusUnauthorized}, nil
		}
		token, tokenExpiresAt, err := s.GenerateJWT(user)
		if err != nil {
			return nil, err
		}
		return &LoginStatusResult{
			Status:    constants.LoginStatusApproved,
			User:      user,
			Token:     token,
			ExpiresAt: &tokenExpiresAt,
		}, nil
	default:
		return &LoginStatusResult{Status: session.Status}, nil
	}
}

// CheckWebsiteLoginStatus is the single approval gate. It returns the
// admin account only when the session is approved, unexpired and
// bound to a user whose stored role is admin; every other case is a
// plain nil with no error.
func (s *AuthService) CheckWebsiteLoginStatus(ctx context.Context, tempToken string) (*models.User, error) {
	session, err := s.sessions.GetApprovedByToken(tempToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	if session.IsExpired(time.Now()) {
		return nil, nil
	}

	user := session.User
	if user == nil && session.UserID != nil {
		user, err = s.users.GetByID(*session.UserID)
		if err != nil {
			return nil, err
		}
	}
	if user == nil || !user.IsAdmin() {
		return nil, nil
	}
	return user, nil
}

// ApproveWebsiteLogin records an approval from the bot. A non-admin
// approver burns the session with the unauthorized status instead of
// leaving it pending.
func (s *AuthService) ApproveWebsiteLogin(ctx context.Context, tempToken, approverTelegramID string) error {
	session, err := s.sessions.GetByToken(tempToken)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrLoginSessionNotFound
	}
	if !session.IsPending() {
		return ErrLoginAlreadyDecided
	}
	if session.IsExpired(time.Now()) {
		if _, err := s.sessions.ExpireToken(tempToken); err != nil {
			logger.Warnw("login_session_expire_failed", "temp_token", tempToken, "error", err)
		}
		return ErrLoginSessionExpired
	}

	admin, err := s.users.GetAdminByTelegramID(approverTelegramID)
	if err != nil {
		return err
	}
	if admin == nil {
		if _, err := s.sessions.MarkDecided(tempToken, constants.LoginStatusUnauthorized, approverTelegramID); err != nil {
			return err
		}
		return ErrNotAdmin
	}

	ok, err := s.sessions.MarkApproved(tempToken, admin.ID, approverTelegramID, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrLoginAlreadyDecided
	}

	_ = cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(admin))
	return nil
}

// RejectWebsiteLogin records a rejection from the bot.
func (s *AuthService) RejectWebsiteLogin(ctx context.Context, tempToken, approverTelegramID string) error {
	session, err := s.sessions.GetByToken(tempToken)
	if err != nil {
		return err
	}
	if session == nil {
		return ErrLoginSessionNotFound
	}
	if !session.IsPending() {
		return ErrLoginAlreadyDecided
	}

	ok, err := s.sessions.MarkDecided(tempToken, constants.LoginStatusRejected, approverTelegramID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrLoginAlreadyDecided
	}
	return nil
}

// LoginWithWebApp signs an admin in from Telegram WebApp initData.
// The payload signature, freshness and replay window are all checked
// before the account lookup.
func (s *AuthService) LoginWithWebApp(ctx context.Context, initData string) (*models.User, string, time.Time, error) {
	if !s.cfg.TelegramAuth.Enabled {
		return nil, "", time.Time{}, ErrTelegramLoginDisabled
	}

	maxAge := time.Duration(s.cfg.TelegramAuth.LoginExpireSeconds) * time.Second
	authData, err := VerifyWebAppInitData(initData, s.cfg.TelegramAuth.BotToken, maxAge)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	replayTTL := time.Duration(s.cfg.TelegramAuth.ReplayTTLSeconds) * time.Second
	fresh, err := cache.MarkWebAppAuthUsed(ctx, authData.Hash, replayTTL)
	if err != nil {
		logger.Warnw("webapp_replay_guard_unavailable", "error", err)
	} else if !fresh {
		return nil, "", time.Time{}, ErrTelegramAuthReplayed
	}

	telegramID := strconv.FormatInt(authData.User.ID, 10)
	user, err := s.users.GetByTelegramID(telegramID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil || !user.IsAdmin() {
		return nil, "", time.Time{}, ErrNotAdmin
	}

	// Refresh display fields from Telegram; on failure keep serving
	// the stored profile.
	if err := s.users.UpdateTelegramProfile(user.ID, authData.User.FirstName, authData.User.LastName, authData.User.Username); err != nil {
		logger.Warnw("telegram_profile_refresh_failed", "user_id", user.ID, "error", err)
	} else {
		user.FirstName = authData.User.FirstName
		user.LastName = authData.User.LastName
		user.Username = authData.User.Username
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	_ = cache.SetAdminAuthState(ctx, cache.BuildAdminAuthState(user))
	return user, token, expiresAt, nil
}

func newTempToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
