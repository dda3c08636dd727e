package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/http/response"
	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/service"
)

// ErrLoginCancelled is returned when polling stops before a decision.
var ErrLoginCancelled = errors.New("login cancelled")

// Controller drives the sign-in flow: the Telegram Mini App path when
// the runtime is present, the website approval path otherwise.
type Controller struct {
	api          API
	store        *SessionStore
	bridge       *Bridge
	pollInterval time.Duration

	mu         sync.Mutex
	lastMillis int64
	seq        int
}

// NewController creates the login controller.
func NewController(api API, store *SessionStore, bridge *Bridge, cfg config.ClientConfig) *Controller {
	interval := time.Duration(cfg.PollIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Controller{
		api:          api,
		store:        store,
		bridge:       bridge,
		pollInterval: interval,
	}
}

// NewClientID mints a browser-style client identifier. Identifiers
// minted in the same millisecond stay distinct.
func (c *Controller) NewClientID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ms := time.Now().UnixMilli()
	if ms == c.lastMillis {
		c.seq++
		return fmt.Sprintf("%s_%d_%d", Namespace, ms, c.seq)
	}
	c.lastMillis = ms
	c.seq = 0
	return fmt.Sprintf("%s_%d", Namespace, ms)
}

// ConsumeURLToken extracts a login token from a callback URL and
// returns the URL with the token removed, the way a browser strips
// the query parameter after handling it.
func ConsumeURLToken(rawURL string) (token, stripped string) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", rawURL
	}
	query := parsed.Query()
	token = strings.TrimSpace(query.Get("token"))
	if token == "" {
		return "", rawURL
	}
	query.Del("token")
	parsed.RawQuery = query.Encode()
	return token, parsed.String()
}

// Bootstrap resolves the starting auth state. Inside Telegram it signs
// in with init data; a URL token is consumed and validated; otherwise
// the persisted profile is trusted. Every failure resolves to an
// unauthenticated context, never an error the caller must handle.
func (c *Controller) Bootstrap(ctx context.Context, rawURL string) *AuthContext {
	auth := NewAuthContext(c.store)

	// Inside Telegram the runtime identity is the only accepted
	// credential; a failed match resolves to signed-out rather than
	// falling back to a stored profile.
	if c.bridge != nil && c.bridge.WaitReady(ctx) {
		c.bootstrapWebApp(ctx, auth)
		auth.finishLoading()
		return auth
	}

	if token, _ := ConsumeURLToken(rawURL); token != "" {
		if c.bootstrapURLToken(ctx, auth, token) {
			return auth
		}
	}

	profile, err := c.store.LoadProfile()
	if err != nil {
		logger.Warnw("client_bootstrap_load_profile_failed", "error", err)
	}
	if profile != nil {
		auth.setSession(&profile.User, profile.Token)
	}
	auth.finishLoading()
	return auth
}

func (c *Controller) bootstrapWebApp(ctx context.Context, auth *AuthContext) {
	identity, err := c.bridge.Identity()
	if err != nil || identity == nil || identity.InitData == "" {
		logger.Warnw("client_webapp_identity_unavailable", "error", err)
		return
	}
	result, err := c.api.LoginWithWebApp(ctx, identity.InitData)
	if err != nil {
		logger.Warnw("client_webapp_login_failed", "error", err)
		return
	}
	c.persistSession(auth, result.User, result.Token)
}

func (c *Controller) bootstrapURLToken(ctx context.Context, auth *AuthContext, token string) bool {
	result, err := c.api.LoginStatus(ctx, token)
	if err != nil || result == nil {
		logger.Warnw("client_url_token_check_failed", "error", err)
		return false
	}
	if result.Status != constants.LoginStatusApproved || result.User == nil {
		return false
	}
	c.persistSession(auth, result.User, result.Token)
	auth.finishLoading()
	return true
}

func (c *Controller) persistSession(auth *AuthContext, user *models.User, token string) {
	if user == nil {
		return
	}
	if err := c.store.SaveProfile(&Profile{User: *user, Token: token}); err != nil {
		logger.Warnw("client_save_profile_failed", "error", err)
	}
	auth.setSession(user, token)
}

// StartWebsiteLogin opens a login session and returns the deep link
// to show the operator.
func (c *Controller) StartWebsiteLogin(ctx context.Context) (*service.WebsiteLoginRequest, error) {
	return c.api.RequestWebsiteLogin(ctx, c.NewClientID())
}

// AwaitDecision polls the session until Telegram answers. It returns
// the first terminal result and makes no further requests after that.
func (c *Controller) AwaitDecision(ctx context.Context, tempToken string) (*service.LoginStatusResult, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		result, err := c.api.LoginStatus(ctx, tempToken)
		if err != nil {
			var apiErr *APIError
			if errors.As(err, &apiErr) && apiErr.Code == response.CodeNotFound {
				// A vanished session reads as expired. Any other
				// backend failure stays an error.
				return &service.LoginStatusResult{Status: constants.LoginStatusExpired}, nil
			}
			return nil, err
		}
		if result != nil && constants.IsTerminalLoginStatus(result.Status) {
			return result, nil
		}

		select {
		case <-ctx.Done():
			return nil, ErrLoginCancelled
		case <-ticker.C:
		}
	}
}

// CompleteWebsiteLogin persists an approved result and returns the
// signed-in context. Anything other than an approval leaves the
// client unauthenticated.
func (c *Controller) CompleteWebsiteLogin(result *service.LoginStatusResult) *AuthContext {
	auth := NewAuthContext(c.store)
	if result != nil && result.Status == constants.LoginStatusApproved && result.User != nil {
		if err := c.store.SaveProfile(&Profile{User: *result.User, Token: result.Token}); err != nil {
			logger.Warnw("client_save_profile_failed", "error", err)
		} else {
			auth.setSession(result.User, result.Token)
		}
	}
	auth.finishLoading()
	return auth
}
