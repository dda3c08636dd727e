package client

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/jamolstroy/admin-api/internal/config"
	"github.com/jamolstroy/admin-api/internal/constants"
	"github.com/jamolstroy/admin-api/internal/http/response"
	"github.com/jamolstroy/admin-api/internal/models"
	"github.com/jamolstroy/admin-api/internal/service"
)

type fakeAPI struct {
	mu           sync.Mutex
	statusQueue  []*service.LoginStatusResult
	statusErr    error
	statusCalls  int
	loginResult  *service.WebsiteLoginRequest
	webAppResult *WebAppLoginResult
	webAppErr    error
}

func (f *fakeAPI) RequestWebsiteLogin(_ context.Context, clientID string) (*service.WebsiteLoginRequest, error) {
	if f.loginResult != nil {
		return f.loginResult, nil
	}
	return &service.WebsiteLoginRequest{
		TempToken:   "temp-token",
		TelegramURL: "https://t.me/jamolstroy_bot?start=temp-token",
	}, nil
}

func (f *fakeAPI) LoginStatus(_ context.Context, _ string) (*service.LoginStatusResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls++
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	if len(f.statusQueue) == 0 {
		return &service.LoginStatusResult{Status: constants.LoginStatusPending}, nil
	}
	result := f.statusQueue[0]
	if len(f.statusQueue) > 1 {
		f.statusQueue = f.statusQueue[1:]
	}
	return result, nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statusCalls
}

func (f *fakeAPI) LoginWithWebApp(_ context.Context, _ string) (*WebAppLoginResult, error) {
	if f.webAppErr != nil {
		return nil, f.webAppErr
	}
	return f.webAppResult, nil
}

func setupLoginController(t *testing.T, api *fakeAPI, bridge *Bridge) (*Controller, *SessionStore) {
	t.Helper()
	store, err := NewSessionStore(t.TempDir())
	if err != nil {
		t.Fatalf("open store failed: %v", err)
	}
	ctl := NewController(api, store, bridge, config.ClientConfig{PollIntervalMS: 1})
	return ctl, store
}

func adminTestUser() *models.User {
	return &models.User{ID: "u1", FirstName: "Jamol", Role: constants.RoleAdmin}
}

func TestNewClientIDDistinctWithinMillisecond(t *testing.T) {
	ctl, _ := setupLoginController(t, &fakeAPI{}, nil)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		id := ctl.NewClientID()
		if !strings.HasPrefix(id, Namespace+"_") {
			t.Fatalf("unexpected identifier shape: %q", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate identifier: %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestConsumeURLToken(t *testing.T) {
	cases := []struct {
		name      string
		rawURL    string
		wantToken string
		wantURL   string
	}{
		{
			name:      "token present",
			rawURL:    "https://admin.jamolstroy.uz/?token=abc123&tab=orders",
			wantToken: "abc123",
			wantURL:   "https://admin.jamolstroy.uz/?tab=orders",
		},
		{
			name:      "no token",
			rawURL:    "https://admin.jamolstroy.uz/?tab=orders",
			wantToken: "",
			wantURL:   "https://admin.jamolstroy.uz/?tab=orders",
		},
		{
			name:      "blank token",
			rawURL:    "https://admin.jamolstroy.uz/?token=%20",
			wantToken: "",
			wantURL:   "https://admin.jamolstroy.uz/?token=%20",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, stripped := ConsumeURLToken(tc.rawURL)
			if token != tc.wantToken {
				t.Fatalf("token = %q, want %q", token, tc.wantToken)
			}
			if stripped != tc.wantURL {
				t.Fatalf("stripped = %q, want %q", stripped, tc.wantURL)
			}
		})
	}
}

func TestAwaitDecisionStopsAtFirstTerminalResult(t *testing.T) {
	api := &fakeAPI{statusQueue: []*service.LoginStatusResult{
		{Status: constants.LoginStatusPending},
		{Status: constants.LoginStatusPending},
		{Status: constants.LoginStatusApproved, User: adminTestUser(), Token: "jwt"},
	}}
	ctl, _ := setupLoginController(t, api, nil)

	result, err := ctl.AwaitDecision(context.Background(), "temp-token")
	if err != nil {
		t.Fatalf("await failed: %v", err)
	}
	if result.Status != constants.LoginStatusApproved {
		t.Fatalf("status = %q, want approved", result.Status)
	}
	if got := api.calls(); got != 3 {
		t.Fatalf("polling should stop at the first terminal answer, got %d calls", got)
	}
}

func TestAwaitDecisionTreatsVanishedSessionAsExpired(t *testing.T) {
	api := &fakeAPI{statusErr: &APIError{Code: response.CodeNotFound, Msg: "not found"}}
	ctl, _ := setupLoginController(t, api, nil)

	result, err := ctl.AwaitDecision(context.Background(), "temp-token")
	if err != nil {
		t.Fatalf("await failed: %v", err)
	}
	if result.Status != constants.LoginStatusExpired {
		t.Fatalf("status = %q, want expired", result.Status)
	}
}

func TestAwaitDecisionSurfacesBackendFailure(t *testing.T) {
	api := &fakeAPI{statusErr: &APIError{Code: response.CodeInternal, Msg: "internal error"}}
	ctl, _ := setupLoginController(t, api, nil)

	result, err := ctl.AwaitDecision(context.Background(), "temp-token")
	if err == nil {
		t.Fatalf("a backend failure must not read as a decision, got %+v", result)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != response.CodeInternal {
		t.Fatalf("want the server error back, got %v", err)
	}
}

func TestAwaitDecisionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	api := &fakeAPI{}
	ctl, _ := setupLoginController(t, api, nil)

	_, err := ctl.AwaitDecision(ctx, "temp-token")
	if !errors.Is(err, ErrLoginCancelled) {
		t.Fatalf("want ErrLoginCancelled, got %v", err)
	}
}

func TestCompleteWebsiteLoginPersistsApproval(t *testing.T) {
	ctl, store := setupLoginController(t, &fakeAPI{}, nil)

	auth := ctl.CompleteWebsiteLogin(&service.LoginStatusResult{
		Status: constants.LoginStatusApproved,
		User:   adminTestUser(),
		Token:  "jwt",
	})
	if !auth.IsAuthenticated() {
		t.Fatalf("approved login should authenticate")
	}
	if auth.Token() != "jwt" {
		t.Fatalf("token = %q", auth.Token())
	}

	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile == nil || profile.User.ID != "u1" {
		t.Fatalf("approved session should be persisted, got %+v", profile)
	}
}

func TestCompleteWebsiteLoginIgnoresRejection(t *testing.T) {
	ctl, store := setupLoginController(t, &fakeAPI{}, nil)

	auth := ctl.CompleteWebsiteLogin(&service.LoginStatusResult{Status: constants.LoginStatusRejected})
	if auth.IsAuthenticated() {
		t.Fatalf("rejection must leave the client unauthenticated")
	}
	if auth.Loading() {
		t.Fatalf("loading should be finished")
	}

	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("nothing should be persisted on rejection")
	}
}

func TestCompleteWebsiteLoginNeverPersistsNonAdmin(t *testing.T) {
	ctl, store := setupLoginController(t, &fakeAPI{}, nil)

	auth := ctl.CompleteWebsiteLogin(&service.LoginStatusResult{
		Status: constants.LoginStatusApproved,
		User:   &models.User{ID: "u2", FirstName: "Mijoz", Role: constants.RoleCustomer},
		Token:  "jwt",
	})
	if auth.IsAuthenticated() {
		t.Fatalf("non-admin approval must not authenticate")
	}

	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("non-admin session must never be persisted")
	}
}

func TestBootstrapSignsInThroughWebApp(t *testing.T) {
	api := &fakeAPI{webAppResult: &WebAppLoginResult{User: adminTestUser(), Token: "jwt"}}
	runtime := &fakeRuntime{identity: &Identity{TelegramID: "42", InitData: "init-data"}}
	bridge := NewBridge(func() Runtime { return runtime }, 0, 0)
	ctl, store := setupLoginController(t, api, bridge)

	auth := ctl.Bootstrap(context.Background(), "https://admin.jamolstroy.uz/")
	if !auth.IsAuthenticated() {
		t.Fatalf("web app bootstrap should authenticate")
	}
	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile == nil || profile.Token != "jwt" {
		t.Fatalf("web app session should be persisted, got %+v", profile)
	}
}

func TestBootstrapInsideTelegramNeverFallsBackToStore(t *testing.T) {
	api := &fakeAPI{webAppErr: &APIError{Code: 403, Msg: "forbidden"}}
	runtime := &fakeRuntime{identity: &Identity{TelegramID: "99", InitData: "init-data"}}
	bridge := NewBridge(func() Runtime { return runtime }, 0, 0)
	ctl, store := setupLoginController(t, api, bridge)

	if err := store.SaveProfile(&Profile{User: *adminTestUser(), Token: "old-jwt"}); err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	auth := ctl.Bootstrap(context.Background(), "https://admin.jamolstroy.uz/")
	if auth.IsAuthenticated() {
		t.Fatalf("unmatched Telegram identity must resolve signed out")
	}
	if auth.Loading() {
		t.Fatalf("bootstrap must finish loading")
	}
}

func TestBootstrapConsumesURLToken(t *testing.T) {
	api := &fakeAPI{statusQueue: []*service.LoginStatusResult{
		{Status: constants.LoginStatusApproved, User: adminTestUser(), Token: "jwt"},
	}}
	ctl, store := setupLoginController(t, api, nil)

	auth := ctl.Bootstrap(context.Background(), "https://admin.jamolstroy.uz/?token=abc123")
	if !auth.IsAuthenticated() {
		t.Fatalf("approved url token should authenticate")
	}
	if got := api.calls(); got != 1 {
		t.Fatalf("url token should be checked exactly once, got %d calls", got)
	}
	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile == nil {
		t.Fatalf("url token session should be persisted")
	}
}

func TestBootstrapFallsBackToStoredProfile(t *testing.T) {
	api := &fakeAPI{statusErr: errors.New("server unreachable")}
	ctl, store := setupLoginController(t, api, nil)

	if err := store.SaveProfile(&Profile{User: *adminTestUser(), Token: "old-jwt"}); err != nil {
		t.Fatalf("seed profile failed: %v", err)
	}

	auth := ctl.Bootstrap(context.Background(), "https://admin.jamolstroy.uz/")
	if !auth.IsAuthenticated() {
		t.Fatalf("stored profile should be trusted")
	}
	if auth.Token() != "old-jwt" {
		t.Fatalf("token = %q, want old-jwt", auth.Token())
	}
	if got := api.calls(); got != 0 {
		t.Fatalf("no url token means no status check, got %d calls", got)
	}
}

func TestBootstrapResolvesToUnauthenticatedOnFailure(t *testing.T) {
	api := &fakeAPI{statusQueue: []*service.LoginStatusResult{
		{Status: constants.LoginStatusUnauthorized},
	}}
	ctl, _ := setupLoginController(t, api, nil)

	auth := ctl.Bootstrap(context.Background(), "https://admin.jamolstroy.uz/?token=abc123")
	if auth.IsAuthenticated() {
		t.Fatalf("unauthorized token must not authenticate")
	}
	if auth.Loading() {
		t.Fatalf("bootstrap must finish loading even on failure")
	}
}

func TestSignOutIsIdempotent(t *testing.T) {
	ctl, store := setupLoginController(t, &fakeAPI{}, nil)

	auth := ctl.CompleteWebsiteLogin(&service.LoginStatusResult{
		Status: constants.LoginStatusApproved,
		User:   adminTestUser(),
		Token:  "jwt",
	})
	if err := auth.SignOut(); err != nil {
		t.Fatalf("sign out failed: %v", err)
	}
	if auth.IsAuthenticated() {
		t.Fatalf("sign out should clear the session")
	}
	if err := auth.SignOut(); err != nil {
		t.Fatalf("repeated sign out should be a no-op, got %v", err)
	}

	profile, err := store.LoadProfile()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if profile != nil {
		t.Fatalf("sign out should clear the stored session")
	}
}
