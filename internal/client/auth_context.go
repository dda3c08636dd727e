package client

import (
	"sync"

	"github.com/jamolstroy/admin-api/internal/models"
)

// AuthContext is the client-side view of the session: who is signed
// in, whether the answer is still being resolved, and how to leave.
type AuthContext struct {
	store *SessionStore

	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool
}

// NewAuthContext creates a loading, unauthenticated context.
func NewAuthContext(store *SessionStore) *AuthContext {
	return &AuthContext{store: store, loading: true}
}

func (a *AuthContext) setSession(user *models.User, token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.token = token
}

func (a *AuthContext) finishLoading() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.loading = false
}

// User returns the signed-in account, nil when unauthenticated.
func (a *AuthContext) User() *models.User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user
}

// Token returns the bearer token of the session.
func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

// Loading reports whether the auth state is still being resolved.
func (a *AuthContext) Loading() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.loading
}

// IsAuthenticated reports whether an admin is signed in.
func (a *AuthContext) IsAuthenticated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.user != nil && a.token != ""
}

// SignOut clears the persisted namespace and the in-memory session.
// Repeated calls are safe.
func (a *AuthContext) SignOut() error {
	a.mu.Lock()
	a.user = nil
	a.token = ""
	a.mu.Unlock()
	if a.store == nil {
		return nil
	}
	return a.store.SignOut()
}
