package auth

import "github.com/jamolstroy/admin-api/internal/provider"

// Handler serves the public login endpoints.
type Handler struct {
	*provider.Container
}

// New creates the auth handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
