package admin

import "github.com/jamolstroy/admin-api/internal/provider"

// Handler serves the admin dashboard API. Every route behind it
// requires an authenticated admin.
type Handler struct {
	*provider.Container
}

// New creates the admin handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
