package models

import (
	"fmt"
	"strings"

	"github.com/jamolstroy/admin-api/internal/constants"
)

// Role is a validated user role. Raw strings from storage or the wire
// go through ParseRole at the boundary so downstream code never
// branches on free-form text.
type Role string

const (
	RoleAdmin    Role = constants.RoleAdmin
	RoleCustomer Role = constants.RoleCustomer
)

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, error) {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case constants.RoleAdmin:
		return RoleAdmin, nil
	case constants.RoleCustomer:
		return RoleCustomer, nil
	}
	return "", fmt.Errorf("unknown role: %q", raw)
}

func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether the role grants dashboard access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
