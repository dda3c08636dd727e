package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jamolstroy/admin-api/internal/logger"
	"github.com/jamolstroy/admin-api/internal/models"
)

// Namespace prefixes every key the client persists. Sign-out clears
// the whole namespace.
const Namespace = "jamolstroy_admin"

// ErrNotAdminProfile is returned when a non-admin profile is about to
// be persisted. Non-admin sessions are never stored.
var ErrNotAdminProfile = errors.New("profile is not an admin")

// Profile is the persisted session: the admin account plus its token.
type Profile struct {
	User    models.User `json:"user"`
	Token   string      `json:"token"`
	SavedAt time.Time   `json:"saved_at"`
}

// SessionStore is a small file backed key-value store under a single
// directory. Each key becomes one JSON file.
type SessionStore struct {
	dir string
}

// NewSessionStore opens the store directory, creating it when needed.
// An empty dir falls back to the user config directory.
func NewSessionStore(dir string) (*SessionStore, error) {
	if strings.TrimSpace(dir) == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "jamolstroy")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &SessionStore{dir: dir}, nil
}

func (s *SessionStore) keyPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Set persists a value under a namespaced key.
func (s *SessionStore) Set(key string, value interface{}) error {
	if !strings.HasPrefix(key, Namespace) {
		key = Namespace + "_" + key
	}
	body, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return os.WriteFile(s.keyPath(key), body, 0o600)
}

// Get reads a value stored under a namespaced key. Missing keys
// report false with no error.
func (s *SessionStore) Get(key string, out interface{}) (bool, error) {
	if !strings.HasPrefix(key, Namespace) {
		key = Namespace + "_" + key
	}
	body, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a namespaced key. Deleting an absent key is a no-op.
func (s *SessionStore) Delete(key string) error {
	if !strings.HasPrefix(key, Namespace) {
		key = Namespace + "_" + key
	}
	if err := os.Remove(s.keyPath(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// SaveProfile persists the signed-in admin under the primary key. A
// profile whose stored role is not admin is rejected outright.
func (s *SessionStore) SaveProfile(profile *Profile) error {
	if profile == nil {
		return errors.New("profile is nil")
	}
	role, err := models.ParseRole(profile.User.Role)
	if err != nil || !role.IsAdmin() {
		return ErrNotAdminProfile
	}
	if profile.SavedAt.IsZero() {
		profile.SavedAt = time.Now()
	}
	body, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return os.WriteFile(s.keyPath(Namespace), body, 0o600)
}

// LoadProfile reads the persisted session. Malformed records and
// records whose role is no longer admin are evicted on sight, the
// caller just sees an absent profile.
func (s *SessionStore) LoadProfile() (*Profile, error) {
	body, err := os.ReadFile(s.keyPath(Namespace))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var profile Profile
	if err := json.Unmarshal(body, &profile); err != nil {
		logger.Warnw("client_session_profile_malformed", "error", err)
		_ = os.Remove(s.keyPath(Namespace))
		return nil, nil
	}
	role, err := models.ParseRole(profile.User.Role)
	if err != nil || !role.IsAdmin() {
		logger.Warnw("client_session_profile_not_admin", "role", profile.User.Role)
		_ = os.Remove(s.keyPath(Namespace))
		return nil, nil
	}
	return &profile, nil
}

// SignOut removes every key in the namespace. Calling it with nothing
// stored is fine.
func (s *SessionStore) SignOut() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !strings.HasPrefix(entry.Name(), Namespace) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
