package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	userDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/user"
)

// Store holds the authenticated identity and bearer token, persisted across
// process restarts. Token and user are written and cleared together; partial
// state is treated as unauthenticated. Intended to be injected explicitly
// into anything that needs it, never reached through a package global.
type Store struct {
	path   string
	logger *slog.Logger

	mu    sync.RWMutex
	token string
	user  *userDatamodel.User
}

type persistedState struct {
	Token string              `json:"token"`
	User  *userDatamodel.User `json:"user"`
}

func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load eagerly reads the persisted token/user pair. A missing file is not an
// error, just an unauthenticated store. Corrupt or partial state is discarded
// on the spot.
func (s *Store) Load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	var state persistedState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("discarding unreadable session file", "path", s.path, "error", err)
		return s.Clear()
	}

	if state.Token == "" || state.User == nil {
		s.logger.Warn("discarding partial session state", "path", s.path)
		return s.Clear()
	}

	s.mu.Lock()
	s.token = state.Token
	s.user = state.User
	s.mu.Unlock()

	s.logger.Debug("session restored", "user", state.User.Email, "role", state.User.Role.String())
	return nil
}

// Save persists a freshly authenticated identity. The file is written
// atomically and readable only by the owner.
func (s *Store) Save(token string, u userDatamodel.User) error {
	s.mu.Lock()
	s.token = token
	userCopy := u
	s.user = &userCopy
	s.mu.Unlock()

	raw, err := json.Marshal(persistedState{Token: token, User: &u})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Clear wipes both the in-memory identity and the persisted file. Used on
// logout and on any 401 from the backend.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) CurrentUser() *userDatamodel.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	userCopy := *s.user
	return &userCopy
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// TokenExpiresAt reads the exp claim without verifying the signature; the
// backend verifies tokens, the client only uses this for display. There is no
// refresh flow, an expired token means forced re-login on the next 401.
func (s *Store) TokenExpiresAt() (time.Time, bool) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
