package client

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/rs/zerolog"
)

// SessionState is the auth lifecycle position of a SessionStore.
type SessionState int

const (
	StateUnknown SessionState = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s SessionState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// TokenStore persists the bearer token across process restarts. Only the
// token survives; identity is always re-derived from the backend so it can
// never go stale.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// FileTokenStore keeps the token in a mode-0600 file.
type FileTokenStore struct {
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (f *FileTokenStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, []byte(token), 0o600)
}

func (f *FileTokenStore) Clear() error {
	err := os.Remove(f.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// SessionStore holds the process-wide auth session: an opaque bearer token
// plus the authenticated user's profile. It moves through
// Unknown -> Loading -> {Authenticated, Anonymous}, and registers itself as
// the client's token source so every authenticated request picks up the
// current token.
type SessionStore struct {
	mu        sync.Mutex
	api       *Client
	store     TokenStore
	state     SessionState
	token     string
	user      *models.User
	listeners map[int]func()
	nextSub   int
	logger    zerolog.Logger
}

type SessionOption func(*SessionStore)

func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(s *SessionStore) {
		s.logger = logger
	}
}

func NewSessionStore(api *Client, store TokenStore, opts ...SessionOption) *SessionStore {
	s := &SessionStore{
		api:       api,
		store:     store,
		state:     StateUnknown,
		listeners: make(map[int]func()),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	api.SetTokenSource(s)
	return s
}

// Token implements TokenSource.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the current lifecycle state.
func (s *SessionStore) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// CurrentUser returns the authenticated profile, or nil.
func (s *SessionStore) CurrentUser() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Subscribe registers a listener invoked on every state transition. The
// returned function removes the subscription.
func (s *SessionStore) Subscribe(listener func()) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// Restore re-validates a persisted token on startup. With no token it goes
// straight to Anonymous; with one it fetches the identity and, on any
// failure, silently discards the token instead of surfacing an error.
func (s *SessionStore) Restore(ctx context.Context) {
	s.transition(func() {
		s.state = StateLoading
	})

	token, err := s.store.Load()
	if err != nil || token == "" {
		if err != nil {
			s.logger.Warn().Err(err).Msg("could not load persisted token")
		}
		s.transition(func() {
			s.state = StateAnonymous
		})
		return
	}

	s.transition(func() {
		s.token = token
	})

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Info().Err(err).Msg("persisted token rejected, clearing session")
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Warn().Err(clearErr).Msg("could not clear persisted token")
		}
		s.transition(func() {
			s.token = ""
			s.user = nil
			s.state = StateAnonymous
		})
		return
	}

	s.transition(func() {
		s.user = &user
		s.state = StateAuthenticated
	})
}

// Login exchanges credentials for a token, persists it, then loads the user
// profile. A failed exchange leaves the session Anonymous and returns the
// *AuthError from the backend.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.transition(func() {
		s.state = StateLoading
	})

	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.transition(func() {
			s.state = StateAnonymous
		})
		return err
	}

	if err := s.store.Save(token.AccessToken); err != nil {
		s.logger.Warn().Err(err).Msg("could not persist token; session will not survive restart")
	}

	s.transition(func() {
		s.token = token.AccessToken
		s.state = StateAuthenticated
	})

	user, err := s.api.Me(ctx)
	if err != nil {
		return err
	}

	s.transition(func() {
		s.user = &user
	})
	return nil
}

// Logout clears the persisted token and resets to Anonymous. Idempotent.
func (s *SessionStore) Logout() {
	if err := s.store.Clear(); err != nil {
		s.logger.Warn().Err(err).Msg("could not clear persisted token")
	}
	s.transition(func() {
		s.token = ""
		s.user = nil
		s.state = StateAnonymous
	})
}

// transition applies a state change under the lock and notifies listeners
// outside of it.
func (s *SessionStore) transition(apply func()) {
	s.mu.Lock()
	apply()
	listeners := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
