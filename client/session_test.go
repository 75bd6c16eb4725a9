package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/jcortes-dev/portfolio-backend/models"
)

// newAuthBackend fakes the login and profile endpoints. Any bearer token in
// valid is accepted on /auth/me.
func newAuthBackend(t *testing.T, password string, valid map[string]bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			if err := r.ParseForm(); err != nil {
				t.Errorf("parsing login form: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			if r.PostFormValue("password") != password {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "incorrect email or password"})
				return
			}
			json.NewEncoder(w).Encode(Token{AccessToken: "fresh-token", TokenType: "bearer"})
		case "/auth/me":
			token := r.Header.Get("Authorization")
			if len(token) > 7 {
				token = token[7:]
			}
			if !valid[token] {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"detail": "could not validate credentials"})
				return
			}
			json.NewEncoder(w).Encode(models.User{ID: 1, Email: "admin@example.com", IsActive: true, IsAdmin: true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestFileTokenStore(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token")
		store := NewFileTokenStore(path)

		if err := store.Save("my-token"); err != nil {
			t.Fatalf("save: %v", err)
		}
		got, err := store.Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if got != "my-token" {
			t.Errorf("expected 'my-token', got %q", got)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("stat: %v", err)
		}
		if info.Mode().Perm() != 0o600 {
			t.Errorf("expected mode 0600, got %v", info.Mode().Perm())
		}
	})

	t.Run("Missing File Loads Empty", func(t *testing.T) {
		store := NewFileTokenStore(filepath.Join(t.TempDir(), "absent"))
		got, err := store.Load()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got != "" {
			t.Errorf("expected empty token, got %q", got)
		}
	})

	t.Run("Clear Is Idempotent", func(t *testing.T) {
		store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
		if err := store.Save("x"); err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("first clear: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Fatalf("second clear: %v", err)
		}
	})
}

func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Starts Unknown", func(t *testing.T) {
		api := New("http://localhost:0")
		s := NewSessionStore(api, NewFileTokenStore(filepath.Join(t.TempDir(), "token")))
		if s.State() != StateUnknown {
			t.Errorf("expected unknown state, got %s", s.State())
		}
	})

	t.Run("Restore", func(t *testing.T) {
		t.Run("No Persisted Token Goes Anonymous", func(t *testing.T) {
			server := newAuthBackend(t, "secret", map[string]bool{})
			defer server.Close()

			api := New(server.URL)
			s := NewSessionStore(api, NewFileTokenStore(filepath.Join(t.TempDir(), "token")))
			s.Restore(ctx)

			if s.State() != StateAnonymous {
				t.Errorf("expected anonymous, got %s", s.State())
			}
			if s.CurrentUser() != nil {
				t.Error("expected no user")
			}
		})

		t.Run("Valid Token Resolves Authenticated", func(t *testing.T) {
			server := newAuthBackend(t, "secret", map[string]bool{"persisted": true})
			defer server.Close()

			store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
			if err := store.Save("persisted"); err != nil {
				t.Fatalf("seeding token: %v", err)
			}

			api := New(server.URL)
			s := NewSessionStore(api, store)
			s.Restore(ctx)

			if s.State() != StateAuthenticated {
				t.Errorf("expected authenticated, got %s", s.State())
			}
			user := s.CurrentUser()
			if user == nil || user.Email != "admin@example.com" {
				t.Errorf("expected profile loaded, got %+v", user)
			}
		})

		t.Run("Rejected Token Is Cleared", func(t *testing.T) {
			server := newAuthBackend(t, "secret", map[string]bool{})
			defer server.Close()

			path := filepath.Join(t.TempDir(), "token")
			store := NewFileTokenStore(path)
			if err := store.Save("expired"); err != nil {
				t.Fatalf("seeding token: %v", err)
			}

			api := New(server.URL)
			s := NewSessionStore(api, store)
			s.Restore(ctx)

			if s.State() != StateAnonymous {
				t.Errorf("expected anonymous, got %s", s.State())
			}
			if s.Token() != "" {
				t.Errorf("expected token discarded, got %q", s.Token())
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Error("expected persisted token removed")
			}
		})
	})

	t.Run("Login", func(t *testing.T) {
		t.Run("Persists Token And Loads Profile", func(t *testing.T) {
			server := newAuthBackend(t, "secret", map[string]bool{"fresh-token": true})
			defer server.Close()

			store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
			api := New(server.URL)
			s := NewSessionStore(api, store)

			if err := s.Login(ctx, "admin@example.com", "secret"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if s.State() != StateAuthenticated {
				t.Errorf("expected authenticated, got %s", s.State())
			}
			if s.Token() != "fresh-token" {
				t.Errorf("expected token held, got %q", s.Token())
			}
			if persisted, _ := store.Load(); persisted != "fresh-token" {
				t.Errorf("expected token persisted, got %q", persisted)
			}
			if user := s.CurrentUser(); user == nil || !user.IsAdmin {
				t.Errorf("expected admin profile, got %+v", user)
			}
		})

		t.Run("Bad Credentials Stay Anonymous", func(t *testing.T) {
			server := newAuthBackend(t, "secret", map[string]bool{})
			defer server.Close()

			store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
			api := New(server.URL)
			s := NewSessionStore(api, store)

			err := s.Login(ctx, "admin@example.com", "wrong")
			var authErr *AuthError
			if !errors.As(err, &authErr) {
				t.Fatalf("expected *AuthError, got %v", err)
			}
			if s.State() != StateAnonymous {
				t.Errorf("expected anonymous, got %s", s.State())
			}
			if persisted, _ := store.Load(); persisted != "" {
				t.Errorf("expected nothing persisted, got %q", persisted)
			}
		})
	})

	t.Run("Logout Clears Session", func(t *testing.T) {
		server := newAuthBackend(t, "secret", map[string]bool{"fresh-token": true})
		defer server.Close()

		store := NewFileTokenStore(filepath.Join(t.TempDir(), "token"))
		api := New(server.URL)
		s := NewSessionStore(api, store)

		if err := s.Login(ctx, "admin@example.com", "secret"); err != nil {
			t.Fatalf("login: %v", err)
		}
		s.Logout()

		if s.State() != StateAnonymous {
			t.Errorf("expected anonymous, got %s", s.State())
		}
		if s.Token() != "" {
			t.Errorf("expected token cleared, got %q", s.Token())
		}
		if persisted, _ := store.Load(); persisted != "" {
			t.Errorf("expected persisted token cleared, got %q", persisted)
		}

		// A second logout must not fail or change anything.
		s.Logout()
		if s.State() != StateAnonymous {
			t.Errorf("expected anonymous after repeated logout, got %s", s.State())
		}
	})

	t.Run("Subscribers See Transitions", func(t *testing.T) {
		server := newAuthBackend(t, "secret", map[string]bool{"fresh-token": true})
		defer server.Close()

		api := New(server.URL)
		s := NewSessionStore(api, NewFileTokenStore(filepath.Join(t.TempDir(), "token")))

		var fired int32
		unsubscribe := s.Subscribe(func() {
			atomic.AddInt32(&fired, 1)
		})

		if err := s.Login(ctx, "admin@example.com", "secret"); err != nil {
			t.Fatalf("login: %v", err)
		}
		if atomic.LoadInt32(&fired) == 0 {
			t.Error("expected listener notified during login")
		}

		before := atomic.LoadInt32(&fired)
		unsubscribe()
		s.Logout()
		if got := atomic.LoadInt32(&fired); got != before {
			t.Errorf("expected no notification after unsubscribe, got %d extra", got-before)
		}
	})

	t.Run("Acts As Token Source For Client", func(t *testing.T) {
		var seenAuth atomic.Value
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/auth/login":
				json.NewEncoder(w).Encode(Token{AccessToken: "fresh-token", TokenType: "bearer"})
			case "/auth/me":
				seenAuth.Store(r.Header.Get("Authorization"))
				json.NewEncoder(w).Encode(models.User{ID: 1, Email: "admin@example.com", IsActive: true})
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		api := New(server.URL)
		s := NewSessionStore(api, NewFileTokenStore(filepath.Join(t.TempDir(), "token")))
		if err := s.Login(ctx, "admin@example.com", "secret"); err != nil {
			t.Fatalf("login: %v", err)
		}

		if got, _ := seenAuth.Load().(string); got != "Bearer fresh-token" {
			t.Errorf("expected client to send session token, got %q", got)
		}
	})
}
