package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/socialdash/dashboard-api/internal/core/domain"
	"github.com/socialdash/dashboard-api/internal/pkg/token"
)

type stubUsers struct {
	byID map[string]*domain.User
}

func (s *stubUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.byID[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByUsername(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) FindByEmailOrUsername(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (s *stubUsers) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}

func (s *stubUsers) LinkGoogleID(context.Context, string, string) error { return nil }

func (s *stubUsers) List(context.Context) ([]domain.User, error) { return nil, nil }

func newGate(users *stubUsers) echo.MiddlewareFunc {
	return Auth(token.NewService("secret", time.Hour), users, zerolog.Nop())
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	users := &stubUsers{byID: map[string]*domain.User{
		"user_1": {ID: "user_1", Username: "alice", Email: "alice@x.com", Role: domain.RoleUser},
	}}

	raw, err := token.NewService("secret", time.Hour).Issue(token.Subject{ID: "user_1", Email: "alice@x.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := newGate(users)(func(c echo.Context) error {
		called = true
		user, ok := c.Get(UserKey).(*domain.User)
		if !ok || user.Username != "alice" {
			t.Fatalf("user not attached to context: %#v", c.Get(UserKey))
		}
		if c.Get(UsernameKey) != "alice" || c.Get(RoleKey) != domain.RoleUser {
			t.Fatalf("username/role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestAuth_MissingOrMalformedHeader(t *testing.T) {
	cases := []struct {
		name   string
		header string
	}{
		{"absent", ""},
		{"wrong scheme", "Token abc"},
		{"no token part", "Bearer"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := newGate(&stubUsers{})(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuth_InvalidAndTruncatedTokens(t *testing.T) {
	raw, err := token.NewService("secret", time.Hour).Issue(token.Subject{ID: "user_1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"truncated", raw[:len(raw)-1]},
		{"foreign secret", mustIssueWithSecret(t, "other-secret")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+tc.token)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler := newGate(&stubUsers{})(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuth_UnknownSubject(t *testing.T) {
	e := echo.New()
	raw, err := token.NewService("secret", time.Hour).Issue(token.Subject{ID: "ghost"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := newGate(&stubUsers{})(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func mustIssueWithSecret(t *testing.T, secret string) string {
	t.Helper()
	raw, err := token.NewService(secret, time.Hour).Issue(token.Subject{ID: "user_1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return raw
}
