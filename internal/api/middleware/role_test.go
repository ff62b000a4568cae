package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

func TestRequireRole_Allows(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(RoleKey, domain.RoleAdmin)

	called := false
	handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
}

func TestRequireRole_Forbids(t *testing.T) {
	cases := []struct {
		name string
		role any
	}{
		{"wrong role", domain.RoleUser},
		{"missing role", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tc.role != nil {
				c.Set(RoleKey, tc.role)
			}

			handler := RequireRole(domain.RoleAdmin)(func(c echo.Context) error {
				t.Fatalf("should not reach next")
				return nil
			})

			if err := handler(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d", rec.Code)
			}
		})
	}
}
