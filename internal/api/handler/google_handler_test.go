package handler_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/socialdash/dashboard-api/internal/api/handler"
	"github.com/socialdash/dashboard-api/internal/core/domain"
)

func TestGoogleAuthHandler_RequiresIDToken(t *testing.T) {
	e := newTestEcho()
	e.POST("/api/auth/google", handler.NewGoogleAuthHandler(&stubAuthService{}).Login)

	rec := doJSON(e, http.MethodPost, "/api/auth/google", `{}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "ID token is required" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}

func TestGoogleAuthHandler_Success(t *testing.T) {
	var gotToken string
	svc := &stubAuthService{
		googleFn: func(_ context.Context, idToken string) (string, *domain.User, error) {
			gotToken = idToken
			user := &domain.User{ID: "user-7", Username: "jane_doe", Email: "jane@example.com", Role: domain.RoleUser}
			return "session-token", user, nil
		},
	}

	e := newTestEcho()
	e.POST("/api/auth/google", handler.NewGoogleAuthHandler(svc).Login)

	rec := doJSON(e, http.MethodPost, "/api/auth/google", `{"idToken":"google-id-token"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotToken != "google-id-token" {
		t.Fatalf("id token not passed through: %q", gotToken)
	}

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID       string `json:"id"`
			Email    string `json:"email"`
			Username string `json:"username"`
		} `json:"user"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "Google login successful" || body.Token != "session-token" {
		t.Fatalf("unexpected body: %+v", body)
	}
	if body.User.ID != "user-7" || body.User.Email != "jane@example.com" || body.User.Username != "jane_doe" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
}

func TestGoogleAuthHandler_RejectedToken(t *testing.T) {
	svc := &stubAuthService{
		googleFn: func(context.Context, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}

	e := newTestEcho()
	e.POST("/api/auth/google", handler.NewGoogleAuthHandler(svc).Login)

	rec := doJSON(e, http.MethodPost, "/api/auth/google", `{"idToken":"forged"}`)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	decodeBody(t, rec, &body)
	if body.Message != "invalid credentials" {
		t.Fatalf("unexpected message: %q", body.Message)
	}
}
