package ports

import (
	"context"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// RegisterInput carries the raw registration body; the service sanitizes it.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput identifies an account by email or, for legacy clients, by
// username. Exactly one identifier is expected; email wins when both are set.
type LoginInput struct {
	Email    string
	Username string
	Password string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (string, error)
	GoogleLogin(ctx context.Context, idToken string) (string, *domain.User, error)
}
