package ports

import (
	"context"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// UserRepository defines the interface for credential-record persistence.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// FindByEmailOrUsername returns the first record colliding on either
	// field, so registration can report which one is taken.
	FindByEmailOrUsername(ctx context.Context, email, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	LinkGoogleID(ctx context.Context, id, googleID string) error
	List(ctx context.Context) ([]domain.User, error)
}
