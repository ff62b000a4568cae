package ports

import (
	"context"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// PostRepository defines the interface for feed-post persistence.
type PostRepository interface {
	Insert(ctx context.Context, post *domain.Post) (*domain.Post, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Post, error)
	// FindRecent returns a page of posts newest-first, excluding
	// excludeUsername when non-empty, plus the total matching count.
	FindRecent(ctx context.Context, excludeUsername string, skip, limit int) ([]domain.Post, int64, error)
}

// UsernameCache is a best-effort cache from user id to canonical username,
// used when excluding a caller's own posts from the public feed. A miss is
// ("", nil); failures are ignored by callers.
type UsernameCache interface {
	Lookup(ctx context.Context, userID string) (string, error)
	Store(ctx context.Context, userID, username string) error
}
