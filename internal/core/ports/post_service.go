package ports

import (
	"context"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// CreatePostInput carries an authenticated upload: the image bytes plus the
// caller's resolved username.
type CreatePostInput struct {
	Username    string
	Image       []byte
	ContentType string
	Text        string
}

type PostService interface {
	CreatePost(ctx context.Context, in CreatePostInput) (*domain.Post, error)
	UserPosts(ctx context.Context, username string) ([]domain.Post, error)
	// RecentPosts returns one feed page. bearer, when non-empty, is the raw
	// token of the caller; resolving it to a username excludes their own
	// posts, and any failure along that path degrades to no exclusion.
	RecentPosts(ctx context.Context, bearer string, page, limit int) ([]domain.Post, int64, error)
}
