package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/socialdash/dashboard-api/internal/core/domain"
	"github.com/socialdash/dashboard-api/internal/core/ports"
)

const (
	maxImageBytes   = 5 * 1024 * 1024
	defaultPageSize = 20
	maxPageSize     = 50
	// maxPage bounds the skip computation: (maxPage-1)*maxPageSize stays far
	// from integer overflow and inside what the store accepts as a skip.
	maxPage      = 1 << 20
	uploadFolder = "user_posts"
)

// Characters the image host treats as argument separators; replaced before
// the value is used as a public id.
var unsafePublicIDChars = regexp.MustCompile(`[&\s/\\?#%<>:"'` + "`" + `|{}]`)
var dashRun = regexp.MustCompile(`-+`)

// PostService implements authenticated uploads and the public feed.
type PostService struct {
	posts    ports.PostRepository
	users    ports.UserRepository
	uploader ports.ImageUploader
	tokens   ports.TokenService
	cache    ports.UsernameCache
	log      zerolog.Logger
	now      func() time.Time
}

func NewPostService(posts ports.PostRepository, users ports.UserRepository, uploader ports.ImageUploader, tokens ports.TokenService, cache ports.UsernameCache, log zerolog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		uploader: uploader,
		tokens:   tokens,
		cache:    cache,
		log:      log,
		now:      time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, in ports.CreatePostInput) (*domain.Post, error) {
	if len(in.Image) == 0 {
		return nil, domain.ErrNoImage
	}
	if len(in.Image) > maxImageBytes {
		return nil, domain.ErrImageTooLarge
	}
	if !strings.HasPrefix(in.ContentType, "image/") {
		return nil, domain.ErrInvalidImageType
	}

	result, err := s.uploader.Upload(ctx, in.Image, ports.UploadOptions{
		Folder:   uploadFolder,
		PublicID: fmt.Sprintf("%s_%d", sanitizePublicID(in.Username), s.now().UnixMilli()),
	})
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	post, err := s.posts.Insert(ctx, &domain.Post{
		Username:  in.Username,
		ImageURL:  result.SecureURL,
		Text:      in.Text,
		CreatedAt: s.now().UTC(),
		Likes:     []string{},
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("event", "POST_CREATED").
		Str("username", in.Username).
		Int64("bytes", result.Bytes).
		Msg("post created")
	return post, nil
}

func (s *PostService) UserPosts(ctx context.Context, username string) ([]domain.Post, error) {
	return s.posts.FindByUsername(ctx, username)
}

// RecentPosts returns one page of the public feed, newest first. When the
// caller presented a bearer token, their own posts are excluded; every
// failure while resolving that token degrades silently to no exclusion.
func (s *PostService) RecentPosts(ctx context.Context, bearer string, page, limit int) ([]domain.Post, int64, error) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	exclude := s.resolveUsername(ctx, bearer)
	return s.posts.FindRecent(ctx, exclude, (page-1)*limit, limit)
}

func (s *PostService) resolveUsername(ctx context.Context, bearer string) string {
	if bearer == "" {
		return ""
	}

	sub, err := s.tokens.Verify(bearer)
	if err != nil {
		return ""
	}

	if name, err := s.cache.Lookup(ctx, sub.ID); err == nil && name != "" {
		return name
	}

	user, err := s.users.FindByID(ctx, sub.ID)
	if err != nil {
		return ""
	}
	if err := s.cache.Store(ctx, sub.ID, user.Username); err != nil {
		s.log.Debug().Err(err).Msg("username cache store failed")
	}
	return user.Username
}

func sanitizePublicID(s string) string {
	cleaned := dashRun.ReplaceAllString(unsafePublicIDChars.ReplaceAllString(s, "-"), "-")
	if len(cleaned) > 200 {
		cleaned = cleaned[:200]
	}
	if cleaned == "" {
		return "user"
	}
	return cleaned
}
