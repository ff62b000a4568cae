package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/api/metrics"
	"github.com/socialdash/dashboard-api/internal/core/domain"
	"github.com/socialdash/dashboard-api/internal/core/ports"
)

// maxUploadBytes bounds how much of the request body is read before the
// service-level size check even runs.
const maxUploadBytes = 5*1024*1024 + 1

type PostHandler struct {
	postService ports.PostService
}

func NewPostHandler(postService ports.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// Create handles an authenticated image post upload.
//
// @Summary      Upload a post (image + optional text)
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file    true   "Image file (max 5 MiB)"
// @Param        text   formData  string  false  "Post text"
// @Success      201    {object}  createPostResponse
// @Failure      400    {object}  messageResponse
// @Failure      401    {object}  messageResponse
// @Router       /upload-post [post]
func (h *PostHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var form uploadPostForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	image, contentType, err := readImageFile(c)
	if err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Request().Context(), ports.CreatePostInput{
		Username:    user.Username,
		Image:       image,
		ContentType: contentType,
		Text:        form.Text,
	})
	if err != nil {
		metrics.PostsCreatedTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PostsCreatedTotal.WithLabelValues("ok").Inc()
	metrics.UploadBytes.Observe(float64(len(image)))
	return c.JSON(http.StatusCreated, createPostResponse{
		Message: "Post created successfully",
		Post:    toPostResponse(*post),
	})
}

// Mine returns the caller's own posts, newest first.
//
// @Summary      List the authenticated user's posts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   postResponse
// @Failure      401  {object}  messageResponse
// @Router       /user-posts [get]
func (h *PostHandler) Mine(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.postService.UserPosts(c.Request().Context(), user.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPostResponses(posts))
}

// Feed returns a page of recent posts. When the request carries a bearer
// token the caller's own posts are excluded; the route itself is public and
// a bad token never fails the request.
//
// @Summary      Paginated public feed
// @Tags         posts
// @Produce      json
// @Param        page   query     int  false  "Page number (1-based)"
// @Param        limit  query     int  false  "Page size (max 50)"
// @Success      200    {object}  feedResponse
// @Router       /posts [get]
func (h *PostHandler) Feed(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	posts, total, err := h.postService.RecentPosts(c.Request().Context(), feedBearer(c), page, limit)
	if err != nil {
		return err
	}

	metrics.FeedRequestsTotal.Inc()
	return c.JSON(http.StatusOK, feedResponse{
		Posts: toPostResponses(posts),
		Total: total,
	})
}

func readImageFile(c echo.Context) ([]byte, string, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, "", domain.ErrNoImage
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return nil, "", echo.NewHTTPError(http.StatusBadRequest, "invalid upload")
	}
	return data, fh.Header.Get("Content-Type"), nil
}

func feedBearer(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func toPostResponse(p domain.Post) postResponse {
	likes := p.Likes
	if likes == nil {
		likes = []string{}
	}
	return postResponse{
		ID:        p.ID,
		Username:  p.Username,
		ImageURL:  p.ImageURL,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
		Likes:     likes,
	}
}

func toPostResponses(posts []domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}
