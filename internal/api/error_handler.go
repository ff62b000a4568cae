package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client
//     (outside development, where the real message is returned to ease debugging).
//   - Renders a consistent JSON envelope: {"message": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger, env string) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c, env)
		_ = c.JSON(code, errorResponse{Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context, env string) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Validation errors carry the aggregated reason list verbatim.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error()
	}

	// Known domain errors → deterministic HTTP codes. The three login
	// failure modes all arrive here as ErrInvalidCredentials, so the
	// client-visible body is identical for each of them.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "user already exists"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrPostNotFound):
		return http.StatusNotFound, "post not found"
	case errors.Is(err, domain.ErrNoImage):
		return http.StatusBadRequest, "no image uploaded"
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusBadRequest, "image exceeds the 5 MiB limit"
	case errors.Is(err, domain.ErrInvalidImageType):
		return http.StatusBadRequest, "invalid file type, only images are allowed"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	if env == "development" {
		return http.StatusInternalServerError, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}
