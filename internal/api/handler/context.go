package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/api/middleware"
	"github.com/socialdash/dashboard-api/internal/core/domain"
)

// currentUser extracts the identity attached by the Auth middleware. Its
// presence proves the gate ran; a protected handler reached without it is a
// wiring bug, surfaced as 401 rather than a panic.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserKey).(*domain.User)
	if !ok || user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return user, nil
}
