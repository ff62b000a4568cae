package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/api/metrics"
	"github.com/socialdash/dashboard-api/internal/core/ports"
)

type GoogleAuthHandler struct {
	authService ports.AuthService
}

func NewGoogleAuthHandler(authService ports.AuthService) *GoogleAuthHandler {
	return &GoogleAuthHandler{authService: authService}
}

// Login exchanges a Google ID token for an internal bearer token.
//
// @Summary      Login with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleLoginRequest  true  "Google ID token"
// @Success      200   {object}  googleLoginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /auth/google [post]
func (h *GoogleAuthHandler) Login(c echo.Context) error {
	var req googleLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.IDToken == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "ID token is required")
	}

	token, user, err := h.authService.GoogleLogin(c.Request().Context(), req.IDToken)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("google", "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("google", "ok").Inc()
	return c.JSON(http.StatusOK, googleLoginResponse{
		Message: "Google login successful",
		Token:   token,
		User: userResponse{
			ID:       user.ID,
			Email:    user.Email,
			Username: user.Username,
		},
	})
}
