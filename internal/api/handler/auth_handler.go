package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/api/metrics"
	"github.com/socialdash/dashboard-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      409   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.RegistrationsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User registered successfully",
		ID:      user.ID,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login with email (or legacy username) and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("password", "error").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("password", "ok").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}
