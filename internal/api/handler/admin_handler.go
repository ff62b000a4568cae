package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/socialdash/dashboard-api/internal/core/ports"
)

type AdminHandler struct {
	users ports.UserRepository
}

func NewAdminHandler(users ports.UserRepository) *AdminHandler {
	return &AdminHandler{users: users}
}

// ListUsers returns every account without credential material.
//
// @Summary      List registered users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   adminUserResponse
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			Role:      u.Role,
			Federated: u.GoogleID != "",
			CreatedAt: u.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}
