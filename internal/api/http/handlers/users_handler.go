package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aidesk/ticket-backend/internal/api/dto"
	"github.com/aidesk/ticket-backend/internal/auth"
	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/service"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// UsersHandler exposes the user directory.
type UsersHandler struct {
	directory *service.DirectoryService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(directoryService *service.DirectoryService) *UsersHandler {
	return &UsersHandler{directory: directoryService}
}

// List handles GET /users with an optional role filter.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	var roleFilter *domain.Role
	if role := c.Query("role"); role != "" {
		filtered := domain.Role(strings.ToUpper(role))
		roleFilter = &filtered
	}

	users, err := h.directory.List(c.Context(), identity.Role, roleFilter)
	if err != nil {
		return err
	}

	items := make([]dto.DirectoryUserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.DirectoryUserResponse{
			ID:       user.ID,
			FullName: user.FullName,
			Email:    user.Email,
			Role:     user.Role,
			Scope:    user.Scope,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
