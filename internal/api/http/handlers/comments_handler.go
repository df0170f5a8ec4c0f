package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/aidesk/ticket-backend/internal/api/dto"
	"github.com/aidesk/ticket-backend/internal/auth"
	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/service"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// CommentsHandler manages comment endpoints nested under tickets.
type CommentsHandler struct {
	comments *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{comments: commentService}
}

// List handles GET /tickets/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	comments, err := h.comments.List(c.Context(), identity.Role, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add handles POST /tickets/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("no token provided")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body required", nil)
	}

	comment, err := h.comments.Add(c.Context(), identity.Role, identity.UserID, c.Params("id"), req.Message, req.Type)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:          comment.ID,
		TicketID:    comment.TicketID,
		UserID:      comment.UserID,
		Message:     comment.Message,
		Type:        comment.Type,
		AuthorName:  comment.AuthorName,
		AuthorEmail: comment.AuthorEmail,
		AuthorRole:  comment.AuthorRole,
		CreatedAt:   comment.CreatedAt,
	}
}
