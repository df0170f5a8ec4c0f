package service

import (
	"context"
	"strings"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// CommentService enforces comment visibility rules layered on the ticket.
type CommentService struct {
	policy   *policy.Engine
	comments repository.CommentRepository
}

// NewCommentService constructs the service.
func NewCommentService(engine *policy.Engine, comments repository.CommentRepository) *CommentService {
	return &CommentService{policy: engine, comments: comments}
}

// List returns a ticket's comments oldest-first. USER-role actors only
// ever see PUBLIC comments.
func (s *CommentService) List(ctx context.Context, role domain.Role, ticketID string) ([]domain.Comment, error) {
	decision := s.policy.Decide(role, policy.ActionCommentRead)
	if !decision.Allow {
		return nil, apperrors.NewForbidden("comment access not permitted")
	}
	comments, err := s.comments.ListByTicket(ctx, ticketID, decision.PublicCommentsOnly)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

// Add stores a comment. The type is fixed at creation: USER authors are
// always forced to PUBLIC, privileged authors default to PUBLIC and may
// request INTERNAL.
func (s *CommentService) Add(ctx context.Context, role domain.Role, actorID, ticketID, message string, requestedType string) (*domain.Comment, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	decision := s.policy.Decide(role, policy.ActionCommentWrite)
	if !decision.Allow {
		return nil, apperrors.NewForbidden("comment write not permitted")
	}

	commentType := domain.CommentTypePublic
	if !decision.ForcePublicComment && requestedType != "" {
		requested := domain.CommentType(strings.ToUpper(requestedType))
		if !requested.Valid() {
			return nil, apperrors.NewValidationError("type must be PUBLIC or INTERNAL", nil)
		}
		commentType = requested
	}

	comment := &domain.Comment{
		TicketID: ticketID,
		UserID:   actorID,
		Message:  message,
		Type:     commentType,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return comment, nil
}
