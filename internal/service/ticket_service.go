package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// QueuePublisher is the broker hand-off contract for created tickets.
type QueuePublisher interface {
	Publish(ctx context.Context, ticketID, description string) error
}

// TicketService coordinates ticket lifecycle: submission with queue
// hand-off, role-filtered listing and audited updates.
type TicketService struct {
	policy    *policy.Engine
	tickets   repository.TicketRepository
	publisher QueuePublisher
	audit     *AuditService
	logger    *zap.Logger
}

// NewTicketService constructs the service.
func NewTicketService(engine *policy.Engine, tickets repository.TicketRepository, publisher QueuePublisher, audit *AuditService, logger *zap.Logger) *TicketService {
	return &TicketService{
		policy:    engine,
		tickets:   tickets,
		publisher: publisher,
		audit:     audit,
		logger:    logger,
	}
}

// TicketListFilter carries caller-supplied listing constraints.
type TicketListFilter struct {
	Status   *domain.TicketStatus
	Assignee *string
}

// Submit persists a DRAFT ticket and hands it to the processing queue.
// Queue failure does not roll the ticket back: the ticket is returned
// together with a QUEUE_UNAVAILABLE error so the caller can report the
// degraded outcome.
func (s *TicketService) Submit(ctx context.Context, description string, creatorID *string) (*domain.Ticket, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, apperrors.NewValidationError("message required", nil)
	}

	ticket := &domain.Ticket{
		Description: description,
		Status:      domain.StatusDraft,
		CreatedBy:   creatorID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		// Persistence failed: no queue message may be sent.
		return nil, apperrors.MapError(err)
	}

	if err := s.publisher.Publish(ctx, ticket.ID, ticket.Description); err != nil {
		s.logger.Warn("ticket created but queue publish failed",
			zap.String("ticket_id", ticket.ID), zap.Error(err))
		return ticket, apperrors.NewQueueUnavailable(err)
	}
	return ticket, nil
}

// List returns tickets visible to the actor, the policy visibility rule
// applied before any explicit filter.
func (s *TicketService) List(ctx context.Context, role domain.Role, actorID string, filter TicketListFilter) ([]domain.Ticket, error) {
	hasExplicitFilter := filter.Status != nil || filter.Assignee != nil
	visibility, allowed := s.policy.TicketListVisibility(role, actorID, hasExplicitFilter)
	if !allowed {
		return nil, apperrors.NewForbidden("ticket listing not permitted")
	}

	repoFilter := repository.TicketFilter{
		CreatedBy:  visibility.CreatedBy,
		AssignedTo: visibility.AssignedTo,
		Status:     filter.Status,
	}
	// Explicit assignee filters from privileged callers override the
	// default self-scope; owner-scoped callers never get them.
	if visibility.CreatedBy == nil && filter.Assignee != nil {
		repoFilter.AssignedTo = filter.Assignee
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// Update applies a patch to a ticket and appends one audit entry per
// observed change: status first, then assignment.
func (s *TicketService) Update(ctx context.Context, role domain.Role, actorID, ticketID string, patch repository.TicketPatch) (*domain.Ticket, error) {
	if !s.policy.Decide(role, policy.ActionTicketWrite).Allow {
		return nil, apperrors.NewForbidden("users cannot edit tickets directly")
	}
	if patch.Empty() {
		return nil, apperrors.NewValidationError("no updatable fields in patch", nil)
	}

	ticket, err := s.tickets.Update(ctx, ticketID, patch)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	for _, action := range detectChanges(patch) {
		if err := s.audit.Append(ctx, ticketID, action, &actorID); err != nil {
			s.logger.Error("failed to append audit entry",
				zap.String("ticket_id", ticketID), zap.String("action", action), zap.Error(err))
		}
	}
	return ticket, nil
}

// detectChanges builds the ordered list of audit actions for a patch.
// Status and assignment are detected independently; the order is fixed.
func detectChanges(patch repository.TicketPatch) []string {
	changes := make([]string, 0, 2)
	if patch.Status != nil {
		changes = append(changes, fmt.Sprintf("Status updated to %s", *patch.Status))
	}
	if patch.AssignedTo != nil {
		changes = append(changes, fmt.Sprintf("Ticket assigned to user ID %s", *patch.AssignedTo))
	}
	return changes
}
