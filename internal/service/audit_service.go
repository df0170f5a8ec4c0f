package service

import (
	"context"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// AuditService appends and reads the immutable change log for tickets.
type AuditService struct {
	policy *policy.Engine
	logs   repository.AuditLogRepository
}

// NewAuditService constructs the service.
func NewAuditService(engine *policy.Engine, logs repository.AuditLogRepository) *AuditService {
	return &AuditService{policy: engine, logs: logs}
}

// Append inserts one change-log entry. Entries are never updated or
// deleted.
func (s *AuditService) Append(ctx context.Context, ticketID, action string, changedBy *string) error {
	entry := &domain.AuditLogEntry{
		TicketID:  ticketID,
		Action:    action,
		ChangedBy: changedBy,
	}
	return s.logs.Create(ctx, entry)
}

// List returns the change log newest-first. USER-role actors are denied
// regardless of ticket ownership.
func (s *AuditService) List(ctx context.Context, role domain.Role, ticketID string) ([]domain.AuditLogEntry, error) {
	if !s.policy.Decide(role, policy.ActionAuditRead).Allow {
		return nil, apperrors.NewForbidden("audit log access requires a staff role")
	}
	entries, err := s.logs.ListByTicket(ctx, ticketID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}
