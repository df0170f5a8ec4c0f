package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

func newTicketService(tickets *fakeTicketRepo, publisher *fakePublisher, audit *fakeAuditRepo) *TicketService {
	engine := policy.NewEngine()
	return NewTicketService(engine, tickets, publisher, NewAuditService(engine, audit), zap.NewNop())
}

func TestSubmitCreatesDraftAndPublishes(t *testing.T) {
	tickets := newFakeTicketRepo()
	publisher := &fakePublisher{}
	svc := newTicketService(tickets, publisher, &fakeAuditRepo{})

	creator := "user-1"
	ticket, err := svc.Submit(context.Background(), "  my printer is broken  ", &creator)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusDraft, ticket.Status)
	assert.Equal(t, "my printer is broken", ticket.Description)
	require.NotNil(t, ticket.CreatedBy)
	assert.Equal(t, "user-1", *ticket.CreatedBy)

	require.Len(t, publisher.published, 1)
	assert.Equal(t, ticket.ID, publisher.published[0].ticketID)
	assert.Equal(t, "my printer is broken", publisher.published[0].description)
}

func TestSubmitAnonymousHasNoCreator(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	ticket, err := svc.Submit(context.Background(), "help me", nil)
	require.NoError(t, err)
	assert.Nil(t, ticket.CreatedBy)
}

func TestSubmitRejectsEmptyDescription(t *testing.T) {
	svc := newTicketService(newFakeTicketRepo(), &fakePublisher{}, &fakeAuditRepo{})

	_, err := svc.Submit(context.Background(), "   ", nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestSubmitPersistFailureSkipsPublish(t *testing.T) {
	tickets := newFakeTicketRepo()
	tickets.createErr = errors.New("db down")
	publisher := &fakePublisher{}
	svc := newTicketService(tickets, publisher, &fakeAuditRepo{})

	_, err := svc.Submit(context.Background(), "help", nil)
	require.Error(t, err)
	assert.False(t, apperrors.IsQueueUnavailable(err))
	assert.Empty(t, publisher.published)
}

func TestSubmitQueueFailureKeepsTicket(t *testing.T) {
	tickets := newFakeTicketRepo()
	publisher := &fakePublisher{err: errors.New("broker unreachable")}
	svc := newTicketService(tickets, publisher, &fakeAuditRepo{})

	ticket, err := svc.Submit(context.Background(), "help", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsQueueUnavailable(err))

	// The ticket survives the failed hand-off.
	require.NotNil(t, ticket)
	assert.NotEmpty(t, ticket.ID)
	assert.Contains(t, tickets.tickets, ticket.ID)
}

func TestListUserScopedToOwnTickets(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	assignee := "staff-1"
	_, err := svc.List(context.Background(), domain.RoleUser, "user-1", TicketListFilter{Assignee: &assignee})
	require.NoError(t, err)

	require.NotNil(t, tickets.lastFilter.CreatedBy)
	assert.Equal(t, "user-1", *tickets.lastFilter.CreatedBy)
	// An explicit assignee filter never widens an owner-scoped listing.
	assert.Nil(t, tickets.lastFilter.AssignedTo)
}

func TestListAssigneeDefaultsToSelf(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	_, err := svc.List(context.Background(), domain.RoleAssignee, "staff-1", TicketListFilter{})
	require.NoError(t, err)

	assert.Nil(t, tickets.lastFilter.CreatedBy)
	require.NotNil(t, tickets.lastFilter.AssignedTo)
	assert.Equal(t, "staff-1", *tickets.lastFilter.AssignedTo)
}

func TestListAssigneeExplicitStatusLiftsSelfScope(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	status := domain.TicketStatus("OPEN")
	_, err := svc.List(context.Background(), domain.RoleAssignee, "staff-1", TicketListFilter{Status: &status})
	require.NoError(t, err)

	assert.Nil(t, tickets.lastFilter.CreatedBy)
	assert.Nil(t, tickets.lastFilter.AssignedTo)
	require.NotNil(t, tickets.lastFilter.Status)
	assert.Equal(t, status, *tickets.lastFilter.Status)
}

func TestListAdminExplicitAssigneeFilter(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	assignee := "staff-2"
	_, err := svc.List(context.Background(), domain.RoleAdmin, "admin-1", TicketListFilter{Assignee: &assignee})
	require.NoError(t, err)

	assert.Nil(t, tickets.lastFilter.CreatedBy)
	require.NotNil(t, tickets.lastFilter.AssignedTo)
	assert.Equal(t, "staff-2", *tickets.lastFilter.AssignedTo)
}

func TestListAdminUnfiltered(t *testing.T) {
	tickets := newFakeTicketRepo()
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	_, err := svc.List(context.Background(), domain.RoleAdmin, "admin-1", TicketListFilter{})
	require.NoError(t, err)

	assert.Nil(t, tickets.lastFilter.CreatedBy)
	assert.Nil(t, tickets.lastFilter.AssignedTo)
	assert.Nil(t, tickets.lastFilter.Status)
}

func TestListDeniedForUnknownRole(t *testing.T) {
	svc := newTicketService(newFakeTicketRepo(), &fakePublisher{}, &fakeAuditRepo{})

	_, err := svc.List(context.Background(), domain.Role("GUEST"), "g1", TicketListFilter{})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func seedTicket(t *testing.T, tickets *fakeTicketRepo) *domain.Ticket {
	t.Helper()
	ticket := &domain.Ticket{Description: "seed", Status: domain.StatusDraft}
	require.NoError(t, tickets.Create(context.Background(), ticket))
	return ticket
}

func TestUpdateForbiddenForUserRole(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	status := domain.TicketStatus("OPEN")
	_, err := svc.Update(context.Background(), domain.RoleUser, "user-1", seeded.ID,
		repository.TicketPatch{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperrors.ToDomainError(err).Code)
}

func TestUpdateRejectsEmptyPatch(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	svc := newTicketService(tickets, &fakePublisher{}, &fakeAuditRepo{})

	_, err := svc.Update(context.Background(), domain.RoleAdmin, "admin-1", seeded.ID, repository.TicketPatch{})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestUpdateUnknownTicketNotFound(t *testing.T) {
	svc := newTicketService(newFakeTicketRepo(), &fakePublisher{}, &fakeAuditRepo{})

	status := domain.TicketStatus("OPEN")
	_, err := svc.Update(context.Background(), domain.RoleAdmin, "admin-1", "missing",
		repository.TicketPatch{Status: &status})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUpdateAppendsAuditEntriesInOrder(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	audit := &fakeAuditRepo{}
	svc := newTicketService(tickets, &fakePublisher{}, audit)

	status := domain.TicketStatus("IN_PROGRESS")
	assignee := "staff-7"
	updated, err := svc.Update(context.Background(), domain.RoleAssignee, "staff-1", seeded.ID,
		repository.TicketPatch{Status: &status, AssignedTo: &assignee})
	require.NoError(t, err)

	assert.Equal(t, status, updated.Status)
	require.NotNil(t, updated.AssignedTo)
	assert.Equal(t, "staff-7", *updated.AssignedTo)

	require.Len(t, audit.entries, 2)
	assert.Equal(t, "Status updated to IN_PROGRESS", audit.entries[0].Action)
	assert.Equal(t, "Ticket assigned to user ID staff-7", audit.entries[1].Action)
	for _, entry := range audit.entries {
		assert.Equal(t, seeded.ID, entry.TicketID)
		require.NotNil(t, entry.ChangedBy)
		assert.Equal(t, "staff-1", *entry.ChangedBy)
	}
}

func TestUpdateStatusOnlyAppendsSingleEntry(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	audit := &fakeAuditRepo{}
	svc := newTicketService(tickets, &fakePublisher{}, audit)

	status := domain.TicketStatus("CLOSED")
	_, err := svc.Update(context.Background(), domain.RoleAdmin, "admin-1", seeded.ID,
		repository.TicketPatch{Status: &status})
	require.NoError(t, err)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "Status updated to CLOSED", audit.entries[0].Action)
}

func TestUpdateDescriptionOnlyAppendsNothing(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	audit := &fakeAuditRepo{}
	svc := newTicketService(tickets, &fakePublisher{}, audit)

	desc := "updated description"
	_, err := svc.Update(context.Background(), domain.RoleAdmin, "admin-1", seeded.ID,
		repository.TicketPatch{Description: &desc})
	require.NoError(t, err)
	assert.Empty(t, audit.entries)
}

func TestUpdateSucceedsWhenAuditWriteFails(t *testing.T) {
	tickets := newFakeTicketRepo()
	seeded := seedTicket(t, tickets)
	audit := &fakeAuditRepo{createErr: errors.New("audit table locked")}
	svc := newTicketService(tickets, &fakePublisher{}, audit)

	status := domain.TicketStatus("OPEN")
	updated, err := svc.Update(context.Background(), domain.RoleAdmin, "admin-1", seeded.ID,
		repository.TicketPatch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
}
