package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/repository"
)

type fakeTicketRepo struct {
	tickets    map[string]*domain.Ticket
	createErr  error
	updateErr  error
	lastFilter repository.TicketFilter
	listResult []domain.Ticket
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: make(map[string]*domain.Ticket)}
}

func (r *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	if r.createErr != nil {
		return r.createErr
	}
	ticket.ID = fmt.Sprintf("ticket-%d", len(r.tickets)+1)
	ticket.CreatedAt = time.Now()
	ticket.UpdatedAt = ticket.CreatedAt
	stored := *ticket
	r.tickets[ticket.ID] = &stored
	return nil
}

func (r *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) Update(_ context.Context, id string, patch repository.TicketPatch) (*domain.Ticket, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	if patch.Description != nil {
		ticket.Description = *patch.Description
	}
	if patch.Status != nil {
		ticket.Status = *patch.Status
	}
	if patch.AssignedTo != nil {
		ticket.AssignedTo = patch.AssignedTo
	}
	if patch.Category != nil {
		ticket.Category = patch.Category
	}
	if patch.Summary != nil {
		ticket.Summary = patch.Summary
	}
	ticket.UpdatedAt = time.Now()
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) ListWithFilter(_ context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	r.lastFilter = filter
	return r.listResult, nil
}

type publishedMessage struct {
	ticketID    string
	description string
}

type fakePublisher struct {
	err       error
	published []publishedMessage
}

func (p *fakePublisher) Publish(_ context.Context, ticketID, description string) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, publishedMessage{ticketID: ticketID, description: description})
	return nil
}

type fakeAuditRepo struct {
	entries   []domain.AuditLogEntry
	createErr error
}

func (r *fakeAuditRepo) Create(_ context.Context, entry *domain.AuditLogEntry) error {
	if r.createErr != nil {
		return r.createErr
	}
	entry.ID = fmt.Sprintf("log-%d", len(r.entries)+1)
	entry.Timestamp = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeAuditRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.AuditLogEntry, error) {
	var out []domain.AuditLogEntry
	for _, entry := range r.entries {
		if entry.TicketID == ticketID {
			out = append(out, entry)
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	comments       []domain.Comment
	lastPublicOnly bool
}

func (r *fakeCommentRepo) Create(_ context.Context, comment *domain.Comment) error {
	comment.ID = fmt.Sprintf("comment-%d", len(r.comments)+1)
	comment.CreatedAt = time.Now()
	r.comments = append(r.comments, *comment)
	return nil
}

func (r *fakeCommentRepo) ListByTicket(_ context.Context, ticketID string, publicOnly bool) ([]domain.Comment, error) {
	r.lastPublicOnly = publicOnly
	var out []domain.Comment
	for _, comment := range r.comments {
		if comment.TicketID != ticketID {
			continue
		}
		if publicOnly && comment.Type != domain.CommentTypePublic {
			continue
		}
		out = append(out, comment)
	}
	return out, nil
}

type fakeUserRepo struct {
	byEmail        map[string]*domain.User
	lastRoleFilter *domain.Role
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = fmt.Sprintf("user-%d", len(r.byEmail)+1)
	user.CreatedAt = time.Now()
	stored := *user
	r.byEmail[user.Email] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) List(_ context.Context, roleFilter *domain.Role) ([]domain.User, error) {
	r.lastRoleFilter = roleFilter
	var out []domain.User
	for _, user := range r.byEmail {
		if roleFilter != nil && user.Role != *roleFilter {
			continue
		}
		out = append(out, *user)
	}
	return out, nil
}
