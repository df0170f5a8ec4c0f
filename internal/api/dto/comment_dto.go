package dto

import (
	"time"

	"github.com/aidesk/ticket-backend/internal/domain"
)

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// CommentResponse projection.
type CommentResponse struct {
	ID          string             `json:"id"`
	TicketID    string             `json:"ticket_id"`
	UserID      string             `json:"user_id"`
	Message     string             `json:"message"`
	Type        domain.CommentType `json:"type"`
	AuthorName  *string            `json:"author_name,omitempty"`
	AuthorEmail *string            `json:"author_email,omitempty"`
	AuthorRole  *domain.Role       `json:"author_role,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// AuditLogResponse projection.
type AuditLogResponse struct {
	ID            string    `json:"id"`
	TicketID      string    `json:"ticket_id"`
	Action        string    `json:"action"`
	ChangedBy     *string   `json:"changed_by"`
	ChangedByName *string   `json:"changed_by_name,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
}
