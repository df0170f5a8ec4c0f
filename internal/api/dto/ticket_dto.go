package dto

import (
	"time"

	"github.com/aidesk/ticket-backend/internal/domain"
)

// SubmitTicketRequest payload. Identity for authorization comes from the
// bearer token, never from these fields.
type SubmitTicketRequest struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SubmitTicketResponse reports the created ticket and whether the
// processing job was queued.
type SubmitTicketResponse struct {
	TicketID string              `json:"ticket_id"`
	Status   domain.TicketStatus `json:"status"`
	Queued   bool                `json:"queued"`
}

// UpdateTicketRequest is the PATCH payload. The ticket id and creation
// timestamp are not represented and therefore can never be patched.
type UpdateTicketRequest struct {
	Description *string              `json:"description"`
	Status      *domain.TicketStatus `json:"status"`
	AssignedTo  *string              `json:"assigned_to"`
	Category    *string              `json:"category"`
	Summary     *string              `json:"summary"`
}

// TicketResponse is the full ticket projection.
type TicketResponse struct {
	ID            string              `json:"id"`
	Description   string              `json:"description"`
	Status        domain.TicketStatus `json:"status"`
	CreatedBy     *string             `json:"created_by"`
	AssignedTo    *string             `json:"assigned_to"`
	Category      *string             `json:"category,omitempty"`
	Summary       *string             `json:"summary,omitempty"`
	CreatedByName *string             `json:"created_by_name,omitempty"`
	AssigneeName  *string             `json:"assignee_name,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
