package domain

import "time"

// TicketStatus is a free-form progression marker; tickets start in DRAFT.
type TicketStatus string

// StatusDraft is the status every submitted ticket starts with.
const StatusDraft TicketStatus = "DRAFT"

// Ticket is the aggregate for support requests.
type Ticket struct {
	ID          string
	Description string
	Status      TicketStatus
	CreatedBy   *string
	AssignedTo  *string
	Category    *string
	Summary     *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Display names joined from the users table on list queries.
	CreatedByName *string
	AssigneeName  *string
}
