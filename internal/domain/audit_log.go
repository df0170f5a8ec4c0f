package domain

import "time"

// AuditLogEntry is an immutable record of a single observed field change
// on a ticket. Entries are only ever appended.
type AuditLogEntry struct {
	ID        string
	TicketID  string
	Action    string
	ChangedBy *string
	Timestamp time.Time

	// ChangedByName is joined from the users table on reads.
	ChangedByName *string
}
