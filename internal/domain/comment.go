package domain

import "time"

// CommentType separates customer-visible comments from staff notes.
type CommentType string

const (
	CommentTypePublic   CommentType = "PUBLIC"
	CommentTypeInternal CommentType = "INTERNAL"
)

// Valid reports whether the type is one of the accepted comment types.
func (t CommentType) Valid() bool {
	return t == CommentTypePublic || t == CommentTypeInternal
}

// Comment is an immutable message attached to a ticket.
type Comment struct {
	ID        string
	TicketID  string
	UserID    string
	Message   string
	Type      CommentType
	CreatedAt time.Time

	// Author display fields joined from the users table.
	AuthorName  *string
	AuthorEmail *string
	AuthorRole  *Role
}
