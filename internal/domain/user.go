package domain

import "time"

// Role determines what a caller may see and mutate.
type Role string

const (
	RoleUser     Role = "USER"
	RoleAssignee Role = "ASSIGNEE"
	RoleAdmin    Role = "ADMIN"
)

// ValidRoles lists every role accepted at registration.
var ValidRoles = []Role{RoleUser, RoleAssignee, RoleAdmin}

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	for _, candidate := range ValidRoles {
		if r == candidate {
			return true
		}
	}
	return false
}

// Privileged reports whether the role may act beyond its own tickets.
func (r Role) Privileged() bool {
	return r == RoleAssignee || r == RoleAdmin
}

// User is an account that can authenticate and own tickets.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Scope        *string
	CreatedAt    time.Time
}
