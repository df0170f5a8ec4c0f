package dto

import "github.com/aidesk/ticket-backend/internal/domain"

// DirectoryUserResponse is the minimal projection exposed by the user
// directory.
type DirectoryUserResponse struct {
	ID       string      `json:"id"`
	FullName string      `json:"full_name"`
	Email    string      `json:"email"`
	Role     domain.Role `json:"role"`
	Scope    *string     `json:"scope"`
}
