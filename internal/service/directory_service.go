package service

import (
	"context"

	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/policy"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

// DirectoryService exposes the read-only account listing for privileged
// roles.
type DirectoryService struct {
	policy *policy.Engine
	users  repository.UserRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(engine *policy.Engine, users repository.UserRepository) *DirectoryService {
	return &DirectoryService{policy: engine, users: users}
}

// List returns the minimal account projection, optionally filtered by
// role. Denied for USER and any unrecognized role.
func (s *DirectoryService) List(ctx context.Context, role domain.Role, roleFilter *domain.Role) ([]domain.User, error) {
	if !s.policy.Decide(role, policy.ActionUserList).Allow {
		return nil, apperrors.NewForbidden("user directory access not permitted")
	}
	users, err := s.users.List(ctx, roleFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}
