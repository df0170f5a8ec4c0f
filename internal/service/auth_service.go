package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aidesk/ticket-backend/internal/auth"
	"github.com/aidesk/ticket-backend/internal/config"
	"github.com/aidesk/ticket-backend/internal/domain"
	"github.com/aidesk/ticket-backend/internal/ratelimit"
	"github.com/aidesk/ticket-backend/internal/repository"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

const defaultFullName = "New User"

// AuthService coordinates registration and login flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	lockout    *ratelimit.LoginLockout
}

// NewAuthService builds the service. The lockout is optional.
func NewAuthService(cfg config.Config, users repository.UserRepository, lockout *ratelimit.LoginLockout) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLHours),
		bcryptCost: cfg.Auth.BcryptCost,
		lockout:    lockout,
	}
}

// RegisterInput describes a self-service registration.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

// Register creates a new account. The optional role is validated against
// the known roles and defaults to USER.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	role := domain.RoleUser
	if input.Role != "" {
		role = domain.Role(strings.ToUpper(input.Role))
		if !role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{
				"allowed": domain.ValidRoles,
			})
		}
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflict("user already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = defaultFullName
	}

	user := &domain.User{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     fullName,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password produce the same response so account existence is never
// revealed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	if s.lockout != nil && s.lockout.Locked(ctx, email) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.recordFailure(ctx, email)
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		s.recordFailure(ctx, email)
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	if s.lockout != nil {
		s.lockout.Clear(ctx, email)
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// GoogleAuth logs a federated user in, auto-provisioning a USER account on
// first sight. The generated credential only exists to satisfy the
// password column; it is never communicated to anyone.
func (s *AuthService) GoogleAuth(ctx context.Context, email, fullName string) (*domain.User, string, time.Time, bool, error) {
	created := false

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, false, apperrors.MapError(err)
		}

		hash, hashErr := auth.HashPassword(uuid.NewString()+uuid.NewString(), s.bcryptCost)
		if hashErr != nil {
			return nil, "", time.Time{}, false, apperrors.MapError(hashErr)
		}

		name := strings.TrimSpace(fullName)
		if name == "" {
			name = "Google User"
		}

		user = &domain.User{
			Email:        email,
			PasswordHash: hash,
			FullName:     name,
			Role:         domain.RoleUser,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", time.Time{}, false, apperrors.MapError(err)
		}
		created = true
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, false, apperrors.MapError(err)
	}
	return user, token, exp, created, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.lockout != nil {
		s.lockout.RecordFailure(ctx, email)
	}
}
