package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aidesk/ticket-backend/internal/domain"
	apperrors "github.com/aidesk/ticket-backend/pkg/util"
)

const identityKey = "auth_identity"

// Identity represents the authenticated caller as resolved from token
// claims. It is attached to the request context by this middleware and is
// the only identity source downstream handlers and services trust;
// identity fields supplied in request bodies are never used for
// authorization decisions.
type Identity struct {
	UserID string
	Email  string
	Role   domain.Role
}

// Middleware validates bearer tokens and injects the caller identity.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs the identity gateway middleware.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Require enforces authentication for protected route groups.
func (m *Middleware) Require(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	if identity == nil {
		return apperrors.NewUnauthorized("no token provided")
	}
	c.Locals(identityKey, identity)
	return c.Next()
}

// Optional resolves identity when a token is present but lets anonymous
// requests through. A token that is present but invalid is still rejected.
func (m *Middleware) Optional(c *fiber.Ctx) error {
	identity, err := m.resolve(c)
	if err != nil {
		return err
	}
	if identity != nil {
		c.Locals(identityKey, identity)
	}
	return c.Next()
}

// resolve extracts and verifies the bearer token. A nil identity with nil
// error means no Authorization header was sent.
func (m *Middleware) resolve(c *fiber.Ctx) (*Identity, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid token")
	}

	return &Identity{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

// IdentityFromContext retrieves the authenticated caller.
func IdentityFromContext(c *fiber.Ctx) (*Identity, bool) {
	val := c.Locals(identityKey)
	if val == nil {
		return nil, false
	}
	identity, ok := val.(*Identity)
	return identity, ok
}
