package auth

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/repository"
)

const principalKey = "auth_principal"

// Middleware validates bearer tokens and loads the calling user.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
}

// NewMiddleware constructs the middleware.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return fiber.NewError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fiber.NewError(http.StatusUnauthorized, "invalid authorization header")
	}

	claims, err := m.tokens.Parse(parts[1])
	if err != nil {
		return fiber.NewError(http.StatusUnauthorized, "invalid token")
	}

	user, err := m.lookup(c, claims.Subject)
	if err != nil {
		return err
	}

	c.Locals(principalKey, user)
	return c.Next()
}

func (m *Middleware) lookup(c *fiber.Ctx, subject string) (*domain.User, error) {
	id, err := uuid.Parse(subject)
	if err != nil {
		return nil, fiber.NewError(http.StatusUnauthorized, "invalid token subject")
	}
	user, err := m.users.GetByID(c.UserContext(), id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fiber.NewError(http.StatusUnauthorized, "user not found")
	}
	return user, nil
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}
