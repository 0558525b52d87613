package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/service"
)

// UsersHandler exposes the user endpoints.
type UsersHandler struct {
	users  *service.UserService
	tokens *auth.TokenManager
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(users *service.UserService, tokens *auth.TokenManager) *UsersHandler {
	return &UsersHandler{users: users, tokens: tokens}
}

// GetAll handles GET /api/users.
func (h *UsersHandler) GetAll(c *fiber.Ctx) error {
	users, err := h.users.GetAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserViewModels(users))
}

// SignIn handles POST /api/users/signin and issues a bearer token.
func (h *UsersHandler) SignIn(c *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.UsernameOrMailAddress == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "usernameOrMailAddress and password required")
	}

	user, err := h.users.SignIn(c.UserContext(), req.UsernameOrMailAddress, req.Password)
	if err != nil {
		return err
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		return err
	}

	return c.JSON(dto.LogInViewModel{
		User:        dto.NewUserViewModel(user),
		BearerToken: token,
	})
}

// SignUp handles POST /api/users/signup.
func (h *UsersHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MailAddress == "" || req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "mailAddress, username, password required")
	}

	user, err := h.users.SignUp(c.UserContext(), req.MailAddress, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserViewModel(user))
}

// Create handles POST /api/users (authenticated).
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.MailAddress == "" || req.Username == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "mailAddress, username, password required")
	}

	user, err := h.users.Create(c.UserContext(), req.MailAddress, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewUserViewModel(user))
}
