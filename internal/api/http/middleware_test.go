package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/api/http/handlers"
	"github.com/spec-kit/user-service/internal/apierror"
	"github.com/spec-kit/user-service/internal/auth"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/i18n"
	"github.com/spec-kit/user-service/internal/identity"
	"github.com/spec-kit/user-service/internal/observability"
	"github.com/spec-kit/user-service/internal/service"
)

type fakeUserRepo struct {
	byID map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return f.byID[id], nil
}

func (f *fakeUserRepo) GetByNormalizedMailAddress(_ context.Context, normalized string) (*domain.User, error) {
	for _, user := range f.byID {
		if strings.ToUpper(user.MailAddress()) == normalized {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByNormalizedUserName(_ context.Context, normalized string) (*domain.User, error) {
	for _, user := range f.byID {
		if strings.ToUpper(user.UserName()) == normalized {
			return user, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(f.byID))
	for _, user := range f.byID {
		out = append(out, user)
	}
	return out, nil
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.byID[user.ID()] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.byID[user.ID()] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.byID, id)
	return nil
}

func newTestApp(t *testing.T) (*fiber.App, *auth.TokenManager) {
	t.Helper()

	repo := newFakeUserRepo()
	store := identity.NewUserStore(repo)
	manager := identity.NewManager(store, bcrypt.MinCost)
	userService := service.NewUserService(service.UserDependencies{
		Manager:      manager,
		UserRepo:     repo,
		ErrorFactory: apierror.NewFactory(i18n.NewCatalog()),
	}, zap.NewNop())
	tokenManager := auth.NewTokenManager("test-secret")

	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("user-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(userService, tokenManager),
		AuthMiddleware: auth.NewMiddleware(tokenManager, repo),
	})

	// route used to exercise the generic 500 path
	app.Get("/boom", func(*fiber.Ctx) error {
		return errors.New("kaboom")
	})

	return app, tokenManager
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, header map[string]string) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	if len(raw) > 0 && json.Valid(raw) && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func TestSignUpEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns the user view model", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "a@b.com", body["mailAddress"])
		require.Equal(t, "Ann", body["userName"])
		require.NotEmpty(t, body["id"])
	})

	t.Run("duplicate username renders a conflict", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a2@b.com", Username: "Ann", Password: "pw"}, nil)

		require.Equal(t, http.StatusConflict, resp.StatusCode)
		require.Equal(t, "UsernameAlreadyExists", body["code"])
		require.Contains(t, body["message"], "Ann")
		require.NotNil(t, body["details"])
	})

	t.Run("localizes the error message from Accept-Language", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a2@b.com", Username: "Ann", Password: "pw"},
			map[string]string{fiber.HeaderAcceptLanguage: "fr-FR"})

		require.Contains(t, body["message"], "déjà pris")
	})

	t.Run("missing fields are a bad request", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com"}, nil)
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestSignInEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("returns the user and a valid bearer token", func(t *testing.T) {
		app, tokens := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/users/signin",
			dto.SignInRequest{UsernameOrMailAddress: "Ann", Password: "pw"}, nil)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		user, ok := body["user"].(map[string]any)
		require.True(t, ok)
		require.Equal(t, "Ann", user["userName"])

		token, ok := body["bearerToken"].(string)
		require.True(t, ok)
		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		require.Equal(t, "Ann", claims.Name)
		require.Equal(t, "a@b.com", claims.Email)
	})

	t.Run("bad credentials render unauthorized", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/users/signin",
			dto.SignInRequest{UsernameOrMailAddress: "X", Password: "pw"}, nil)

		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		require.Equal(t, "InvalidCredentials", body["code"])
		require.Contains(t, body["message"], "X")
	})
}

func TestUsersEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("listing is anonymous", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		req := httptest.NewRequest(fiber.MethodGet, "/api/users/", nil)
		listResp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, listResp.StatusCode)

		raw, err := io.ReadAll(listResp.Body)
		require.NoError(t, err)

		var users []dto.UserViewModel
		require.NoError(t, json.Unmarshal(raw, &users))
		require.Len(t, users, 1)
		require.Equal(t, "Ann", users[0].UserName)
	})

	t.Run("creation requires a bearer token", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/",
			dto.CreateUserRequest{MailAddress: "a@b.com", Username: "Ann", Password: "pw"}, nil)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("creation succeeds with a token from sign-in", func(t *testing.T) {
		app, _ := newTestApp(t)

		resp, _ := doJSON(t, app, fiber.MethodPost, "/api/users/signup",
			dto.SignUpRequest{MailAddress: "admin@b.com", Username: "Admin", Password: "pw"}, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, signin := doJSON(t, app, fiber.MethodPost, "/api/users/signin",
			dto.SignInRequest{UsernameOrMailAddress: "Admin", Password: "pw"}, nil)
		token := signin["bearerToken"].(string)

		resp, body := doJSON(t, app, fiber.MethodPost, "/api/users/",
			dto.CreateUserRequest{MailAddress: "New@B.com", Username: "Newbie", Password: "pw"},
			map[string]string{fiber.HeaderAuthorization: "Bearer " + token})

		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Equal(t, "new@b.com", body["mailAddress"])
		require.Equal(t, "Newbie", body["userName"])
	})
}

func TestGenericErrorRendering(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, fiber.MethodGet, "/boom", nil, nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, "Unexpected error occurred.", body["message"])
	require.NotContains(t, body, "code")
}
