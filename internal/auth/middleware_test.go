package auth_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/task-tracker/internal/auth"
	"github.com/spec-kit/task-tracker/internal/domain"
	"github.com/spec-kit/task-tracker/internal/repository"
	"github.com/spec-kit/task-tracker/pkg/util/errorutil"
)

type stubUserRepo struct {
	user      *domain.User
	idLookups int
}

func (s *stubUserRepo) Create(context.Context, *domain.User) error { return nil }

func (s *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	s.idLookups++
	if s.user != nil && s.user.ID == id {
		found := *s.user
		return &found, nil
	}
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, repository.ErrNotFound
}

func (s *stubUserRepo) GetByIDs(context.Context, []string) (map[string]domain.User, error) {
	return map[string]domain.User{}, nil
}

func newProtectedApp(users repository.UserRepository, tokens *auth.TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := errorutil.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"error": fiber.Map{
				"code":    de.Code,
				"message": de.Message,
			}})
		},
	})
	middleware := auth.NewAuthMiddleware(tokens, users)
	app.Get("/protected", middleware.Handle, auth.RequireAuth(), func(c *fiber.Ctx) error {
		principal, ok := auth.PrincipalFromContext(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.JSON(fiber.Map{"role": principal.Role})
	})
	return app
}

func TestAuthMiddlewareRejectsUnauthenticated(t *testing.T) {
	tokens := auth.NewTokenManager("unit-test-secret", 15)

	cases := map[string]string{
		"missing header":   "",
		"malformed header": "Token abc",
		"invalid token":    "Bearer not.a.token",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &stubUserRepo{}
			app := newProtectedApp(repo, tokens)

			req := httptest.NewRequest("GET", "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
			// rejected before any store access
			assert.Zero(t, repo.idLookups)
		})
	}
}

func TestAuthMiddlewareRejectsDeletedPrincipal(t *testing.T) {
	tokens := auth.NewTokenManager("unit-test-secret", 15)
	repo := &stubUserRepo{}
	app := newProtectedApp(repo, tokens)

	token, _, err := tokens.GenerateToken(uuid.NewString(), domain.UserRoleUser)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, repo.idLookups)
}

func TestAuthMiddlewareLoadsPrincipal(t *testing.T) {
	tokens := auth.NewTokenManager("unit-test-secret", 15)
	user := &domain.User{ID: uuid.NewString(), Name: "Dana", Email: "dana@example.com", Role: domain.UserRoleAdmin}
	repo := &stubUserRepo{user: user}
	app := newProtectedApp(repo, tokens)

	token, _, err := tokens.GenerateToken(user.ID, user.Role)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuthWithoutPrincipal(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := errorutil.ToDomainError(err)
			return c.SendStatus(de.HTTPStatus)
		},
	})
	app.Get("/guarded", auth.RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/guarded", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
