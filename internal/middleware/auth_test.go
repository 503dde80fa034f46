package middleware

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestApp(validator func(token string) (string, error)) *fiber.App {
	app := fiber.New()
	app.Use(NewAuth(AuthConfig{Validator: validator}))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c)})
	})
	return app
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	app := newAuthTestApp(func(token string) (string, error) {
		assert.Equal(t, "good-token", token, "Bearer prefix must be stripped")
		return "user-42", nil
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer good-token")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	app := newAuthTestApp(func(token string) (string, error) {
		t.Error("validator must not run without a header")
		return "", nil
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := newAuthTestApp(func(token string) (string, error) {
		return "", errors.New("bad signature")
	})

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer forged")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareNextSkips(t *testing.T) {
	app := fiber.New()
	app.Use(NewAuth(AuthConfig{
		Next:      func(c *fiber.Ctx) bool { return true },
		Validator: func(token string) (string, error) { return "", errors.New("unreachable") },
	}))
	app.Get("/open", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
