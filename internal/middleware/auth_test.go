package middleware_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/paxinfy/backend/internal/config"
	"github.com/paxinfy/backend/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func protectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.JWTProtected(cfg), func(c *fiber.Ctx) error {
		userID, err := middleware.UserID(c)
		if err != nil {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(userID.String())
	})
	return app
}

func TestJWTProtectedRejectsMissingToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTProtectedRejectsExpiredToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Minute).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTProtectedRejectsWrongKey(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	signed := signToken(t, "another-secret", jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestJWTProtectedPassesValidToken(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	app := protectedApp(cfg)

	userID := uuid.New()
	signed := signToken(t, cfg.JWTSecret, jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(time.Minute).Unix(),
	})

	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), string(body))
}
