//go:build integration

package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ddl, err := os.ReadFile("../../migrations/migrations.sql")
	require.NoError(t, err)
	_, err = pool.Exec(context.Background(), string(ddl))
	require.NoError(t, err)

	return pool
}

func authApp(pool *pgxpool.Pool) *fiber.App {
	h := &AuthHandler{DB: pool, JWTSecret: []byte("test-secret"), TokenTTL: time.Hour}
	app := fiber.New()
	app.Post("/auth/register", h.Register)
	app.Post("/auth/login", h.Login)
	return app
}

func TestRegisterDuplicateEmail(t *testing.T) {
	pool := testPool(t)
	app := authApp(pool)

	email := fmt.Sprintf("dup-%d@test.local", time.Now().UnixNano())
	t.Cleanup(func() {
		pool.Exec(context.Background(), `DELETE FROM users WHERE email=$1`, email)
	})
	body := fmt.Sprintf(`{"name":"Ana","email":%q,"password":"pw123456"}`, email)

	post := func() (int, map[string]interface{}) {
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, 10000)
		require.NoError(t, err)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		return resp.StatusCode, payload
	}

	status, payload := post()
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, payload["token"])

	status, payload = post()
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Email already in use.", payload["msg"])
}
