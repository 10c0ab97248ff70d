package bill

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitornoms1/FinanceManager/internal/auth"
)

var testSecret = []byte("test-secret")

// Validation failures never reach the repository, so a nil pool is safe.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	h := NewHandler(NewRepository(nil), true)
	app := fiber.New()
	app.Post("/bills", auth.Middleware(testSecret), h.Create)
	app.Patch("/bills/:id/pay", auth.Middleware(testSecret), h.Pay)
	return app
}

func send(t *testing.T, app *fiber.App, method, path, body string) int {
	t.Helper()

	token, err := auth.GenerateToken(1, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestCreateValidation(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "POST", "/bills", `{"totalAmount": 4500, "totalInstallments": 10}`))
	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "POST", "/bills", `{"description": "Rent", "totalInstallments": 10}`))
	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "POST", "/bills", `{"description": "Rent", "totalAmount": -1, "totalInstallments": 10}`))
	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "POST", "/bills", `{"description": "Rent", "totalAmount": 4500, "totalInstallments": 0}`))
	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "POST", "/bills", `{"description": "Rent", "totalAmount": 4500, "totalInstallments": 10, "paidInstallments": 11}`))
}

func TestPayRejectsBadID(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest, send(t, app, "PATCH", "/bills/abc/pay", `{}`))
	assert.Equal(t, fiber.StatusBadRequest, send(t, app, "PATCH", "/bills/0/pay", `{}`))
}

func TestPayRejectsBadDate(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest,
		send(t, app, "PATCH", "/bills/1/pay", `{"date": "10/03/2026"}`))
}
