package income

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

// Validation runs before any repository call, so a nil pool is safe here.
func testApp(t *testing.T) *fiber.App {
	t.Helper()

	h := NewHandler(NewRepository(nil))
	app := fiber.New()
	app.Post("/incomes", auth.Middleware(testSecret), h.Set)
	return app
}

func postIncome(t *testing.T, app *fiber.App, body string) int {
	t.Helper()

	token, err := auth.GenerateToken(1, testSecret, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/incomes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestSetRejectsMissingFields(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{}`))
	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{"amount": 5000}`))
	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{"month": 3, "year": 2026}`))
}

func TestSetRejectsBadPeriod(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{"amount": 5000, "month": 0, "year": 2026}`))
	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{"amount": 5000, "month": 13, "year": 2026}`))
}

func TestSetRejectsNegativeAmount(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest, postIncome(t, app, `{"amount": -1, "month": 3, "year": 2026}`))
}

func TestSetRejectsUnknownFields(t *testing.T) {
	app := testApp(t)

	assert.Equal(t, fiber.StatusBadRequest,
		postIncome(t, app, `{"amount": 5000, "month": 3, "year": 2026, "bogus": true}`))
}

func TestSetRequiresAuth(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/incomes", strings.NewReader(`{"amount":1,"month":1,"year":2026}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
