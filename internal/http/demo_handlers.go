package http

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vitornoms1/FinanceManager/internal/auth"
)

// DemoHandler carries the local development conveniences: schema install,
// connectivity probe and demo-account reseed. None of these are part of the
// stable contract and the router only mounts them when ENV=dev.
type DemoHandler struct {
	DB *pgxpool.Pool
}

// Install applies migrations/migrations.sql. The DDL is idempotent, so hitting
// this twice is harmless.
func (h *DemoHandler) Install(c *fiber.Ctx) error {
	ddl, err := os.ReadFile("migrations/migrations.sql")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to read migrations: "+err.Error())
	}

	if _, err := h.DB.Exec(userContext(c), string(ddl)); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to apply migrations: "+err.Error())
	}

	return c.SendString("Install finished.")
}

// TestDB answers with a round-trip through the pool.
func (h *DemoHandler) TestDB(c *fiber.Ctx) error {
	var one int
	if err := h.DB.QueryRow(userContext(c), `SELECT 1`).Scan(&one); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unreachable: "+err.Error())
	}
	return c.JSON(fiber.Map{"ok": true})
}

const (
	demoEmail = "demo@finance.local"
	demoName  = "Demo User"
)

// ResetDemo drops and reseeds the demo account's data in one transaction, so
// a concurrent request never observes a half-reset account.
func (h *DemoHandler) ResetDemo(c *fiber.Ctx) error {
	ctx := userContext(c)

	tx, err := h.DB.Begin(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to begin reset: "+err.Error())
	}
	defer tx.Rollback(ctx)

	// Cascades wipe the account's expenses, incomes, bills and investments.
	if _, err := tx.Exec(ctx, `DELETE FROM users WHERE email=$1`, demoEmail); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to clear demo user: "+err.Error())
	}

	hashed, err := auth.HashPassword("demo1234")
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash demo password")
	}

	var userID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		demoName, demoEmail, hashed,
	).Scan(&userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to seed demo user: "+err.Error())
	}

	seed := []struct {
		sql  string
		args []interface{}
	}{
		{`INSERT INTO incomes (user_id, amount, month, year)
          VALUES ($1, 5000, EXTRACT(MONTH FROM NOW())::int, EXTRACT(YEAR FROM NOW())::int)`,
			[]interface{}{userID}},
		{`INSERT INTO expenses (user_id, description, amount, category, date)
          VALUES ($1, 'Groceries', -850.50, 'food', NOW()::date)`,
			[]interface{}{userID}},
		{`INSERT INTO bills (user_id, description, total_amount, total_installments, paid_installments)
          VALUES ($1, 'Rent', 4500, 10, 0)`,
			[]interface{}{userID}},
		{`INSERT INTO investments (user_id, description, amount, date)
          VALUES ($1, 'Index fund', 2000, NOW()::date)`,
			[]interface{}{userID}},
	}
	for _, s := range seed {
		if _, err := tx.Exec(ctx, s.sql, s.args...); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to seed demo data: "+err.Error())
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to commit reset: "+err.Error())
	}

	return c.JSON(fiber.Map{"ok": true, "email": demoEmail})
}
