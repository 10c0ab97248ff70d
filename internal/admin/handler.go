package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

type latestUser struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type OverviewResponse struct {
	UsersTotal       int64        `json:"users_total"`
	ExpensesTotal    int64        `json:"expenses_total"`
	BillsTotal       int64        `json:"bills_total"`
	InvestmentsTotal int64        `json:"investments_total"`
	LatestUsers      []latestUser `json:"latest_users"`
}

func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var resp OverviewResponse

	counts := []struct {
		sql string
		dst *int64
	}{
		{`SELECT COUNT(*) FROM users`, &resp.UsersTotal},
		{`SELECT COUNT(*) FROM expenses`, &resp.ExpensesTotal},
		{`SELECT COUNT(*) FROM bills`, &resp.BillsTotal},
		{`SELECT COUNT(*) FROM investments`, &resp.InvestmentsTotal},
	}
	for _, q := range counts {
		if err := h.Pool.QueryRow(ctx, q.sql).Scan(q.dst); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed overview count: "+err.Error())
		}
	}

	rows, err := h.Pool.Query(ctx, `
		SELECT id, email, created_at::text
		FROM users
		ORDER BY created_at DESC
		LIMIT 20`)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users: "+err.Error())
	}
	defer rows.Close()

	for rows.Next() {
		var u latestUser
		if err := rows.Scan(&u.ID, &u.Email, &u.CreatedAt); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed scan latest_users: "+err.Error())
		}
		resp.LatestUsers = append(resp.LatestUsers, u)
	}
	if err := rows.Err(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed latest_users rows: "+err.Error())
	}

	return c.JSON(resp)
}
