package balance

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/auth"
	"github.com/vitornoms1/FinanceManager/internal/bill"
	"github.com/vitornoms1/FinanceManager/internal/expense"
	"github.com/vitornoms1/FinanceManager/internal/income"
	"github.com/vitornoms1/FinanceManager/internal/investment"
	"github.com/vitornoms1/FinanceManager/internal/period"
)

// Handler serves the derived balance for ?month&year by pulling the period's
// rows through the resource repositories.
type Handler struct {
	Incomes     *income.Repository
	Expenses    *expense.Repository
	Bills       *bill.Repository
	Investments *investment.Repository
}

func (h *Handler) Get(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	p, err := period.Parse(c.Query("month"), c.Query("year"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx := userContext(c)

	var incomeAmount float64
	inc, err := h.Incomes.GetByPeriod(ctx, userID, p)
	switch {
	case errors.Is(err, income.ErrNoIncome):
		incomeAmount = 0
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch income: "+err.Error())
	default:
		incomeAmount = inc.Amount
	}

	expenses, err := h.Expenses.ListByUser(ctx, userID, &p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch expenses: "+err.Error())
	}

	start, end := p.Bounds()
	bills, err := h.Bills.PaidInPeriod(ctx, userID, start, end)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch bills: "+err.Error())
	}

	investments, err := h.Investments.ListByUser(ctx, userID, &p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch investments: "+err.Error())
	}

	return c.JSON(Compute(p, incomeAmount, expenses, bills, investments))
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
