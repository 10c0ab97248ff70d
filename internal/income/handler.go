package income

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/audit"
	"github.com/vitornoms1/FinanceManager/internal/auth"
	"github.com/vitornoms1/FinanceManager/internal/period"
)

type Handler struct {
	Repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{Repo: repo}
}

// Get returns the income for ?month&year, or a zero-amount placeholder when
// none was recorded yet.
func (h *Handler) Get(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	p, err := period.Parse(c.Query("month"), c.Query("year"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inc, err := h.Repo.GetByPeriod(userContext(c), userID, p)
	if errors.Is(err, ErrNoIncome) {
		return c.JSON(fiber.Map{"amount": 0, "month": p.Month, "year": p.Year})
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch income: "+err.Error())
	}
	return c.JSON(inc)
}

// Set stores the income for a period, replacing whatever was there before.
func (h *Handler) Set(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req setIncomeRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}
	if req.Amount == nil {
		return fiber.NewError(fiber.StatusBadRequest, "amount required")
	}
	if req.Month == nil || req.Year == nil {
		return fiber.NewError(fiber.StatusBadRequest, "month and year required")
	}
	if *req.Amount < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "amount must not be negative")
	}

	p, err := period.New(*req.Month, *req.Year)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	inc, err := h.Repo.SetForPeriod(userContext(c), userID, p, *req.Amount)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to set income: "+err.Error())
	}

	audit.Record(h.Repo.Pool, userID, "set", "income", inc.ID)

	return c.JSON(inc)
}

func decodeStrict(body []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func userContext(c *fiber.Ctx) context.Context {
	if ctx := c.UserContext(); ctx != nil {
		return ctx
	}
	return context.Background()
}
