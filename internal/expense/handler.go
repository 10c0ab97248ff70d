package expense

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

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

// List returns the caller's expenses, newest first. Accepts optional
// month/year query params to narrow to one period.
func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var p *period.Period
	if c.Query("month") != "" || c.Query("year") != "" {
		parsed, err := period.Parse(c.Query("month"), c.Query("year"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		p = &parsed
	}

	items, err := h.Repo.ListByUser(userContext(c), userID, p)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list expenses: "+err.Error())
	}
	return c.JSON(items)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	exp, err := parseUpsertBody(c)
	if err != nil {
		return err
	}
	exp.UserID = userID

	created, err := h.Repo.Insert(userContext(c), exp)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add expense: "+err.Error())
	}

	audit.Record(h.Repo.Pool, userID, "create", "expense", created.ID)

	return c.JSON(created)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	exp, err := parseUpsertBody(c)
	if err != nil {
		return err
	}

	found, err := h.Repo.Update(userContext(c), id, userID, exp)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update expense: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}

	audit.Record(h.Repo.Pool, userID, "update", "expense", id)

	exp.ID = id
	exp.UserID = userID
	return c.JSON(exp)
}

func (h *Handler) Delete(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	found, err := h.Repo.Delete(userContext(c), id, userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete expense: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "expense not found")
	}

	audit.Record(h.Repo.Pool, userID, "delete", "expense", id)

	return c.JSON(fiber.Map{"message": "OK"})
}

func parseUpsertBody(c *fiber.Ctx) (*Expense, error) {
	var req upsertExpenseRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "description required")
	}
	if req.Amount == nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "amount required")
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	return &Expense{
		Description: req.Description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	}, nil
}

// decodeStrict rejects payloads carrying fields the schema does not declare.
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
