package bill

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/audit"
	"github.com/vitornoms1/FinanceManager/internal/auth"
)

type Handler struct {
	Repo *Repository

	// MonthlyGuard rejects a second payment inside one calendar month.
	MonthlyGuard bool
}

func NewHandler(repo *Repository, monthlyGuard bool) *Handler {
	return &Handler{Repo: repo, MonthlyGuard: monthlyGuard}
}

func (h *Handler) List(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	items, err := h.Repo.ListByUser(userContext(c), userID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list bills: "+err.Error())
	}
	return c.JSON(items)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	b, err := parseUpsertBody(c)
	if err != nil {
		return err
	}
	b.UserID = userID

	created, err := h.Repo.Insert(userContext(c), b)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add bill: "+err.Error())
	}

	audit.Record(h.Repo.Pool, userID, "create", "bill", created.ID)

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

	b, err := parseUpsertBody(c)
	if err != nil {
		return err
	}

	found, err := h.Repo.Update(userContext(c), id, userID, b)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update bill: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "bill not found")
	}

	audit.Record(h.Repo.Pool, userID, "update", "bill", id)

	b.ID = id
	b.UserID = userID
	return c.JSON(b)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete bill: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "bill not found")
	}

	audit.Record(h.Repo.Pool, userID, "delete", "bill", id)

	return c.JSON(fiber.Map{"message": "OK"})
}

// Pay marks one installment as paid on the supplied date.
func (h *Handler) Pay(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req payBillRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	payDate, err := parsePaymentDate(strings.TrimSpace(req.Date))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	updated, err := h.Repo.Pay(userContext(c), id, userID, payDate, h.MonthlyGuard)
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "bill not found")
	case errors.Is(err, ErrAlreadySettled):
		return fiber.NewError(fiber.StatusBadRequest, "all installments already paid")
	case errors.Is(err, ErrPaidThisMonth):
		return fiber.NewError(fiber.StatusBadRequest, "bill already paid this month")
	case err != nil:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to pay bill: "+err.Error())
	}

	audit.Record(h.Repo.Pool, userID, "pay", "bill", id)

	return c.JSON(updated)
}

func parseUpsertBody(c *fiber.Ctx) (*Bill, error) {
	var req upsertBillRequest
	if err := decodeStrict(c.Body(), &req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid body")
	}

	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" {
		return nil, fiber.NewError(fiber.StatusBadRequest, "description required")
	}
	if req.TotalAmount == nil || *req.TotalAmount <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "totalAmount must be greater than zero")
	}
	if req.TotalInstallments == nil || *req.TotalInstallments < 1 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "totalInstallments must be at least 1")
	}

	paid := 0
	if req.PaidInstallments != nil {
		paid = *req.PaidInstallments
	}
	if paid < 0 || paid > *req.TotalInstallments {
		return nil, fiber.NewError(fiber.StatusBadRequest, "paidInstallments out of range")
	}

	return &Bill{
		Description:       req.Description,
		TotalAmount:       *req.TotalAmount,
		TotalInstallments: *req.TotalInstallments,
		PaidInstallments:  paid,
	}, nil
}

func decodeStrict(body []byte, dst interface{}) error {
	if len(body) == 0 {
		return nil
	}
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
