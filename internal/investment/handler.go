package investment

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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to list investments: "+err.Error())
	}
	return c.JSON(items)
}

func (h *Handler) Create(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	inv, err := parseUpsertBody(c)
	if err != nil {
		return err
	}
	inv.UserID = userID

	created, err := h.Repo.Insert(userContext(c), inv)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to add investment: "+err.Error())
	}

	audit.Record(h.Repo.Pool, userID, "create", "investment", created.ID)

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

	inv, err := parseUpsertBody(c)
	if err != nil {
		return err
	}

	found, err := h.Repo.Update(userContext(c), id, userID, inv)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to update investment: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "investment not found")
	}

	audit.Record(h.Repo.Pool, userID, "update", "investment", id)

	inv.ID = id
	inv.UserID = userID
	return c.JSON(inv)
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
		return fiber.NewError(fiber.StatusInternalServerError, "failed to delete investment: "+err.Error())
	}
	if !found {
		return fiber.NewError(fiber.StatusNotFound, "investment not found")
	}

	audit.Record(h.Repo.Pool, userID, "delete", "investment", id)

	return c.JSON(fiber.Map{"message": "OK"})
}

func parseUpsertBody(c *fiber.Ctx) (*Investment, error) {
	var req upsertInvestmentRequest
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

	return &Investment{
		Description: req.Description,
		Amount:      *req.Amount,
		Date:        req.Date,
	}, nil
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
