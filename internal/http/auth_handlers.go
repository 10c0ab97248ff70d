package http

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/auth"
	"github.com/vitornoms1/FinanceManager/internal/domain"
)

// AuthHandler serves register/login/me. Auth endpoints report failures as
// {"msg": ...}, the shape the frontend has always consumed.
type AuthHandler struct {
	DB        *pgxpool.Pool
	JWTSecret []byte
	TokenTTL  time.Duration
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  domain.Summary `json:"user"`
}

const uniqueViolation = "23505"

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var body registerRequest
	if err := decodeStrict(c.Body(), &body); err != nil {
		return authError(c, fiber.StatusBadRequest, "Invalid body.")
	}

	body.Name = strings.TrimSpace(body.Name)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	if body.Name == "" || body.Email == "" || body.Password == "" {
		return authError(c, fiber.StatusBadRequest, "Name, email and password are required.")
	}

	ctx := userContext(c)

	var exists bool
	err := h.DB.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`, body.Email).Scan(&exists)
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
	}
	if exists {
		return authError(c, fiber.StatusBadRequest, "Email already in use.")
	}

	hashed, err := auth.HashPassword(body.Password)
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Could not hash password.")
	}

	var userID int64
	err = h.DB.QueryRow(
		ctx,
		`INSERT INTO users (name, email, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		body.Name, body.Email, hashed,
	).Scan(&userID)
	if err != nil {
		// Concurrent registration with the same email races past the
		// exists check and lands here.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return authError(c, fiber.StatusBadRequest, "Email already in use.")
		}
		return authError(c, fiber.StatusInternalServerError, "Could not create user: "+err.Error())
	}

	token, err := auth.GenerateToken(userID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Could not create token.")
	}

	return c.JSON(authResponse{
		Token: token,
		User:  domain.Summary{ID: userID, Name: body.Name, Email: body.Email},
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body loginRequest
	if err := decodeStrict(c.Body(), &body); err != nil {
		return authError(c, fiber.StatusBadRequest, "Invalid body.")
	}
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	var user domain.User
	err := h.DB.QueryRow(
		userContext(c),
		`SELECT id, name, email, password_hash FROM users WHERE email=$1`,
		body.Email,
	).Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return authError(c, fiber.StatusBadRequest, "User not found.")
	}
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
	}

	if !auth.CheckPassword(user.PasswordHash, body.Password) {
		return authError(c, fiber.StatusBadRequest, "Incorrect password.")
	}

	token, err := auth.GenerateToken(user.ID, h.JWTSecret, h.TokenTTL)
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Could not create token.")
	}

	return c.JSON(authResponse{Token: token, User: user.Summary()})
}

func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, ok := auth.UserID(c)
	if !ok {
		return authError(c, fiber.StatusUnauthorized, "Unauthorized.")
	}

	var s domain.Summary
	err := h.DB.QueryRow(
		userContext(c),
		`SELECT id, name, email FROM users WHERE id=$1`,
		userID,
	).Scan(&s.ID, &s.Name, &s.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return authError(c, fiber.StatusNotFound, "User not found.")
	}
	if err != nil {
		return authError(c, fiber.StatusInternalServerError, "Database error: "+err.Error())
	}

	return c.JSON(s)
}

func authError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"msg": msg})
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
