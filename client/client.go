// Package client is a thin typed wrapper over the finance manager HTTP API.
// It is what a frontend or script talks to instead of hand-writing requests.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs the bearer token used on authenticated calls.
func (c *Client) SetToken(token string) {
	c.token = token
}

// APIError carries the server's status code and its msg/error payload.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Expense struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Category    *string `json:"category,omitempty"`
	Date        string  `json:"date"`
}

type Investment struct {
	ID          int64   `json:"id"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
}

type Income struct {
	ID     int64   `json:"id,omitempty"`
	Amount float64 `json:"amount"`
	Month  int     `json:"month"`
	Year   int     `json:"year"`
}

type Bill struct {
	ID                int64   `json:"id"`
	Description       string  `json:"description"`
	TotalAmount       float64 `json:"totalAmount"`
	TotalInstallments int     `json:"totalInstallments"`
	PaidInstallments  int     `json:"paidInstallments"`
	LastPaymentDate   *string `json:"lastPaymentDate"`
}

type Balance struct {
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	Income           float64 `json:"income"`
	VariableExpenses float64 `json:"variableExpenses"`
	MonthlyBills     float64 `json:"monthlyBills"`
	Investments      float64 `json:"investments"`
	TotalSpending    float64 `json:"totalSpending"`
	RemainingBalance float64 `json:"remainingBalance"`
	ChartRemaining   float64 `json:"chartRemaining"`
}

// Register creates an account and keeps the returned token for later calls.
func (c *Client) Register(ctx context.Context, name, email, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name": name, "email": email, "password": password,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var s Session
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email": email, "password": password,
	}, &s)
	if err != nil {
		return Session{}, err
	}
	c.token = s.Token
	return s, nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var u User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &u)
	return u, err
}

func (c *Client) ListExpenses(ctx context.Context) ([]Expense, error) {
	var out []Expense
	err := c.do(ctx, http.MethodGet, "/expenses", nil, &out)
	return out, err
}

func (c *Client) CreateExpense(ctx context.Context, e Expense) (Expense, error) {
	var out Expense
	err := c.do(ctx, http.MethodPost, "/expenses", upsertExpense(e), &out)
	return out, err
}

func (c *Client) UpdateExpense(ctx context.Context, id int64, e Expense) (Expense, error) {
	var out Expense
	err := c.do(ctx, http.MethodPut, "/expenses/"+strconv.FormatInt(id, 10), upsertExpense(e), &out)
	return out, err
}

func (c *Client) DeleteExpense(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/expenses/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) ListInvestments(ctx context.Context) ([]Investment, error) {
	var out []Investment
	err := c.do(ctx, http.MethodGet, "/investments", nil, &out)
	return out, err
}

func (c *Client) CreateInvestment(ctx context.Context, inv Investment) (Investment, error) {
	var out Investment
	err := c.do(ctx, http.MethodPost, "/investments", upsertInvestment(inv), &out)
	return out, err
}

func (c *Client) UpdateInvestment(ctx context.Context, id int64, inv Investment) (Investment, error) {
	var out Investment
	err := c.do(ctx, http.MethodPut, "/investments/"+strconv.FormatInt(id, 10), upsertInvestment(inv), &out)
	return out, err
}

func (c *Client) DeleteInvestment(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/investments/"+strconv.FormatInt(id, 10), nil, nil)
}

func (c *Client) GetIncome(ctx context.Context, month, year int) (Income, error) {
	var out Income
	err := c.do(ctx, http.MethodGet, "/incomes?"+periodQuery(month, year), nil, &out)
	return out, err
}

func (c *Client) SetIncome(ctx context.Context, month, year int, amount float64) (Income, error) {
	var out Income
	err := c.do(ctx, http.MethodPost, "/incomes", map[string]interface{}{
		"amount": amount, "month": month, "year": year,
	}, &out)
	return out, err
}

func (c *Client) ListBills(ctx context.Context) ([]Bill, error) {
	var out []Bill
	err := c.do(ctx, http.MethodGet, "/bills", nil, &out)
	return out, err
}

func (c *Client) CreateBill(ctx context.Context, b Bill) (Bill, error) {
	var out Bill
	err := c.do(ctx, http.MethodPost, "/bills", upsertBill(b), &out)
	return out, err
}

func (c *Client) UpdateBill(ctx context.Context, id int64, b Bill) (Bill, error) {
	var out Bill
	err := c.do(ctx, http.MethodPut, "/bills/"+strconv.FormatInt(id, 10), upsertBill(b), &out)
	return out, err
}

func (c *Client) DeleteBill(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/bills/"+strconv.FormatInt(id, 10), nil, nil)
}

// PayBill marks one installment paid; date may be empty for "today".
func (c *Client) PayBill(ctx context.Context, id int64, date string) (Bill, error) {
	var out Bill
	err := c.do(ctx, http.MethodPatch, "/bills/"+strconv.FormatInt(id, 10)+"/pay",
		map[string]string{"date": date}, &out)
	return out, err
}

func (c *Client) GetBalance(ctx context.Context, month, year int) (Balance, error) {
	var out Balance
	err := c.do(ctx, http.MethodGet, "/balance?"+periodQuery(month, year), nil, &out)
	return out, err
}

func upsertExpense(e Expense) map[string]interface{} {
	return map[string]interface{}{
		"description": e.Description,
		"amount":      e.Amount,
		"category":    e.Category,
		"date":        e.Date,
	}
}

func upsertInvestment(inv Investment) map[string]interface{} {
	return map[string]interface{}{
		"description": inv.Description,
		"amount":      inv.Amount,
		"date":        inv.Date,
	}
}

func upsertBill(b Bill) map[string]interface{} {
	return map[string]interface{}{
		"description":       b.Description,
		"totalAmount":       b.TotalAmount,
		"totalInstallments": b.TotalInstallments,
		"paidInstallments":  b.PaidInstallments,
	}
}

func periodQuery(month, year int) string {
	q := url.Values{}
	q.Set("month", strconv.Itoa(month))
	q.Set("year", strconv.Itoa(year))
	return q.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding request")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "calling api")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}

	if resp.StatusCode >= 400 {
		return &APIError{Status: resp.StatusCode, Message: errorMessage(payload)}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

// errorMessage digs the human-readable message out of either failure shape.
func errorMessage(payload []byte) string {
	var body struct {
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err == nil {
		if body.Msg != "" {
			return body.Msg
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return string(payload)
}
