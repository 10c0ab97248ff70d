package bill

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is an installment obligation: a fixed total split into equal periodic
// payments. The JSON keys follow the API's historical camelCase projection.
type Bill struct {
	ID                int64     `db:"id" json:"id"`
	UserID            int64     `db:"user_id" json:"-"`
	Description       string    `db:"description" json:"description"`
	TotalAmount       float64   `db:"total_amount" json:"totalAmount"`
	TotalInstallments int       `db:"total_installments" json:"totalInstallments"`
	PaidInstallments  int       `db:"paid_installments" json:"paidInstallments"`
	LastPaymentDate   *string   `db:"last_payment_date" json:"lastPaymentDate"` // YYYY-MM-DD
	CreatedAt         time.Time `db:"created_at" json:"-"`
}

// InstallmentCost is the per-period cost: total amount over total installments.
func (b Bill) InstallmentCost() decimal.Decimal {
	if b.TotalInstallments <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(b.TotalAmount).
		Div(decimal.NewFromInt(int64(b.TotalInstallments)))
}

// Settled reports whether every installment has been paid.
func (b Bill) Settled() bool {
	return b.PaidInstallments >= b.TotalInstallments
}

type upsertBillRequest struct {
	Description       string   `json:"description"`
	TotalAmount       *float64 `json:"totalAmount"`
	TotalInstallments *int     `json:"totalInstallments"`
	PaidInstallments  *int     `json:"paidInstallments"`
}

type payBillRequest struct {
	Date string `json:"date"`
}
