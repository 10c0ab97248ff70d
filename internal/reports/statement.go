package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/vitornoms1/FinanceManager/internal/period"
)

type Handler struct {
	Pool *pgxpool.Pool
}

func NewHandler(pool *pgxpool.Pool) *Handler {
	return &Handler{Pool: pool}
}

type statementRow struct {
	Kind   string
	Title  string
	Date   string
	Amount float64
}

type statement struct {
	Period   period.Period
	Income   float64
	Rows     []statementRow
	Spending float64
}

// load gathers the period's expenses, investments and paid bill installments
// in one pass, newest first.
func (h *Handler) load(ctx context.Context, userID int64, p period.Period) (statement, error) {
	st := statement{Period: p}

	start, end := p.Bounds()

	err := h.Pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0)::float8
		FROM incomes
		WHERE user_id=$1 AND month=$2 AND year=$3`,
		userID, p.Month, p.Year,
	).Scan(&st.Income)
	if err != nil {
		return statement{}, errors.Wrap(err, "statement income")
	}

	rows, err := h.Pool.Query(ctx, `
		SELECT kind, title, date, amount, installments
		FROM (
			SELECT 'expense' AS kind,
			       description AS title,
			       date,
			       amount::float8 AS amount,
			       0 AS installments
			FROM expenses
			WHERE user_id=$1 AND date >= $2 AND date < $3

			UNION ALL

			SELECT 'investment' AS kind,
			       description AS title,
			       date,
			       amount::float8 AS amount,
			       0 AS installments
			FROM investments
			WHERE user_id=$1 AND date >= $2 AND date < $3

			UNION ALL

			SELECT 'bill' AS kind,
			       description AS title,
			       last_payment_date AS date,
			       total_amount::float8 AS amount,
			       total_installments AS installments
			FROM bills
			WHERE user_id=$1 AND last_payment_date >= $2 AND last_payment_date < $3
		) t
		ORDER BY date DESC`,
		userID, start, end,
	)
	if err != nil {
		return statement{}, errors.Wrap(err, "statement rows")
	}
	defer rows.Close()

	spending := decimal.Zero
	for rows.Next() {
		var (
			r            statementRow
			date         time.Time
			installments int
		)
		if err := rows.Scan(&r.Kind, &r.Title, &date, &r.Amount, &installments); err != nil {
			return statement{}, errors.Wrap(err, "scanning statement row")
		}
		r.Date = date.Format("2006-01-02")

		amt := decimal.NewFromFloat(r.Amount)
		if r.Kind == "bill" && installments > 0 {
			// A bill contributes its per-period installment, not the total.
			amt = amt.Div(decimal.NewFromInt(int64(installments)))
			r.Amount, _ = amt.Round(2).Float64()
		}
		spending = spending.Add(amt.Abs())

		st.Rows = append(st.Rows, r)
	}
	if err := rows.Err(); err != nil {
		return statement{}, errors.Wrap(err, "statement rows")
	}

	st.Spending, _ = spending.Round(2).Float64()
	return st, nil
}
