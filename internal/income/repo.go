package income

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/period"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

// ErrNoIncome marks a period with no stored income row.
var ErrNoIncome = errors.New("no income for period")

func (r *Repository) GetByPeriod(ctx context.Context, userID int64, p period.Period) (Income, error) {
	var inc Income
	err := r.Pool.QueryRow(
		ctx,
		`SELECT id, user_id, amount::float8, month, year, created_at
         FROM incomes
         WHERE user_id=$1 AND month=$2 AND year=$3`,
		userID, p.Month, p.Year,
	).Scan(&inc.ID, &inc.UserID, &inc.Amount, &inc.Month, &inc.Year, &inc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Income{}, ErrNoIncome
	}
	if err != nil {
		return Income{}, errors.Wrap(err, "fetching income")
	}
	return inc, nil
}

// SetForPeriod stores the period's income, overwriting a prior amount. The
// unique index on (user_id, month, year) makes concurrent calls collapse onto
// one row instead of racing each other.
func (r *Repository) SetForPeriod(ctx context.Context, userID int64, p period.Period, amount float64) (Income, error) {
	var inc Income
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO incomes (user_id, amount, month, year)
         VALUES ($1, $2, $3, $4)
         ON CONFLICT (user_id, month, year) DO UPDATE SET amount = EXCLUDED.amount
         RETURNING id, user_id, amount::float8, month, year, created_at`,
		userID, amount, p.Month, p.Year,
	).Scan(&inc.ID, &inc.UserID, &inc.Amount, &inc.Month, &inc.Year, &inc.CreatedAt)
	if err != nil {
		return Income{}, errors.Wrap(err, "storing income")
	}
	return inc, nil
}
