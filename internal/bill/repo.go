package bill

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type Repository struct {
	Pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{Pool: pool}
}

const billColumns = `id, user_id, description, total_amount::float8, total_installments,
	paid_installments, last_payment_date, created_at`

func scanBill(row pgx.Row) (Bill, error) {
	var (
		b    Bill
		last *time.Time
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Description, &b.TotalAmount,
		&b.TotalInstallments, &b.PaidInstallments, &last, &b.CreatedAt)
	if err != nil {
		return Bill{}, err
	}
	if last != nil {
		s := last.Format("2006-01-02")
		b.LastPaymentDate = &s
	}
	return b, nil
}

func (r *Repository) Insert(ctx context.Context, b *Bill) (Bill, error) {
	row := r.Pool.QueryRow(
		ctx,
		`INSERT INTO bills (user_id, description, total_amount, total_installments, paid_installments)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING `+billColumns,
		b.UserID, b.Description, b.TotalAmount, b.TotalInstallments, b.PaidInstallments,
	)
	out, err := scanBill(row)
	if err != nil {
		return Bill{}, errors.Wrap(err, "inserting bill")
	}
	return out, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int64) ([]Bill, error) {
	rows, err := r.Pool.Query(
		ctx,
		`SELECT `+billColumns+` FROM bills WHERE user_id=$1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing bills")
	}
	defer rows.Close()

	out := make([]Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning bill")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID int64, b *Bill) (bool, error) {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE bills SET description=$1, total_amount=$2, total_installments=$3, paid_installments=$4
         WHERE id=$5 AND user_id=$6`,
		b.Description, b.TotalAmount, b.TotalInstallments, b.PaidInstallments, id, userID,
	)
	if err != nil {
		return false, errors.Wrap(err, "updating bill")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM bills WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, errors.Wrap(err, "deleting bill")
	}
	return tag.RowsAffected() > 0, nil
}

// Pay records one installment payment. The row is locked for the duration of
// the transaction so two concurrent payments cannot both pass the state check.
func (r *Repository) Pay(ctx context.Context, id, userID int64, payDate time.Time, monthlyGuard bool) (Bill, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return Bill{}, errors.Wrap(err, "beginning payment")
	}
	defer tx.Rollback(ctx)

	row := tx.QueryRow(
		ctx,
		`SELECT `+billColumns+` FROM bills WHERE id=$1 AND user_id=$2 FOR UPDATE`,
		id, userID,
	)
	b, err := scanBill(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Bill{}, ErrNotFound
	}
	if err != nil {
		return Bill{}, errors.Wrap(err, "loading bill")
	}

	if err := checkPayable(b, payDate, monthlyGuard); err != nil {
		return Bill{}, err
	}

	row = tx.QueryRow(
		ctx,
		`UPDATE bills SET paid_installments = paid_installments + 1, last_payment_date = $1
         WHERE id=$2 AND user_id=$3
         RETURNING `+billColumns,
		payDate, id, userID,
	)
	updated, err := scanBill(row)
	if err != nil {
		return Bill{}, errors.Wrap(err, "recording payment")
	}

	if err := tx.Commit(ctx); err != nil {
		return Bill{}, errors.Wrap(err, "committing payment")
	}
	return updated, nil
}

// PaidInPeriod returns the bills whose last payment date falls inside [start, end).
func (r *Repository) PaidInPeriod(ctx context.Context, userID int64, start, end time.Time) ([]Bill, error) {
	rows, err := r.Pool.Query(
		ctx,
		`SELECT `+billColumns+`
         FROM bills
         WHERE user_id=$1 AND last_payment_date >= $2 AND last_payment_date < $3`,
		userID, start, end,
	)
	if err != nil {
		return nil, errors.Wrap(err, "listing paid bills")
	}
	defer rows.Close()

	out := make([]Bill, 0)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning paid bill")
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
