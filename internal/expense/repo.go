package expense

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
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

func (r *Repository) Insert(ctx context.Context, exp *Expense) (Expense, error) {
	var (
		out  Expense
		date time.Time
	)
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO expenses (user_id, description, amount, category, date)
         VALUES ($1, $2, $3, $4, $5::date)
         RETURNING id, user_id, description, amount::float8, category, date, created_at`,
		exp.UserID,
		exp.Description,
		exp.Amount,
		exp.Category,
		exp.Date,
	).Scan(&out.ID, &out.UserID, &out.Description, &out.Amount, &out.Category, &date, &out.CreatedAt)
	if err != nil {
		return Expense{}, errors.Wrap(err, "inserting expense")
	}
	out.Date = date.Format("2006-01-02")
	return out, nil
}

// ListByUser returns the caller's expenses, newest first. When p is non-nil the
// result is narrowed to that calendar month.
func (r *Repository) ListByUser(ctx context.Context, userID int64, p *period.Period) ([]Expense, error) {
	q := sq.Select("id", "user_id", "description", "amount::float8", "category", "date", "created_at").
		From("expenses").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if p != nil {
		start, end := p.Bounds()
		q = q.Where(sq.GtOrEq{"date": start}).Where(sq.Lt{"date": end})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building expense query")
	}

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing expenses")
	}
	defer rows.Close()

	out := make([]Expense, 0)
	for rows.Next() {
		var (
			e    Expense
			date time.Time
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount, &e.Category, &date, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning expense")
		}
		e.Date = date.Format("2006-01-02")
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update replaces the row's fields. Returns false when no row matched the
// (id, userID) pair.
func (r *Repository) Update(ctx context.Context, id, userID int64, exp *Expense) (bool, error) {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE expenses SET description=$1, amount=$2, category=$3, date=$4::date
         WHERE id=$5 AND user_id=$6`,
		exp.Description, exp.Amount, exp.Category, exp.Date, id, userID,
	)
	if err != nil {
		return false, errors.Wrap(err, "updating expense")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM expenses WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, errors.Wrap(err, "deleting expense")
	}
	return tag.RowsAffected() > 0, nil
}
