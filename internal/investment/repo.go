package investment

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

func (r *Repository) Insert(ctx context.Context, inv *Investment) (Investment, error) {
	var (
		out  Investment
		date time.Time
	)
	err := r.Pool.QueryRow(
		ctx,
		`INSERT INTO investments (user_id, description, amount, date)
         VALUES ($1, $2, $3, $4::date)
         RETURNING id, user_id, description, amount::float8, date, created_at`,
		inv.UserID,
		inv.Description,
		inv.Amount,
		inv.Date,
	).Scan(&out.ID, &out.UserID, &out.Description, &out.Amount, &date, &out.CreatedAt)
	if err != nil {
		return Investment{}, errors.Wrap(err, "inserting investment")
	}
	out.Date = date.Format("2006-01-02")
	return out, nil
}

// ListByUser returns the caller's investments, newest first, optionally
// narrowed to one calendar month.
func (r *Repository) ListByUser(ctx context.Context, userID int64, p *period.Period) ([]Investment, error) {
	q := sq.Select("id", "user_id", "description", "amount::float8", "date", "created_at").
		From("investments").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date DESC", "created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if p != nil {
		start, end := p.Bounds()
		q = q.Where(sq.GtOrEq{"date": start}).Where(sq.Lt{"date": end})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "building investment query")
	}

	rows, err := r.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, errors.Wrap(err, "listing investments")
	}
	defer rows.Close()

	out := make([]Investment, 0)
	for rows.Next() {
		var (
			inv  Investment
			date time.Time
		)
		if err := rows.Scan(&inv.ID, &inv.UserID, &inv.Description, &inv.Amount, &date, &inv.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning investment")
		}
		inv.Date = date.Format("2006-01-02")
		out = append(out, inv)
	}
	return out, rows.Err()
}

func (r *Repository) Update(ctx context.Context, id, userID int64, inv *Investment) (bool, error) {
	tag, err := r.Pool.Exec(
		ctx,
		`UPDATE investments SET description=$1, amount=$2, date=$3::date
         WHERE id=$4 AND user_id=$5`,
		inv.Description, inv.Amount, inv.Date, id, userID,
	)
	if err != nil {
		return false, errors.Wrap(err, "updating investment")
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM investments WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return false, errors.Wrap(err, "deleting investment")
	}
	return tag.RowsAffected() > 0, nil
}
