package income

import "time"

// Income holds the single income row for one (user, month, year) period.
// Month is 1-based.
type Income struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Amount    float64   `db:"amount" json:"amount"`
	Month     int       `db:"month" json:"month"`
	Year      int       `db:"year" json:"year"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type setIncomeRequest struct {
	Amount *float64 `json:"amount"`
	Month  *int     `json:"month"`
	Year   *int     `json:"year"`
}
