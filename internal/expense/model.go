package expense

import "time"

type Expense struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Description string    `db:"description" json:"description"`
	Amount      float64   `db:"amount" json:"amount"`
	Category    *string   `db:"category" json:"category"`
	Date        string    `db:"date" json:"date"` // YYYY-MM-DD
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type upsertExpenseRequest struct {
	Description string   `json:"description"`
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Date        string   `json:"date"` // YYYY-MM-DD
}
