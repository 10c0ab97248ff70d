package bill

import (
	"time"

	"github.com/pkg/errors"

	"github.com/vitornoms1/FinanceManager/internal/period"
)

var (
	ErrNotFound       = errors.New("bill not found")
	ErrAlreadySettled = errors.New("bill already settled")
	ErrPaidThisMonth  = errors.New("bill already paid this month")
)

// checkPayable enforces the payment rules against the bill's current state.
// The same-month rule only applies when monthlyGuard is enabled.
func checkPayable(b Bill, payDate time.Time, monthlyGuard bool) error {
	if b.Settled() {
		return ErrAlreadySettled
	}

	if monthlyGuard && b.LastPaymentDate != nil {
		last, err := time.Parse("2006-01-02", *b.LastPaymentDate)
		if err == nil && period.SameMonth(last, payDate) {
			return ErrPaidThisMonth
		}
	}

	return nil
}

// parsePaymentDate accepts an RFC3339 instant or a bare date and reduces it to
// a date-only value in UTC. An empty input means today.
func parsePaymentDate(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", raw)
	}
	if err != nil {
		return time.Time{}, errors.New("date must be RFC3339 or YYYY-MM-DD")
	}

	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
