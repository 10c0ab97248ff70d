package bill

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestInstallmentCost(t *testing.T) {
	b := Bill{TotalAmount: 4500, TotalInstallments: 10}
	assert.True(t, b.InstallmentCost().Equal(decimal.NewFromInt(450)))

	// No float drift on awkward divisions.
	b = Bill{TotalAmount: 100, TotalInstallments: 3}
	cost := b.InstallmentCost()
	assert.Equal(t, "33.33", cost.StringFixed(2))

	b = Bill{TotalAmount: 100, TotalInstallments: 0}
	assert.True(t, b.InstallmentCost().IsZero())
}

func TestCheckPayableFreshBill(t *testing.T) {
	b := Bill{TotalInstallments: 12, PaidInstallments: 0}
	err := checkPayable(b, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), true)
	assert.NoError(t, err)
}

func TestCheckPayableSettled(t *testing.T) {
	b := Bill{TotalInstallments: 12, PaidInstallments: 12}
	err := checkPayable(b, time.Now().UTC(), true)
	assert.ErrorIs(t, err, ErrAlreadySettled)

	// Over-paid rows behave the same.
	b.PaidInstallments = 13
	err = checkPayable(b, time.Now().UTC(), false)
	assert.ErrorIs(t, err, ErrAlreadySettled)
}

func TestCheckPayableSameMonthGuard(t *testing.T) {
	b := Bill{
		TotalInstallments: 12,
		PaidInstallments:  3,
		LastPaymentDate:   strPtr("2026-03-05"),
	}

	err := checkPayable(b, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), true)
	assert.ErrorIs(t, err, ErrPaidThisMonth)

	// Next month is fine.
	err = checkPayable(b, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), true)
	assert.NoError(t, err)

	// Same month a year later is fine.
	err = checkPayable(b, time.Date(2027, 3, 20, 0, 0, 0, 0, time.UTC), true)
	assert.NoError(t, err)

	// Guard off: same month allowed.
	err = checkPayable(b, time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC), false)
	assert.NoError(t, err)
}

func TestParsePaymentDate(t *testing.T) {
	got, err := parsePaymentDate("2026-03-10T15:04:05Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)

	got, err = parsePaymentDate("2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), got)

	// Offset instants normalize to the UTC calendar day.
	got, err = parsePaymentDate("2026-03-10T22:00:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), got)

	_, err = parsePaymentDate("10/03/2026")
	assert.Error(t, err)

	got, err = parsePaymentDate("")
	require.NoError(t, err)
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, time.UTC, got.Location())
}
