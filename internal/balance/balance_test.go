package balance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitornoms1/FinanceManager/internal/bill"
	"github.com/vitornoms1/FinanceManager/internal/expense"
	"github.com/vitornoms1/FinanceManager/internal/investment"
	"github.com/vitornoms1/FinanceManager/internal/period"
)

func strPtr(s string) *string { return &s }

func TestComputeMonthlyScenario(t *testing.T) {
	p := period.Period{Month: 3, Year: 2026}

	got := Compute(p,
		5000,
		[]expense.Expense{{Amount: -850.50, Date: "2026-03-12"}},
		[]bill.Bill{{
			TotalAmount:       4500,
			TotalInstallments: 10,
			PaidInstallments:  1,
			LastPaymentDate:   strPtr("2026-03-10"),
		}},
		[]investment.Investment{{Amount: 2000, Date: "2026-03-15"}},
	)

	assert.Equal(t, 850.50, got.VariableExpenses)
	assert.Equal(t, 450.0, got.MonthlyBills)
	assert.Equal(t, 2000.0, got.Investments)
	assert.Equal(t, 3300.50, got.TotalSpending)
	assert.Equal(t, 1699.50, got.RemainingBalance)
	assert.Equal(t, 1699.50, got.ChartRemaining)
}

func TestComputeIgnoresBillsPaidOutsidePeriod(t *testing.T) {
	p := period.Period{Month: 3, Year: 2026}

	got := Compute(p, 1000, nil,
		[]bill.Bill{
			{TotalAmount: 1200, TotalInstallments: 12, LastPaymentDate: strPtr("2026-02-10")},
			{TotalAmount: 1200, TotalInstallments: 12, LastPaymentDate: nil},
			{TotalAmount: 1200, TotalInstallments: 12, LastPaymentDate: strPtr("2025-03-10")},
		},
		nil)

	assert.Equal(t, 0.0, got.MonthlyBills)
	assert.Equal(t, 1000.0, got.RemainingBalance)
}

func TestComputeNegativeRemainingFlooredForChart(t *testing.T) {
	p := period.Period{Month: 1, Year: 2026}

	got := Compute(p, 100,
		[]expense.Expense{{Amount: -300}},
		nil, nil)

	assert.Equal(t, -200.0, got.RemainingBalance)
	assert.Equal(t, 0.0, got.ChartRemaining)
}

func TestComputeMixedSignExpenses(t *testing.T) {
	// Variable spending is the magnitude of the net sum, so a refund
	// recorded as a positive row offsets the negatives.
	p := period.Period{Month: 1, Year: 2026}

	got := Compute(p, 500,
		[]expense.Expense{{Amount: 120.25}, {Amount: -79.75}},
		nil, nil)

	assert.Equal(t, 40.50, got.VariableExpenses)
	assert.Equal(t, 459.50, got.RemainingBalance)
}

func TestComputeInstallmentRounding(t *testing.T) {
	p := period.Period{Month: 6, Year: 2026}

	got := Compute(p, 0, nil,
		[]bill.Bill{{TotalAmount: 100, TotalInstallments: 3, LastPaymentDate: strPtr("2026-06-01")}},
		nil)

	assert.Equal(t, 33.33, got.MonthlyBills)
}
