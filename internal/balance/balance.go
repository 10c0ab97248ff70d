// Package balance derives the month's remaining balance from the user's
// income, variable expenses, paid installment bills and investments.
package balance

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vitornoms1/FinanceManager/internal/bill"
	"github.com/vitornoms1/FinanceManager/internal/expense"
	"github.com/vitornoms1/FinanceManager/internal/investment"
	"github.com/vitornoms1/FinanceManager/internal/period"
)

type Summary struct {
	Month            int     `json:"month"`
	Year             int     `json:"year"`
	Income           float64 `json:"income"`
	VariableExpenses float64 `json:"variableExpenses"`
	MonthlyBills     float64 `json:"monthlyBills"`
	Investments      float64 `json:"investments"`
	TotalSpending    float64 `json:"totalSpending"`
	RemainingBalance float64 `json:"remainingBalance"`
	// ChartRemaining is the remaining balance floored at zero, what a chart
	// segment can show; RemainingBalance keeps the sign.
	ChartRemaining float64 `json:"chartRemaining"`
}

// Compute applies the balance rule for one period. Expenses and investments
// must already be filtered to the period; bills are filtered here by their
// last payment date.
func Compute(p period.Period, income float64, expenses []expense.Expense, bills []bill.Bill, investments []investment.Investment) Summary {
	variable := decimal.Zero
	for _, e := range expenses {
		variable = variable.Add(decimal.NewFromFloat(e.Amount))
	}
	// Expense amounts are stored negative; spending is their magnitude.
	variable = variable.Abs()

	monthly := decimal.Zero
	for _, b := range bills {
		if b.LastPaymentDate == nil {
			continue
		}
		paidOn, err := time.Parse("2006-01-02", *b.LastPaymentDate)
		if err != nil || !p.Contains(paidOn) {
			continue
		}
		monthly = monthly.Add(b.InstallmentCost())
	}

	invested := decimal.Zero
	for _, inv := range investments {
		invested = invested.Add(decimal.NewFromFloat(inv.Amount))
	}

	spending := variable.Add(monthly).Add(invested)
	remaining := decimal.NewFromFloat(income).Sub(spending)

	chart := remaining
	if chart.IsNegative() {
		chart = decimal.Zero
	}

	return Summary{
		Month:            p.Month,
		Year:             p.Year,
		Income:           income,
		VariableExpenses: round2(variable),
		MonthlyBills:     round2(monthly),
		Investments:      round2(invested),
		TotalSpending:    round2(spending),
		RemainingBalance: round2(remaining),
		ChartRemaining:   round2(chart),
	}
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
