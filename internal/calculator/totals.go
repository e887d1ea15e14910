// Package calculator derives summaries from financial records.
//
// Every function is pure: inputs are never mutated, outputs are fresh
// values, and an empty input yields a zero total or an empty grouping.
package calculator

import (
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/shopspring/decimal"
)

// sum adds value(item) over items.
func sum[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(value(item))
	}
	return total
}

// Value accessors for the numeric field of each record type.
func IncomeAmount(i models.Income) decimal.Decimal        { return i.Amount }
func ExpenseAmount(e models.Expense) decimal.Decimal      { return e.Amount }
func AssetValue(a models.Asset) decimal.Decimal           { return a.CurrentValue }
func LiabilityBalance(l models.Liability) decimal.Decimal { return l.OutstandingBalance }

// TotalIncome returns the sum of all income amounts.
func TotalIncome(income []models.Income) decimal.Decimal {
	return sum(income, IncomeAmount)
}

// TotalExpenses returns the sum of all expense amounts.
func TotalExpenses(expenses []models.Expense) decimal.Decimal {
	return sum(expenses, ExpenseAmount)
}

// TotalAssets returns the sum of current asset values.
func TotalAssets(assets []models.Asset) decimal.Decimal {
	return sum(assets, AssetValue)
}

// TotalLiabilities returns the sum of outstanding balances.
func TotalLiabilities(liabilities []models.Liability) decimal.Decimal {
	return sum(liabilities, LiabilityBalance)
}

// NetWorth computes total assets minus total liabilities.
// The result does not depend on the order of either sequence.
func NetWorth(assets []models.Asset, liabilities []models.Liability) decimal.Decimal {
	return TotalAssets(assets).Sub(TotalLiabilities(liabilities))
}

// Percentage returns part as a percentage of total.
// A zero total yields zero instead of a division fault.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(decimal.NewFromInt(100))
}
