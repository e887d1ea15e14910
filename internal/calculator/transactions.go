package calculator

import (
	"slices"
	"strings"

	"github.com/mmynk/myfintrack/internal/models"
	"github.com/shopspring/decimal"
)

// Kind distinguishes income from expense in a merged transaction list.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Transaction is an income or expense flattened for display.
type Transaction struct {
	Kind Kind
	ID   string

	// Label is the income source or the expense category.
	Label string

	Amount      decimal.Decimal
	Date        models.Date
	Description string
}

// RecentTransactions merges income and expenses and returns the newest
// limit entries, newest first. Entries on the same date keep income before
// expenses and insertion order. A non-positive limit returns everything.
func RecentTransactions(income []models.Income, expenses []models.Expense, limit int) []Transaction {
	all := make([]Transaction, 0, len(income)+len(expenses))
	for _, i := range income {
		all = append(all, Transaction{
			Kind: KindIncome, ID: i.ID, Label: i.Source,
			Amount: i.Amount, Date: i.Date, Description: i.Description,
		})
	}
	for _, e := range expenses {
		all = append(all, Transaction{
			Kind: KindExpense, ID: e.ID, Label: e.Category,
			Amount: e.Amount, Date: e.Date, Description: e.Description,
		})
	}

	slices.SortStableFunc(all, func(a, b Transaction) int {
		return b.Date.Time().Compare(a.Date.Time())
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// UpcomingDues returns liabilities due between today and today+days,
// both inclusive, in their original order.
func UpcomingDues(liabilities []models.Liability, today models.Date, days int) []models.Liability {
	due := []models.Liability{}
	last := today.AddDays(days)
	for _, l := range liabilities {
		if l.DueDate != nil && l.DueDate.Between(today, last) {
			due = append(due, l)
		}
	}
	return due
}

// matches reports whether any field contains term, ignoring case.
// An empty term matches everything.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// filter keeps the items matching both the search term and the exact
// group value. An empty group matches everything.
func filter[T any](items []T, term, group string, key func(T) string, fields func(T) []string) []T {
	out := []T{}
	for _, item := range items {
		if group != "" && key(item) != group {
			continue
		}
		if !matches(term, fields(item)...) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// FilterIncome searches source and description, optionally restricted to one source.
func FilterIncome(income []models.Income, term, source string) []models.Income {
	return filter(income, term, source, IncomeSource, func(i models.Income) []string {
		return []string{i.Source, i.Description}
	})
}

// FilterExpenses searches category and description, optionally restricted to one category.
func FilterExpenses(expenses []models.Expense, term, category string) []models.Expense {
	return filter(expenses, term, category, ExpenseCategory, func(e models.Expense) []string {
		return []string{e.Category, e.Description}
	})
}

// FilterAssets searches name and description, optionally restricted to one type.
func FilterAssets(assets []models.Asset, term, typ string) []models.Asset {
	return filter(assets, term, typ, AssetType, func(a models.Asset) []string {
		return []string{a.Name, a.Description}
	})
}

// FilterLiabilities searches name and description, optionally restricted to one type.
func FilterLiabilities(liabilities []models.Liability, term, typ string) []models.Liability {
	return filter(liabilities, term, typ, LiabilityType, func(l models.Liability) []string {
		return []string{l.Name, l.Description}
	})
}
