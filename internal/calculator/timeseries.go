package calculator

import (
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/shopspring/decimal"
)

// MonthLabelFormat labels a month bucket, e.g. "Jan 2024".
const MonthLabelFormat = "Jan 2006"

// MonthValue is the total of one calendar month.
type MonthValue struct {
	Month string
	Start models.Date
	End   models.Date
	Value decimal.Decimal
}

// TimeSeries holds parallel monthly income and expense totals, oldest first.
type TimeSeries struct {
	Income   []MonthValue
	Expenses []MonthValue
}

// RecentMonths returns the first day of each of the last count months,
// oldest first, ending with the month containing today.
func RecentMonths(today models.Date, count int) []models.Date {
	if count <= 0 {
		return nil
	}
	months := make([]models.Date, count)
	for i := range count {
		months[i] = today.AddMonths(i - count + 1)
	}
	return months
}

// BuildTimeSeries sums income and expenses for each of the last months
// calendar months ending with today's month. A record belongs to a month
// when its date lies within the month's first and last day, inclusive.
func BuildTimeSeries(income []models.Income, expenses []models.Expense, months int, today models.Date) TimeSeries {
	series := TimeSeries{
		Income:   []MonthValue{},
		Expenses: []MonthValue{},
	}

	for _, month := range RecentMonths(today, months) {
		start, end := month.StartOfMonth(), month.EndOfMonth()
		label := start.Time().Format(MonthLabelFormat)

		inMonth := func(d models.Date) bool { return d.Between(start, end) }

		series.Income = append(series.Income, MonthValue{
			Month: label,
			Start: start,
			End:   end,
			Value: sum(income, func(i models.Income) decimal.Decimal {
				if inMonth(i.Date) {
					return i.Amount
				}
				return decimal.Zero
			}),
		})
		series.Expenses = append(series.Expenses, MonthValue{
			Month: label,
			Start: start,
			End:   end,
			Value: sum(expenses, func(e models.Expense) decimal.Decimal {
				if inMonth(e.Date) {
					return e.Amount
				}
				return decimal.Zero
			}),
		})
	}

	return series
}
