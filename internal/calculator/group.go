package calculator

import (
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/shopspring/decimal"
)

// Bucket is a named partition of records.
type Bucket[T any] struct {
	Name  string
	Items []T
}

// CategoryTotal is the summed value of one bucket.
type CategoryTotal struct {
	Name  string
	Value decimal.Decimal
}

// Grouping keys for each record type.
func IncomeSource(i models.Income) string     { return i.Source }
func ExpenseCategory(e models.Expense) string { return e.Category }
func AssetType(a models.Asset) string         { return a.Type }
func LiabilityType(l models.Liability) string { return l.Type }

// GroupBy partitions items by key(item). Items with an empty key fall in
// the models.Other bucket. Buckets are ordered by the first occurrence of
// their key; items keep their relative order inside a bucket.
func GroupBy[T any](items []T, key func(T) string) []Bucket[T] {
	var buckets []Bucket[T]
	index := make(map[string]int)

	for _, item := range items {
		name := key(item)
		if name == "" {
			name = models.Other
		}
		i, ok := index[name]
		if !ok {
			i = len(buckets)
			index[name] = i
			buckets = append(buckets, Bucket[T]{Name: name})
		}
		buckets[i].Items = append(buckets[i].Items, item)
	}

	return buckets
}

// CategoryTotals sums value over each bucket, in bucket order.
func CategoryTotals[T any](buckets []Bucket[T], value func(T) decimal.Decimal) []CategoryTotal {
	totals := make([]CategoryTotal, len(buckets))
	for i, b := range buckets {
		totals[i] = CategoryTotal{Name: b.Name, Value: sum(b.Items, value)}
	}
	return totals
}
