package models

// FinancialData is the aggregate of a user's four record sequences.
// Each sequence keeps insertion order. It is never nil-valued once
// normalized: empty sequences are empty slices, so the JSON form
// always carries four arrays.
type FinancialData struct {
	Income      []Income    `json:"income"`
	Expenses    []Expense   `json:"expenses"`
	Assets      []Asset     `json:"assets"`
	Liabilities []Liability `json:"liabilities"`
}

// NewFinancialData returns an empty aggregate.
func NewFinancialData() FinancialData {
	return FinancialData{
		Income:      []Income{},
		Expenses:    []Expense{},
		Assets:      []Asset{},
		Liabilities: []Liability{},
	}
}

// Normalize replaces nil sequences with empty ones. Payloads missing a
// key decode to nil sequences.
func (f FinancialData) Normalize() FinancialData {
	if f.Income == nil {
		f.Income = []Income{}
	}
	if f.Expenses == nil {
		f.Expenses = []Expense{}
	}
	if f.Assets == nil {
		f.Assets = []Asset{}
	}
	if f.Liabilities == nil {
		f.Liabilities = []Liability{}
	}
	return f
}

// Clone returns a deep copy of f. Neither the sequences nor the optional
// fields of their records share memory with f.
func (f FinancialData) Clone() FinancialData {
	return FinancialData{
		Income:      cloneAll(f.Income, Income.Clone),
		Expenses:    cloneAll(f.Expenses, Expense.Clone),
		Assets:      cloneAll(f.Assets, Asset.Clone),
		Liabilities: cloneAll(f.Liabilities, Liability.Clone),
	}.Normalize()
}

func cloneAll[T any](items []T, clone func(T) T) []T {
	if items == nil {
		return nil
	}
	out := make([]T, len(items))
	for i, item := range items {
		out[i] = clone(item)
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Clone returns a copy of r that shares no memory with it.
func (r *Recurrence) Clone() *Recurrence {
	if r == nil {
		return nil
	}
	return &Recurrence{Frequency: r.Frequency, EndDate: clonePtr(r.EndDate)}
}

// Clone returns a copy of i whose optional fields are not shared.
func (i Income) Clone() Income {
	i.Recurrence = i.Recurrence.Clone()
	return i
}

// Clone returns a copy of e whose optional fields are not shared.
func (e Expense) Clone() Expense {
	e.Recurrence = e.Recurrence.Clone()
	return e
}

// Clone returns a copy of a whose optional fields are not shared.
func (a Asset) Clone() Asset {
	a.DateAcquired = clonePtr(a.DateAcquired)
	return a
}

// Clone returns a copy of l whose optional fields are not shared.
func (l Liability) Clone() Liability {
	l.OriginalAmount = clonePtr(l.OriginalAmount)
	l.InterestRate = clonePtr(l.InterestRate)
	l.MinimumPayment = clonePtr(l.MinimumPayment)
	l.DueDate = clonePtr(l.DueDate)
	return l
}

// Len returns the total number of records across all sequences.
func (f FinancialData) Len() int {
	return len(f.Income) + len(f.Expenses) + len(f.Assets) + len(f.Liabilities)
}
