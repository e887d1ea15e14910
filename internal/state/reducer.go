package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mmynk/myfintrack/internal/models"
)

var (
	// ErrUnknownAction is returned for a nil action or a type Reduce does not handle.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateID is returned when an added record reuses an ID of its sequence.
	ErrDuplicateID = errors.New("duplicate record id")

	// ErrNilUser is returned by SetUser without a user.
	ErrNilUser = errors.New("user is required")
)

// Effect is the persistence side effect of a reduced action.
type Effect int

const (
	// EffectNone leaves storage untouched.
	EffectNone Effect = iota
	// EffectSaveUser writes the user aggregate.
	EffectSaveUser
	// EffectSaveData writes the full financial data aggregate.
	EffectSaveData
	// EffectClear deletes both persisted aggregates.
	EffectClear
)

func (e Effect) String() string {
	switch e {
	case EffectSaveUser:
		return "save_user"
	case EffectSaveData:
		return "save_data"
	case EffectClear:
		return "clear"
	default:
		return "none"
	}
}

// Reduce computes the state following a. It never mutates s: every record
// mutation produces a fresh sequence, while untouched sequences are shared.
// The returned Effect tells the caller what to persist before committing.
func Reduce(s AppState, a Action) (AppState, Effect, error) {
	switch a := a.(type) {
	case SetUser:
		if a.User == nil {
			return s, EffectNone, ErrNilUser
		}
		user := *a.User
		s.User = &user
		s.IsAuthenticated = true
		s.Error = ""
		return s, EffectSaveUser, nil

	case Logout:
		return InitialState(), EffectClear, nil

	case SetLoading:
		s.Loading = a.Loading
		return s, EffectNone, nil

	case SetError:
		s.Error = a.Message
		s.Loading = false
		return s, EffectNone, nil

	case LoadData:
		s.Data = a.Data.Clone()
		return s, EffectNone, nil

	case AddIncome:
		income, err := appendRecord(s.Data.Income, a.Income.Clone(), incomeID)
		if err != nil {
			return s, EffectNone, err
		}
		s.Data.Income = income
	case UpdateIncome:
		s.Data.Income = replaceRecord(s.Data.Income, a.Income.Clone(), incomeID)
	case DeleteIncome:
		s.Data.Income = removeRecord(s.Data.Income, a.ID, incomeID)

	case AddExpense:
		expenses, err := appendRecord(s.Data.Expenses, a.Expense.Clone(), expenseID)
		if err != nil {
			return s, EffectNone, err
		}
		s.Data.Expenses = expenses
	case UpdateExpense:
		s.Data.Expenses = replaceRecord(s.Data.Expenses, a.Expense.Clone(), expenseID)
	case DeleteExpense:
		s.Data.Expenses = removeRecord(s.Data.Expenses, a.ID, expenseID)

	case AddAsset:
		assets, err := appendRecord(s.Data.Assets, a.Asset.Clone(), assetID)
		if err != nil {
			return s, EffectNone, err
		}
		s.Data.Assets = assets
	case UpdateAsset:
		s.Data.Assets = replaceRecord(s.Data.Assets, a.Asset.Clone(), assetID)
	case DeleteAsset:
		s.Data.Assets = removeRecord(s.Data.Assets, a.ID, assetID)

	case AddLiability:
		liabilities, err := appendRecord(s.Data.Liabilities, a.Liability.Clone(), liabilityID)
		if err != nil {
			return s, EffectNone, err
		}
		s.Data.Liabilities = liabilities
	case UpdateLiability:
		s.Data.Liabilities = replaceRecord(s.Data.Liabilities, a.Liability.Clone(), liabilityID)
	case DeleteLiability:
		s.Data.Liabilities = removeRecord(s.Data.Liabilities, a.ID, liabilityID)

	default:
		return s, EffectNone, fmt.Errorf("%w: %T", ErrUnknownAction, a)
	}

	// Every record mutation persists the full aggregate.
	return s, EffectSaveData, nil
}

func incomeID(i models.Income) string       { return i.ID }
func expenseID(e models.Expense) string     { return e.ID }
func assetID(a models.Asset) string         { return a.ID }
func liabilityID(l models.Liability) string { return l.ID }

// appendRecord returns a new slice with item at the end.
func appendRecord[T any](items []T, item T, id func(T) string) ([]T, error) {
	key := id(item)
	if slices.ContainsFunc(items, func(existing T) bool { return id(existing) == key }) {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateID, key)
	}
	out := make([]T, len(items), len(items)+1)
	copy(out, items)
	return append(out, item), nil
}

// replaceRecord returns a new slice where the entry sharing item's ID is
// replaced in place. Unknown IDs leave the entries unchanged.
func replaceRecord[T any](items []T, item T, id func(T) string) []T {
	key := id(item)
	out := make([]T, len(items))
	for i, existing := range items {
		if id(existing) == key {
			out[i] = item
		} else {
			out[i] = existing
		}
	}
	return out
}

// removeRecord returns a new slice without the entry whose ID is target.
func removeRecord[T any](items []T, target string, id func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, existing := range items {
		if id(existing) != target {
			out = append(out, existing)
		}
	}
	return out
}
