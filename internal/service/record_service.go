package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/myfintrack/internal/calculator"
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/state"
)

// ErrRecordNotFound is returned when an update or delete names an ID that
// is not in the state.
var ErrRecordNotFound = errors.New("record not found")

// RecordService adds, edits, removes and lists financial records.
type RecordService struct {
	store  Dispatcher
	logger *slog.Logger
}

// NewRecordService creates a RecordService on top of store.
func NewRecordService(store Dispatcher, logger *slog.Logger) *RecordService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordService{store: store, logger: logger}
}

func (s *RecordService) AddIncome(ctx context.Context, in models.Income) (models.Income, error) {
	in.ID, in.UserID = s.identify(in.ID, in.UserID)
	s.noteCustom("source", in.Source, models.IncomeSources)
	return in, s.submit(ctx, in.Validate, state.AddIncome{Income: in})
}

func (s *RecordService) UpdateIncome(ctx context.Context, in models.Income) error {
	if _, err := s.Income(in.ID); err != nil {
		return err
	}
	return s.submit(ctx, in.Validate, state.UpdateIncome{Income: in})
}

func (s *RecordService) DeleteIncome(ctx context.Context, id string) error {
	if _, err := s.Income(id); err != nil {
		return err
	}
	return s.submit(ctx, nil, state.DeleteIncome{ID: id})
}

// Income returns the income entry with the given ID.
func (s *RecordService) Income(id string) (models.Income, error) {
	return lookup(s.store.State().Data.Income, id, incomeID)
}

// ListIncome returns income entries matching term, optionally restricted to source.
func (s *RecordService) ListIncome(term, source string) []models.Income {
	return calculator.FilterIncome(s.store.State().Data.Income, term, source)
}

func (s *RecordService) AddExpense(ctx context.Context, e models.Expense) (models.Expense, error) {
	e.ID, e.UserID = s.identify(e.ID, e.UserID)
	s.noteCustom("category", e.Category, models.ExpenseCategories)
	s.noteCustom("payment_method", e.PaymentMethod, models.PaymentMethods)
	return e, s.submit(ctx, e.Validate, state.AddExpense{Expense: e})
}

func (s *RecordService) UpdateExpense(ctx context.Context, e models.Expense) error {
	if _, err := s.Expense(e.ID); err != nil {
		return err
	}
	return s.submit(ctx, e.Validate, state.UpdateExpense{Expense: e})
}

func (s *RecordService) DeleteExpense(ctx context.Context, id string) error {
	if _, err := s.Expense(id); err != nil {
		return err
	}
	return s.submit(ctx, nil, state.DeleteExpense{ID: id})
}

// Expense returns the expense with the given ID.
func (s *RecordService) Expense(id string) (models.Expense, error) {
	return lookup(s.store.State().Data.Expenses, id, expenseID)
}

// ListExpenses returns expenses matching term, optionally restricted to category.
func (s *RecordService) ListExpenses(term, category string) []models.Expense {
	return calculator.FilterExpenses(s.store.State().Data.Expenses, term, category)
}

func (s *RecordService) AddAsset(ctx context.Context, a models.Asset) (models.Asset, error) {
	a.ID, a.UserID = s.identify(a.ID, a.UserID)
	s.noteCustom("type", a.Type, models.AssetTypes)
	return a, s.submit(ctx, a.Validate, state.AddAsset{Asset: a})
}

func (s *RecordService) UpdateAsset(ctx context.Context, a models.Asset) error {
	if _, err := s.Asset(a.ID); err != nil {
		return err
	}
	return s.submit(ctx, a.Validate, state.UpdateAsset{Asset: a})
}

func (s *RecordService) DeleteAsset(ctx context.Context, id string) error {
	if _, err := s.Asset(id); err != nil {
		return err
	}
	return s.submit(ctx, nil, state.DeleteAsset{ID: id})
}

// Asset returns the asset with the given ID.
func (s *RecordService) Asset(id string) (models.Asset, error) {
	return lookup(s.store.State().Data.Assets, id, assetID)
}

// ListAssets returns assets matching term, optionally restricted to type.
func (s *RecordService) ListAssets(term, typ string) []models.Asset {
	return calculator.FilterAssets(s.store.State().Data.Assets, term, typ)
}

func (s *RecordService) AddLiability(ctx context.Context, l models.Liability) (models.Liability, error) {
	l.ID, l.UserID = s.identify(l.ID, l.UserID)
	s.noteCustom("type", l.Type, models.LiabilityTypes)
	return l, s.submit(ctx, l.Validate, state.AddLiability{Liability: l})
}

func (s *RecordService) UpdateLiability(ctx context.Context, l models.Liability) error {
	if _, err := s.Liability(l.ID); err != nil {
		return err
	}
	return s.submit(ctx, l.Validate, state.UpdateLiability{Liability: l})
}

func (s *RecordService) DeleteLiability(ctx context.Context, id string) error {
	if _, err := s.Liability(id); err != nil {
		return err
	}
	return s.submit(ctx, nil, state.DeleteLiability{ID: id})
}

// Liability returns the liability with the given ID.
func (s *RecordService) Liability(id string) (models.Liability, error) {
	return lookup(s.store.State().Data.Liabilities, id, liabilityID)
}

// ListLiabilities returns liabilities matching term, optionally restricted to type.
func (s *RecordService) ListLiabilities(term, typ string) []models.Liability {
	return calculator.FilterLiabilities(s.store.State().Data.Liabilities, term, typ)
}

// identify fills in a fresh ID and the current user when they are unset.
func (s *RecordService) identify(id, userID string) (string, string) {
	if id == "" {
		id = models.NewID()
	}
	if userID == "" {
		userID = s.store.State().UserID()
	}
	return id, userID
}

// noteCustom logs free-text values that are not part of the catalog.
func (s *RecordService) noteCustom(field, value string, catalog []string) {
	if value != "" && !models.IsKnown(catalog, value) {
		s.logger.Debug("Custom catalog value", field, value)
	}
}

func (s *RecordService) submit(ctx context.Context, validate func() error, a state.Action) error {
	if validate != nil {
		if err := validate(); err != nil {
			return err
		}
	}
	if err := s.store.Dispatch(ctx, a); err != nil {
		return fmt.Errorf("failed to apply %s: %w", a.Name(), err)
	}
	s.logger.Info("Record saved", "action", a.Name())
	return nil
}

func lookup[T any](items []T, id string, key func(T) string) (T, error) {
	for _, item := range items {
		if key(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%w: %q", ErrRecordNotFound, id)
}

func incomeID(i models.Income) string       { return i.ID }
func expenseID(e models.Expense) string     { return e.ID }
func assetID(a models.Asset) string         { return a.ID }
func liabilityID(l models.Liability) string { return l.ID }
