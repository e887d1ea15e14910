package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/state"
	"github.com/mmynk/myfintrack/internal/storage"
	"github.com/mmynk/myfintrack/internal/storage/memory"
)

func newStore(mw ...state.Middleware) *state.Store {
	return state.NewStore(storage.NewAdapter(memory.New(), nil), state.WithMiddleware(mw...))
}

func login(t *testing.T, s *state.Store, id string) {
	t.Helper()
	if err := s.Dispatch(context.Background(), state.SetUser{User: &models.User{ID: id}}); err != nil {
		t.Fatalf("SetUser failed: %v", err)
	}
}

func TestRequireAuth(t *testing.T) {
	ctx := context.Background()
	store := newStore(RequireAuth())

	tests := []struct {
		name    string
		action  state.Action
		wantErr bool
	}{
		{"add before login", state.AddAsset{Asset: models.Asset{ID: "a"}}, true},
		{"delete before login", state.DeleteIncome{ID: "a"}, true},
		{"load before login", state.LoadData{Data: models.NewFinancialData()}, true},
		{"loading flag", state.SetLoading{Loading: true}, false},
		{"error message", state.SetError{Message: "x"}, false},
		{"logout", state.Logout{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := store.Dispatch(ctx, tt.action)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Dispatch(%s) error = %v, wantErr %v", tt.action.Name(), err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
		})
	}

	login(t, store, "u1")
	if err := store.Dispatch(ctx, state.AddAsset{Asset: models.Asset{ID: "a"}}); err != nil {
		t.Errorf("AddAsset after login failed: %v", err)
	}
}

func TestEnforceOwnership(t *testing.T) {
	ctx := context.Background()
	store := newStore(EnforceOwnership())

	// Before login records pass unchanged.
	if err := store.Dispatch(ctx, state.AddIncome{Income: models.Income{ID: "pre", UserID: "someone"}}); err != nil {
		t.Fatalf("AddIncome before login failed: %v", err)
	}

	login(t, store, "u1")

	if err := store.Dispatch(ctx, state.AddExpense{Expense: models.Expense{ID: "e1"}}); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if got := store.State().Data.Expenses[0].UserID; got != "u1" {
		t.Errorf("expense owner = %q, want stamped u1", got)
	}

	err := store.Dispatch(ctx, state.AddLiability{Liability: models.Liability{ID: "l1", UserID: "u2"}})
	if !errors.Is(err, ErrForeignRecord) {
		t.Errorf("expected ErrForeignRecord, got %v", err)
	}

	err = store.Dispatch(ctx, state.UpdateExpense{Expense: models.Expense{ID: "e1", Category: "Rent", UserID: "u2"}})
	if !errors.Is(err, ErrForeignRecord) {
		t.Errorf("expected ErrForeignRecord on update, got %v", err)
	}
	if got := store.State().Data.Expenses[0].Category; got != "" {
		t.Errorf("rejected update was applied: %q", got)
	}

	if err := store.Dispatch(ctx, state.AddAsset{Asset: models.Asset{ID: "a1", UserID: "u1"}}); err != nil {
		t.Errorf("own record rejected: %v", err)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store := newStore(Logging(logger), RequireAuth())
	ctx := context.Background()

	store.Dispatch(ctx, state.AddAsset{Asset: models.Asset{ID: "a"}})
	login(t, store, "u1")
	store.Dispatch(ctx, state.AddAsset{Asset: models.Asset{ID: "a"}})

	out := buf.String()
	for _, want := range []string{
		`msg="Dispatch rejected" action=ADD_ASSET`,
		`msg="Dispatch ok" action=SET_USER`,
		`msg="Dispatch ok" action=ADD_ASSET user_id=u1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
