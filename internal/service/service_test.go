package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/myfintrack/internal/auth"
	"github.com/mmynk/myfintrack/internal/calculator"
	"github.com/mmynk/myfintrack/internal/middleware"
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/state"
	"github.com/mmynk/myfintrack/internal/storage"
	"github.com/mmynk/myfintrack/internal/storage/memory"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	store   *state.Store
	adapter *storage.Adapter
	auth    *AuthService
	records *RecordService
}

// setupTestEnv wires services the way the CLI does, on an in-memory store.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	adapter := storage.NewAdapter(memory.New(), nil)
	store := state.NewStore(adapter, state.WithMiddleware(
		middleware.RequireAuth(),
		middleware.EnforceOwnership(),
	))
	authenticator := auth.NewPasswordAuthenticator(adapter, auth.WithDelay(0), auth.WithCost(bcrypt.MinCost))

	return &testEnv{
		store:   store,
		adapter: adapter,
		auth:    NewAuthService(authenticator, store, nil),
		records: NewRecordService(store, nil),
	}
}

func (e *testEnv) signUp(t *testing.T) *models.User {
	t.Helper()
	user, err := e.auth.SignUp(context.Background(), "alice@example.com", "Alice", "secret1")
	if err != nil {
		t.Fatalf("SignUp failed: %v", err)
	}
	return user
}

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestAuthService_SignUpLoginLogout(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)

	user := env.signUp(t)

	st := env.store.State()
	if !st.IsAuthenticated || st.User.ID != user.ID {
		t.Fatalf("state after sign up = %+v, want authenticated as %s", st, user.ID)
	}
	if st.Loading {
		t.Error("loading flag left set after sign up")
	}
	if persisted, ok := env.adapter.LoadUser(ctx); !ok || persisted.ID != user.ID {
		t.Errorf("persisted user = %+v, want %s", persisted, user.ID)
	}

	if err := env.auth.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, ok := env.auth.CurrentUser(); ok {
		t.Error("expected no current user after logout")
	}

	again, err := env.auth.Login(ctx, "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if again.ID != user.ID {
		t.Errorf("Login user ID = %s, want %s", again.ID, user.ID)
	}
	if current, ok := env.auth.CurrentUser(); !ok || current.Email != "alice@example.com" {
		t.Errorf("CurrentUser = %+v, %v", current, ok)
	}
}

func TestAuthService_SwitchUser(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	alice := env.signUp(t)

	in, err := env.records.AddIncome(ctx, models.Income{
		Amount: d("100"), Source: "Gift", Date: models.NewDate(2024, time.May, 1), Description: "alice-secret",
	})
	if err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}

	// Signing in again as the same user keeps the session's records.
	if _, err := env.auth.Login(ctx, "alice@example.com", "secret1"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if n := len(env.store.State().Data.Income); n != 1 {
		t.Fatalf("income after re-login = %d entries, want 1", n)
	}

	bob, err := env.auth.SignUp(ctx, "bob@example.com", "Bob", "secret2")
	if err != nil {
		t.Fatalf("SignUp bob failed: %v", err)
	}

	st := env.store.State()
	if st.UserID() != bob.ID || st.UserID() == alice.ID {
		t.Fatalf("current user = %q, want bob %q", st.UserID(), bob.ID)
	}
	if n := st.Data.Len(); n != 0 {
		t.Errorf("bob sees %d records of the previous user", n)
	}
	if data, ok := env.adapter.LoadData(ctx); ok && data.Len() != 0 {
		t.Errorf("previous user's data still persisted: %+v", data)
	}
	if err := env.records.DeleteIncome(ctx, in.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("DeleteIncome(alice's record) error = %v, want ErrRecordNotFound", err)
	}
	if _, err := env.auth.Login(ctx, "alice@example.com", "secret1"); err != nil {
		t.Errorf("alice's account should survive the switch: %v", err)
	}
}

// rejectingStore commits everything except the actions named in reject.
type rejectingStore struct {
	*state.Store
	reject map[string]bool
}

var errRejected = errors.New("rejected")

func (r rejectingStore) Dispatch(ctx context.Context, a state.Action) error {
	if r.reject[a.Name()] {
		return errRejected
	}
	return r.Store.Dispatch(ctx, a)
}

func TestAuthService_SignInFailureIsLogged(t *testing.T) {
	adapter := storage.NewAdapter(memory.New(), nil)
	store := rejectingStore{
		Store:  state.NewStore(adapter),
		reject: map[string]bool{"SET_USER": true, "SET_ERROR": true},
	}
	authenticator := auth.NewPasswordAuthenticator(adapter, auth.WithDelay(0), auth.WithCost(bcrypt.MinCost))

	var logs bytes.Buffer
	svc := NewAuthService(authenticator, store, slog.New(slog.NewTextHandler(&logs, nil)))

	_, err := svc.SignUp(context.Background(), "alice@example.com", "Alice", "secret1")
	if !errors.Is(err, errRejected) {
		t.Fatalf("SignUp error = %v, want the SET_USER rejection", err)
	}
	if !strings.Contains(logs.String(), "Failed to record auth error") {
		t.Errorf("rejected SET_ERROR was not logged:\n%s", logs.String())
	}
	if store.State().IsAuthenticated {
		t.Error("rejected SET_USER must not authenticate")
	}
}

func TestAuthService_FailureSetsError(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.auth.Login(context.Background(), "not-an-email", "secret1")
	if !errors.Is(err, auth.ErrInvalidEmail) {
		t.Fatalf("Login error = %v, want ErrInvalidEmail", err)
	}

	st := env.store.State()
	if st.IsAuthenticated {
		t.Error("failed login must not authenticate")
	}
	if st.Error != auth.ErrInvalidEmail.Error() {
		t.Errorf("Error = %q, want %q", st.Error, auth.ErrInvalidEmail.Error())
	}
	if st.Loading {
		t.Error("SET_ERROR should clear the loading flag")
	}
}

func TestRecordService_RequiresLogin(t *testing.T) {
	env := setupTestEnv(t)

	_, err := env.records.AddAsset(context.Background(), models.Asset{Name: "Car", Type: "Vehicle", CurrentValue: d("100")})
	if !errors.Is(err, middleware.ErrNotAuthenticated) {
		t.Errorf("AddAsset error = %v, want ErrNotAuthenticated", err)
	}
}

func TestRecordService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	user := env.signUp(t)

	in, err := env.records.AddIncome(ctx, models.Income{
		Amount: d("3000"),
		Source: "Salary",
		Date:   models.NewDate(2024, time.May, 1),
	})
	if err != nil {
		t.Fatalf("AddIncome failed: %v", err)
	}
	if in.ID == "" || in.UserID != user.ID {
		t.Errorf("AddIncome = %+v, want generated ID owned by %s", in, user.ID)
	}

	in.Amount = d("3200")
	in.Description = "raise"
	if err := env.records.UpdateIncome(ctx, in); err != nil {
		t.Fatalf("UpdateIncome failed: %v", err)
	}
	got, err := env.records.Income(in.ID)
	if err != nil {
		t.Fatalf("Income failed: %v", err)
	}
	if !got.Amount.Equal(d("3200")) || got.Description != "raise" {
		t.Errorf("Income after update = %+v", got)
	}

	if list := env.records.ListIncome("RAISE", ""); len(list) != 1 {
		t.Errorf("ListIncome(RAISE) returned %d entries, want 1", len(list))
	}
	if list := env.records.ListIncome("", "Bonus"); len(list) != 0 {
		t.Errorf("ListIncome(Bonus) returned %d entries, want 0", len(list))
	}

	if err := env.records.DeleteIncome(ctx, in.ID); err != nil {
		t.Fatalf("DeleteIncome failed: %v", err)
	}
	if err := env.records.DeleteIncome(ctx, in.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second DeleteIncome error = %v, want ErrRecordNotFound", err)
	}

	data, ok := env.adapter.LoadData(ctx)
	if !ok || len(data.Income) != 0 {
		t.Errorf("persisted income = %+v, want empty", data.Income)
	}
}

func TestRecordService_Validation(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	env.signUp(t)

	tests := []struct {
		name string
		add  func() error
	}{
		{"expense without date", func() error {
			_, err := env.records.AddExpense(ctx, models.Expense{Amount: d("5"), Category: "Dining Out", PaymentMethod: "Cash"})
			return err
		}},
		{"asset without name", func() error {
			_, err := env.records.AddAsset(ctx, models.Asset{Type: "Cash", CurrentValue: d("5")})
			return err
		}},
		{"liability with negative balance", func() error {
			_, err := env.records.AddLiability(ctx, models.Liability{Name: "Visa", Type: "Credit Card", OutstandingBalance: d("-1")})
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, models.ErrInvalidRecord) {
				t.Errorf("error = %v, want ErrInvalidRecord", err)
			}
		})
	}

	if n := env.store.State().Data.Len(); n != 0 {
		t.Errorf("invalid records were dispatched: %d in state", n)
	}
}

func TestRecordService_UpdateUnknown(t *testing.T) {
	ctx := context.Background()
	env := setupTestEnv(t)
	env.signUp(t)

	err := env.records.UpdateLiability(ctx, models.Liability{ID: "missing", Name: "Visa", Type: "Credit Card"})
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("UpdateLiability error = %v, want ErrRecordNotFound", err)
	}
}

func TestBuildDashboard(t *testing.T) {
	today := models.NewDate(2024, time.June, 10)
	due := models.NewDate(2024, time.June, 15)
	late := models.NewDate(2024, time.July, 1)

	st := state.InitialState()
	st.Data.Income = []models.Income{
		{ID: "i1", Amount: d("1000"), Source: "Salary", Date: models.NewDate(2024, time.June, 1)},
		{ID: "i2", Amount: d("200"), Source: "Gift", Date: models.NewDate(2024, time.May, 20)},
	}
	st.Data.Expenses = []models.Expense{
		{ID: "e1", Amount: d("300"), Category: "Rent", Date: models.NewDate(2024, time.June, 2)},
	}
	st.Data.Assets = []models.Asset{
		{ID: "a1", Name: "Checking", Type: "Cash", CurrentValue: d("5000")},
	}
	st.Data.Liabilities = []models.Liability{
		{ID: "l1", Name: "Visa", Type: "Credit Card", OutstandingBalance: d("1500"), DueDate: &due},
		{ID: "l2", Name: "Car", Type: "Car Loan", OutstandingBalance: d("500"), DueDate: &late},
	}

	dash := BuildDashboard(st, today, DefaultDashboardOptions)

	checks := []struct {
		name string
		got  decimal.Decimal
		want string
	}{
		{"total income", dash.TotalIncome, "1200"},
		{"total expenses", dash.TotalExpenses, "300"},
		{"total assets", dash.TotalAssets, "5000"},
		{"total liabilities", dash.TotalLiabilities, "2000"},
		{"net worth", dash.NetWorth, "3000"},
	}
	for _, c := range checks {
		if !c.got.Equal(d(c.want)) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	if len(dash.IncomeBySource) != 2 || dash.IncomeBySource[0].Name != "Salary" {
		t.Errorf("IncomeBySource = %+v", dash.IncomeBySource)
	}
	if len(dash.Trend.Income) != DefaultDashboardOptions.TrendMonths {
		t.Errorf("trend has %d months, want %d", len(dash.Trend.Income), DefaultDashboardOptions.TrendMonths)
	}
	if len(dash.Recent) != 3 || dash.Recent[0].ID != "e1" || dash.Recent[0].Kind != calculator.KindExpense {
		t.Errorf("Recent = %+v, want e1 first", dash.Recent)
	}
	if len(dash.UpcomingDues) != 1 || dash.UpcomingDues[0].ID != "l1" {
		t.Errorf("UpcomingDues = %+v, want only l1", dash.UpcomingDues)
	}
}
