package storage_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/storage"
	"github.com/mmynk/myfintrack/internal/storage/memory"
	"github.com/shopspring/decimal"
)

func sampleData() models.FinancialData {
	end := models.NewDate(2024, time.June, 30)
	acquired := models.NewDate(2020, time.March, 3)
	rate := decimal.RequireFromString("19.99")

	data := models.NewFinancialData()
	data.Income = append(data.Income,
		models.Income{ID: "a", Amount: decimal.RequireFromString("1000"), Source: "Salary",
			Date: models.NewDate(2024, time.January, 15), UserID: "u1"},
		models.Income{ID: "b", Amount: decimal.RequireFromString("250.5"), Source: "Tutoring",
			Date: models.NewDate(2024, time.January, 3), Description: "weekly lessons",
			Recurrence: &models.Recurrence{Frequency: models.Weekly, EndDate: &end}, UserID: "u1"},
	)
	data.Expenses = append(data.Expenses, models.Expense{ID: "c", Amount: decimal.RequireFromString("400"),
		Category: "Rent", Date: models.NewDate(2024, time.January, 20), PaymentMethod: "Bank Transfer", UserID: "u1"})
	data.Assets = append(data.Assets, models.Asset{ID: "d", Name: "Car", Type: "Vehicle",
		CurrentValue: decimal.RequireFromString("8000"), DateAcquired: &acquired, UserID: "u1"})
	data.Liabilities = append(data.Liabilities, models.Liability{ID: "e", Name: "Visa", Type: "Credit Card",
		OutstandingBalance: decimal.RequireFromString("1200.75"), InterestRate: &rate, UserID: "u1"})
	return data
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	return string(data)
}

func TestAdapterRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := storage.NewAdapter(memory.New(), nil)

	original := sampleData()
	if err := adapter.SaveData(ctx, original); err != nil {
		t.Fatalf("SaveData failed: %v", err)
	}

	loaded, ok := adapter.LoadData(ctx)
	if !ok {
		t.Fatal("LoadData reported absence after save")
	}
	if got, want := mustJSON(t, loaded), mustJSON(t, original); got != want {
		t.Errorf("round trip mismatch:\n got %s\nwant %s", got, want)
	}
	if loaded.Income[1].Recurrence == nil || *loaded.Income[1].Recurrence.EndDate != *original.Income[1].Recurrence.EndDate {
		t.Errorf("recurrence not restored: %+v", loaded.Income[1].Recurrence)
	}

	user := &models.User{ID: "u1", Email: "a@b.co", Name: "A", CreatedAt: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)}
	if err := adapter.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}
	loadedUser, ok := adapter.LoadUser(ctx)
	if !ok {
		t.Fatal("LoadUser reported absence after save")
	}
	if *loadedUser != *user {
		t.Errorf("LoadUser = %+v, want %+v", loadedUser, user)
	}
}

func TestAdapterAbsentAndCorrupt(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	adapter := storage.NewAdapter(kv, nil)

	if _, ok := adapter.LoadUser(ctx); ok {
		t.Error("expected absence for empty store")
	}
	var u models.User
	if err := adapter.Load(ctx, storage.UserKey, &u); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Load on empty store = %v, want ErrNotFound", err)
	}

	kv.Put(ctx, storage.UserKey, []byte("{not json"))
	kv.Put(ctx, storage.DataKey, []byte(`{"income":[{"id":"x","date":"yesterday"}]}`))

	if err := adapter.Load(ctx, storage.UserKey, &u); !errors.Is(err, storage.ErrCorrupt) {
		t.Errorf("Load on corrupt payload = %v, want ErrCorrupt", err)
	}
	if _, ok := adapter.LoadUser(ctx); ok {
		t.Error("corrupt user should be treated as absent")
	}
	if _, ok := adapter.LoadData(ctx); ok {
		t.Error("corrupt data should be treated as absent")
	}
}

func TestAdapterUserWithoutID(t *testing.T) {
	ctx := context.Background()

	for _, payload := range []string{"null", "{}", `{"email":"a@b.co","name":"A"}`} {
		t.Run(payload, func(t *testing.T) {
			kv := memory.New()
			adapter := storage.NewAdapter(kv, nil)
			kv.Put(ctx, storage.UserKey, []byte(payload))

			if user, ok := adapter.LoadUser(ctx); ok {
				t.Errorf("LoadUser(%s) = %+v, want absence", payload, user)
			}
		})
	}
}

func TestAdapterClear(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	adapter := storage.NewAdapter(kv, nil)

	adapter.SaveUser(ctx, &models.User{ID: "u1"})
	adapter.SaveData(ctx, sampleData())
	adapter.Save(ctx, storage.CredentialsKey, map[string]string{"email": "a@b.co"})

	if err := adapter.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, key := range []string{storage.UserKey, storage.DataKey} {
		if _, err := kv.Get(ctx, key); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("%s still present after Clear", key)
		}
	}
	if _, err := kv.Get(ctx, storage.CredentialsKey); err != nil {
		t.Errorf("Clear should keep credentials, got %v", err)
	}
}
