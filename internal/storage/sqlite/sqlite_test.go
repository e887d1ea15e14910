package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/storage"
	"github.com/shopspring/decimal"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("Get returns ErrNotFound for missing key", func(t *testing.T) {
		_, err := store.Get(ctx, "missing")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Put then Get", func(t *testing.T) {
		if err := store.Put(ctx, "k", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := store.Get(ctx, "k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != `{"a":1}` {
			t.Errorf("Get = %s", got)
		}
	})

	t.Run("Put overwrites", func(t *testing.T) {
		if err := store.Put(ctx, "k", []byte(`{"a":2}`)); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, _ := store.Get(ctx, "k")
		if string(got) != `{"a":2}` {
			t.Errorf("Get after overwrite = %s", got)
		}
	})

	t.Run("Delete removes key and tolerates absence", func(t *testing.T) {
		if err := store.Delete(ctx, "k"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := store.Get(ctx, "k"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.Delete(ctx, "k"); err != nil {
			t.Errorf("Deleting an absent key should succeed, got %v", err)
		}
	})
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fintrack.db")
	ctx := context.Background()

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}

	adapter := storage.NewAdapter(first, nil)
	original := models.NewFinancialData()
	original.Income = append(original.Income, models.Income{
		ID:     "a",
		Amount: decimal.NewFromInt(1000),
		Source: "Salary",
		Date:   models.NewDate(2024, time.January, 15),
		UserID: "u1",
	})
	if err := adapter.SaveData(ctx, original); err != nil {
		t.Fatalf("SaveData failed: %v", err)
	}
	first.Close()

	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer second.Close()

	loaded, ok := storage.NewAdapter(second, nil).LoadData(ctx)
	if !ok {
		t.Fatal("Expected persisted data after reopen")
	}
	if len(loaded.Income) != 1 || loaded.Income[0].ID != "a" || !loaded.Income[0].Amount.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("Loaded income mismatch: %+v", loaded.Income)
	}
}
