package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/myfintrack/internal/models"
)

// Fixed keys of the persisted aggregates.
const (
	UserKey        = "myfintrack_user"
	DataKey        = "myfintrack_data"
	CredentialsKey = "myfintrack_credentials"
)

// Adapter serializes values to JSON on top of a Store.
type Adapter struct {
	store  Store
	logger *slog.Logger
}

// NewAdapter creates an Adapter. A nil logger uses slog.Default().
func NewAdapter(store Store, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{store: store, logger: logger}
}

// Save encodes value as JSON and stores it under key.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := a.store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// Load decodes the value stored under key into dst.
// Returns ErrNotFound if the key is absent and ErrCorrupt if it cannot be decoded.
func (a *Adapter) Load(ctx context.Context, key string, dst any) error {
	data, err := a.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

// Remove deletes key.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// SaveUser persists the user aggregate.
func (a *Adapter) SaveUser(ctx context.Context, user *models.User) error {
	return a.Save(ctx, UserKey, user)
}

// LoadUser returns the persisted user, or false if it is absent or unreadable.
// Unreadable payloads, including a user without an ID, are logged and
// treated as absent.
func (a *Adapter) LoadUser(ctx context.Context) (*models.User, bool) {
	var user models.User
	if !a.tolerantLoad(ctx, UserKey, &user) {
		return nil, false
	}
	if user.ID == "" {
		a.logger.Warn("Ignoring unreadable persisted value", "key", UserKey, "error", ErrCorrupt)
		return nil, false
	}
	return &user, true
}

// SaveData persists the financial data aggregate.
func (a *Adapter) SaveData(ctx context.Context, data models.FinancialData) error {
	return a.Save(ctx, DataKey, data.Normalize())
}

// LoadData returns the persisted financial data, or false if it is absent
// or unreadable. Unreadable payloads are logged and treated as absent.
func (a *Adapter) LoadData(ctx context.Context) (models.FinancialData, bool) {
	var data models.FinancialData
	if !a.tolerantLoad(ctx, DataKey, &data) {
		return models.FinancialData{}, false
	}
	return data.Normalize(), true
}

// Clear removes both the user and the financial data aggregates.
func (a *Adapter) Clear(ctx context.Context) error {
	return errors.Join(
		a.Remove(ctx, UserKey),
		a.Remove(ctx, DataKey),
	)
}

func (a *Adapter) tolerantLoad(ctx context.Context, key string, dst any) bool {
	err := a.Load(ctx, key, dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, ErrNotFound):
		a.logger.Debug("No persisted value", "key", key)
	default:
		a.logger.Warn("Ignoring unreadable persisted value", "key", key, "error", err)
	}
	return false
}
