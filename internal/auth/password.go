// Package auth implements the local, device-only signup and login.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("please enter a valid email address")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrNameRequired       = errors.New("full name is required")
	ErrEmailExists        = errors.New("email already registered")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// DefaultDelay is how long signup and login take to complete.
const DefaultDelay = 1500 * time.Millisecond

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// CredentialStorage defines the persistence the authenticator needs.
// storage.Adapter implements it.
type CredentialStorage interface {
	Save(ctx context.Context, key string, value any) error
	Load(ctx context.Context, key string, dst any) error
}

// credential is one registered account as persisted on the device.
type credential struct {
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (c credential) user() *models.User {
	name := c.Name
	if name == "" {
		name = models.DefaultName(c.Email)
	}
	return &models.User{ID: c.UserID, Email: c.Email, Name: name, CreatedAt: c.CreatedAt}
}

// PasswordAuthenticator implements password-based authentication using bcrypt.
// Accounts live in the local key-value store; nothing leaves the device.
type PasswordAuthenticator struct {
	storage CredentialStorage
	delay   time.Duration
	now     func() time.Time
	cost    int
}

// Option configures a PasswordAuthenticator.
type Option func(*PasswordAuthenticator)

// WithDelay sets how long each signup or login takes. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(a *PasswordAuthenticator) { a.delay = d }
}

// WithClock overrides time.Now for account creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *PasswordAuthenticator) { a.now = now }
}

// WithCost sets the bcrypt cost.
func WithCost(cost int) Option {
	return func(a *PasswordAuthenticator) { a.cost = cost }
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(storage CredentialStorage, opts ...Option) *PasswordAuthenticator {
	a := &PasswordAuthenticator{
		storage: storage,
		delay:   DefaultDelay,
		now:     time.Now,
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// ValidateEmail checks the email looks like an address.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// Register creates a new account with a hashed password.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := a.ValidateCredential(password); err != nil {
		return nil, err
	}
	if strings.TrimSpace(displayName) == "" {
		return nil, ErrNameRequired
	}

	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	accounts, err := a.accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range accounts {
		if c.Email == email {
			return nil, ErrEmailExists
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), a.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.NewUser(email, strings.TrimSpace(displayName), a.now())
	accounts = append(accounts, credential{
		UserID:       user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: string(hashedPassword),
		CreatedAt:    user.CreatedAt,
	})
	if err := a.storage.Save(ctx, storage.CredentialsKey, accounts); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate verifies the email and password, returning the user if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = normalizeEmail(email)
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}
	if err := a.ValidateCredential(password); err != nil {
		return nil, err
	}

	if err := a.wait(ctx); err != nil {
		return nil, err
	}

	accounts, err := a.accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range accounts {
		if c.Email != email {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
			return nil, ErrInvalidCredentials
		}
		return c.user(), nil
	}

	return nil, ErrInvalidCredentials
}

// accounts loads the registered credentials. A missing or unreadable
// entry means no accounts.
func (a *PasswordAuthenticator) accounts(ctx context.Context) ([]credential, error) {
	var accounts []credential
	err := a.storage.Load(ctx, storage.CredentialsKey, &accounts)
	switch {
	case err == nil:
		return accounts, nil
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrCorrupt):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}
}

// wait simulates the round trip of a remote sign-in.
func (a *PasswordAuthenticator) wait(ctx context.Context) error {
	if a.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(a.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
