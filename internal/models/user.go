package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents the single account using the tracker.
//
// A User is created at signup or login and is immutable afterwards. It is
// removed from memory and from storage on logout.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Email is the address the user signed in with.
	Email string `json:"email"`

	// Name is the display name. Defaults to the email local-part when the
	// user did not provide one.
	Name string `json:"name"`

	// CreatedAt is when the account was created.
	CreatedAt time.Time `json:"createdAt"`
}

// NewUser creates a user with a fresh ID.
func NewUser(email, name string, createdAt time.Time) *User {
	if name == "" {
		name = DefaultName(email)
	}
	return &User{
		ID:        NewID(),
		Email:     email,
		Name:      name,
		CreatedAt: createdAt,
	}
}

// DefaultName returns the local-part of an email address.
func DefaultName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// NewID returns a new unique record identifier.
func NewID() string {
	return uuid.New().String()
}
