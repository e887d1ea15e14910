package auth

import (
	"context"

	"github.com/mmynk/myfintrack/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping the local simulated login for a real
// identity provider without changing the service layer code.
type Authenticator interface {
	// Register creates a new account with the given email and credential.
	// Returns the created user or an error if registration fails.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
