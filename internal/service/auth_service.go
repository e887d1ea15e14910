// Package service holds the application services presentation layers call.
// Services validate input, talk to collaborators and dispatch actions to
// the state store; they never mutate state directly.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/myfintrack/internal/auth"
	"github.com/mmynk/myfintrack/internal/models"
	"github.com/mmynk/myfintrack/internal/state"
)

// Dispatcher is the part of state.Store the services use.
type Dispatcher interface {
	Dispatch(ctx context.Context, a state.Action) error
	State() state.AppState
}

// AuthService signs users in and out of the local store.
type AuthService struct {
	authenticator auth.Authenticator
	store         Dispatcher
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, store Dispatcher, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		store:         store,
		logger:        logger,
	}
}

// SignUp creates an account and authenticates it.
func (s *AuthService) SignUp(ctx context.Context, email, name, password string) (*models.User, error) {
	s.logger.Info("Sign up request", "email", email)

	user, err := s.run(ctx, func() (*models.User, error) {
		return s.authenticator.Register(ctx, email, name, password)
	})
	if err != nil {
		s.logger.Warn("Sign up failed", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Login authenticates an existing account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	s.logger.Info("Login request", "email", email)

	user, err := s.run(ctx, func() (*models.User, error) {
		return s.authenticator.Authenticate(ctx, email, password)
	})
	if err != nil {
		s.logger.Warn("Login failed", "email", email, "error", err)
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Logout resets the state and clears the persisted user and data.
func (s *AuthService) Logout(ctx context.Context) error {
	userID := s.store.State().UserID()
	if err := s.store.Dispatch(ctx, state.Logout{}); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	s.logger.Info("User logged out", "user_id", userID)
	return nil
}

// CurrentUser returns the authenticated user, if any.
func (s *AuthService) CurrentUser() (*models.User, bool) {
	st := s.store.State()
	if !st.IsAuthenticated || st.User == nil {
		return nil, false
	}
	return st.User, true
}

// run brackets op with the loading flag. A failure is recorded as the
// state's error message; a success dispatches SET_USER, after LOGOUT when
// a different user was signed in.
func (s *AuthService) run(ctx context.Context, op func() (*models.User, error)) (*models.User, error) {
	if err := s.store.Dispatch(ctx, state.SetLoading{Loading: true}); err != nil {
		return nil, err
	}

	user, err := op()
	if err != nil {
		s.fail(ctx, err)
		return nil, err
	}

	// Signing in as someone else ends the previous session first, so the
	// new user never sees the previous user's records.
	if current := s.store.State().User; current != nil && current.ID != user.ID {
		if err := s.store.Dispatch(ctx, state.Logout{}); err != nil {
			s.fail(ctx, err)
			return nil, fmt.Errorf("failed to end previous session: %w", err)
		}
		s.logger.Info("Previous session ended", "previous_user_id", current.ID, "user_id", user.ID)
	}

	if err := s.store.Dispatch(ctx, state.SetUser{User: user}); err != nil {
		s.fail(ctx, err)
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if err := s.store.Dispatch(ctx, state.SetLoading{Loading: false}); err != nil {
		return nil, err
	}
	return user, nil
}

// fail records err as the state's error message. The caller's context may
// be done, so the dispatch does not inherit its cancellation.
func (s *AuthService) fail(ctx context.Context, err error) {
	if dispatchErr := s.store.Dispatch(context.WithoutCancel(ctx), state.SetError{Message: err.Error()}); dispatchErr != nil {
		s.logger.Error("Failed to record auth error", "error", dispatchErr)
	}
}
