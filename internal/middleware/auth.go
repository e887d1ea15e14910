// Package middleware provides dispatch middlewares for state.Store.
package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/myfintrack/internal/state"
)

var (
	// ErrNotAuthenticated is returned for record actions dispatched before login.
	ErrNotAuthenticated = errors.New("login required")

	// ErrForeignRecord is returned when a record belongs to another user.
	ErrForeignRecord = errors.New("record belongs to another user")
)

// RequireAuth returns a middleware that rejects record mutations and
// LOAD_DATA while no user is authenticated. Session actions (SET_USER,
// LOGOUT, SET_LOADING, SET_ERROR) always pass.
func RequireAuth() state.Middleware {
	return func(s state.StateReader, next state.DispatchFunc) state.DispatchFunc {
		return func(ctx context.Context, a state.Action) error {
			switch a.(type) {
			case state.Mutation, state.LoadData:
				if !s.State().IsAuthenticated {
					return fmt.Errorf("%w: %s", ErrNotAuthenticated, a.Name())
				}
			}
			return next(ctx, a)
		}
	}
}

// EnforceOwnership returns a middleware that ties added and updated
// records to the authenticated user. A record without a UserID is stamped
// with the current user's ID; a record owned by someone else is rejected.
// Before login records pass unchanged.
func EnforceOwnership() state.Middleware {
	return func(s state.StateReader, next state.DispatchFunc) state.DispatchFunc {
		return func(ctx context.Context, a state.Action) error {
			rec, ok := a.(state.RecordAction)
			if !ok {
				return next(ctx, a)
			}

			current := s.State().UserID()
			if current == "" {
				return next(ctx, a)
			}

			owner := rec.OwnerID()
			if owner == "" {
				return next(ctx, rec.WithOwner(current))
			}
			if owner != current {
				return fmt.Errorf("%w: %s owned by %q", ErrForeignRecord, a.Name(), owner)
			}
			return next(ctx, a)
		}
	}
}
