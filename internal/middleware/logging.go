package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mmynk/myfintrack/internal/state"
)

// Logging returns a middleware that logs every dispatched action.
// It logs the action name, user ID, duration, and any error.
// A nil logger uses slog.Default().
func Logging(logger *slog.Logger) state.Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(s state.StateReader, next state.DispatchFunc) state.DispatchFunc {
		return func(ctx context.Context, a state.Action) error {
			start := time.Now()
			name := "nil"
			if a != nil {
				name = a.Name()
			}
			userID := s.State().UserID() // empty if pre-auth

			err := next(ctx, a)

			duration := time.Since(start).Milliseconds()
			switch {
			case err == nil:
				logger.Debug("Dispatch ok",
					"action", name,
					"user_id", userID,
					"duration_ms", duration,
				)
			case isRejection(err):
				logger.Warn("Dispatch rejected",
					"action", name,
					"user_id", userID,
					"error", err,
					"duration_ms", duration,
				)
			default:
				logger.Error("Dispatch failed",
					"action", name,
					"user_id", userID,
					"error", err,
					"duration_ms", duration,
				)
			}

			return err
		}
	}
}

// isRejection reports whether err is a refusal of the action rather than
// a failure of the store.
func isRejection(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrForeignRecord) ||
		errors.Is(err, state.ErrDuplicateID) ||
		errors.Is(err, state.ErrNilUser)
}
