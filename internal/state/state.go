// Package state holds the application state of the tracker and the only
// code allowed to change it.
//
// Presentation code submits Actions to Store.Dispatch. The store reduces
// each action into a new AppState, persists the aggregate the action
// touched, and only then commits the new state and notifies subscribers.
// Dispatches are serialized; a failed write leaves the previous state in
// place.
package state

import "github.com/mmynk/myfintrack/internal/models"

// AppState is the complete application state.
//
// IsAuthenticated is true exactly when User is non-nil. Data is always a
// normalized aggregate, empty before login.
type AppState struct {
	User            *models.User
	IsAuthenticated bool
	Data            models.FinancialData
	Loading         bool

	// Error is the last reported error message, empty when there is none.
	Error string
}

// InitialState returns the empty, unauthenticated state.
func InitialState() AppState {
	return AppState{Data: models.NewFinancialData()}
}

// UserID returns the authenticated user's ID, or "" before login.
func (s AppState) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
