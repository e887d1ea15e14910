package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/myfintrack/internal/models"
)

// Persister writes and reads the two persisted aggregates.
// storage.Adapter implements it.
type Persister interface {
	SaveUser(ctx context.Context, user *models.User) error
	SaveData(ctx context.Context, data models.FinancialData) error
	Clear(ctx context.Context) error
	LoadUser(ctx context.Context) (*models.User, bool)
	LoadData(ctx context.Context) (models.FinancialData, bool)
}

// StateReader exposes the current state to middlewares.
type StateReader interface {
	State() AppState
}

// DispatchFunc submits an action.
type DispatchFunc func(ctx context.Context, a Action) error

// Middleware wraps dispatch. It may inspect the state, rewrite or reject
// the action, or observe the result of next.
type Middleware func(s StateReader, next DispatchFunc) DispatchFunc

// Store owns the AppState.
type Store struct {
	mu        sync.Mutex
	state     AppState
	version   uint64
	persister Persister
	logger    *slog.Logger
	metrics   *Metrics

	dispatch DispatchFunc

	listenersMu sync.Mutex
	listeners   map[int]func(AppState)
	nextID      int
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithMetrics instruments the store.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithMiddleware wraps dispatch. The first middleware is the outermost.
func WithMiddleware(mw ...Middleware) Option {
	return func(s *Store) {
		for i := len(mw) - 1; i >= 0; i-- {
			s.dispatch = mw[i](s, s.dispatch)
		}
	}
}

// NewStore creates a store in the initial state. Call Hydrate to restore
// persisted aggregates.
func NewStore(persister Persister, opts ...Option) *Store {
	s := &Store{
		state:     InitialState(),
		persister: persister,
		logger:    slog.Default(),
		listeners: make(map[int]func(AppState)),
	}
	s.dispatch = s.commit
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the current state. The snapshot's sequences
// are copies; changing them does not affect the store.
func (s *Store) State() AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.state)
}

func snapshot(st AppState) AppState {
	out := st
	out.Data = st.Data.Clone()
	if st.User != nil {
		user := *st.User
		out.User = &user
	}
	return out
}

// Version increases by one on every committed dispatch. Presentation code
// can compare versions to detect changes.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Dispatch reduces a into a new state through the middleware chain.
// When the action touches a persisted aggregate, the aggregate is written
// before the new state is committed; a write failure is returned and the
// state is left unchanged.
func (s *Store) Dispatch(ctx context.Context, a Action) error {
	err := s.dispatch(ctx, a)
	s.metrics.observeDispatch(a, err)
	return err
}

// Subscribe registers fn to be called with the new state after every
// committed dispatch. The returned function unregisters it.
func (s *Store) Subscribe(fn func(AppState)) (unsubscribe func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		delete(s.listeners, id)
	}
}

// commit is the innermost DispatchFunc.
func (s *Store) commit(ctx context.Context, a Action) error {
	return s.apply(ctx, a, true)
}

func (s *Store) apply(ctx context.Context, a Action, persist bool) error {
	s.mu.Lock()

	next, effect, err := Reduce(s.state, a)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("failed to reduce %s: %w", actionName(a), err)
	}

	if persist {
		if err := s.persist(ctx, effect, next); err != nil {
			s.mu.Unlock()
			return err
		}
	}

	s.state = next
	s.version++
	s.metrics.observeState(next)
	s.mu.Unlock()

	s.notify(next)
	return nil
}

func (s *Store) persist(ctx context.Context, effect Effect, next AppState) error {
	if effect == EffectNone {
		return nil
	}

	start := time.Now()
	var err error
	switch effect {
	case EffectSaveUser:
		err = s.persister.SaveUser(ctx, next.User)
	case EffectSaveData:
		err = s.persister.SaveData(ctx, next.Data)
	case EffectClear:
		err = s.persister.Clear(ctx)
	}
	s.metrics.observePersist(effect, time.Since(start).Seconds())

	if err != nil {
		s.logger.Error("Persist failed", "effect", effect.String(), "error", err)
		return fmt.Errorf("failed to persist: %w", err)
	}
	return nil
}

func (s *Store) notify(next AppState) {
	s.listenersMu.Lock()
	fns := make([]func(AppState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range fns {
		fn(snapshot(next))
	}
}

// Hydrate restores the persisted user and financial data. Each aggregate
// is applied independently; an absent or unreadable one leaves its part of
// the state at the default. Hydration bypasses middlewares and does not
// write back what it read.
func (s *Store) Hydrate(ctx context.Context) {
	if user, ok := s.persister.LoadUser(ctx); ok {
		if err := s.apply(ctx, SetUser{User: user}, false); err != nil {
			s.logger.Warn("Ignoring persisted user", "error", err)
		} else {
			s.logger.Info("Restored user", "user_id", user.ID)
		}
	}

	if data, ok := s.persister.LoadData(ctx); ok {
		if err := s.apply(ctx, LoadData{Data: data}, false); err != nil {
			s.logger.Warn("Ignoring persisted financial data", "error", err)
		} else {
			s.logger.Info("Restored financial data", "records", data.Len())
		}
	}
}
