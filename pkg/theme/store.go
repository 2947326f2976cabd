package theme

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/domain"
)

// Observer is notified synchronously of every mode write.
type Observer func(domain.ThemeMode)

type subscription struct {
	id int
	fn Observer
}

// Store holds the process-wide display mode.
// It is constructed explicitly and injected where needed; any caller may read
// or write it. Safe for concurrent use.
type Store struct {
	// writeMu serialises writers so observers see writes in the order they
	// were applied. Observers must not call Set or Toggle.
	writeMu sync.Mutex

	mu        sync.RWMutex
	mode      domain.ThemeMode
	observers []subscription
	nextID    int

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures the Store.
type Option func(*Store)

// WithInitialMode overrides the starting mode (default: dark).
func WithInitialMode(mode domain.ThemeMode) Option {
	return func(s *Store) {
		if mode.Valid() {
			s.mode = mode
		}
	}
}

// WithLogger configures a logger for the Store.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Store) {
		s.hooks = hooks
	}
}

// NewStore creates a Store in dark mode.
func NewStore(opts ...Option) *Store {
	s := &Store{
		mode:   domain.ThemeDark,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the current mode. No side effects.
func (s *Store) Get() domain.ThemeMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set overwrites the mode and notifies every observer before returning.
// Values outside the declared modes are ignored.
func (s *Store) Set(mode domain.ThemeMode) {
	if !mode.Valid() {
		s.logger.Warn("Ignoring invalid theme mode", "mode", uint8(mode))
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.apply(func(domain.ThemeMode) domain.ThemeMode { return mode })
}

// Toggle flips dark <-> neon and returns the new mode.
func (s *Store) Toggle() domain.ThemeMode {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.apply(domain.ThemeMode.Other)
}

// apply must be called with writeMu held.
func (s *Store) apply(next func(domain.ThemeMode) domain.ThemeMode) domain.ThemeMode {
	s.mu.Lock()
	from := s.mode
	s.mode = next(from)
	to := s.mode
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	s.logger.Debug("Theme changed", "from", from, "to", to)
	for _, o := range observers {
		o.fn(to)
	}

	if s.hooks.OnThemeChange != nil {
		s.hooks.OnThemeChange(context.Background(), &domain.ThemeEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventThemeChange},
			From:      from,
			To:        to,
		})
	}
	return to
}

// Subscribe registers an observer and returns a function that removes it.
// The observer is not called with the current value; call Get for that.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

// Close drops every observer. The mode remains readable and writable.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = nil
}
