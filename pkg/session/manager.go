package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/contact"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
)

// Manager is the registry of live contact sessions.
// Each entry owns one contact.Session (and through it one notification
// queue); removing the entry tears both down. Safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*contact.Session
	closed   bool

	sessionOpts []contact.Option
	logger      *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithSessionOptions appends options applied to every opened session.
func WithSessionOptions(opts ...contact.Option) Option {
	return func(m *Manager) {
		m.sessionOpts = append(m.sessionOpts, opts...)
	}
}

// WithLocker enables the cross-replica submission guard for every session.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		if locker != nil {
			m.sessionOpts = append(m.sessionOpts, contact.WithLocker(locker))
		}
	}
}

// WithLogger configures a logger for the Manager and its sessions.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates an empty registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*contact.Session),
		logger:   logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open returns the session for id, creating it when absent.
// An empty id gets a fresh UUID.
func (m *Manager) Open(id string) (*contact.Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, domain.ErrSessionClosed
	}
	if sess, ok := m.sessions[id]; ok {
		return sess, nil
	}

	opts := append([]contact.Option{contact.WithLogger(m.logger)}, m.sessionOpts...)
	opts = append(opts, contact.WithSessionID(id))
	sess := contact.New(opts...)
	m.sessions[id] = sess

	m.logger.Info("Session opened", "session_id", id)
	return sess, nil
}

// Get returns a live session or domain.ErrSessionNotFound.
func (m *Manager) Get(id string) (*contact.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return sess, nil
}

// Close tears a session down and forgets it.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	sess.Close()
	m.logger.Info("Session closed", "session_id", id)
	return nil
}

// List returns the ids of live sessions, sorted.
func (m *Manager) List() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Shutdown closes every session and waits for abandoned deliveries to
// return, or for ctx to end. Open fails afterwards.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*contact.Session)
	m.mu.Unlock()

	for _, sess := range sessions {
		sess.Close()
	}

	done := make(chan struct{})
	go func() {
		for _, sess := range sessions {
			sess.Wait()
		}
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("Sessions drained", "count", len(sessions))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for in-flight deliveries: %w", ctx.Err())
	}
}
