package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
	"github.com/var1d/folio/pkg/scheduler"
)

// DefaultTTL is how long a notification stays listed.
const DefaultTTL = 4000 * time.Millisecond

// Observer receives the full list after every change.
type Observer func([]domain.Notification)

type subscription struct {
	id int
	fn Observer
}

// Queue is an ordered, self-expiring list of notifications.
// Safe for concurrent use.
type Queue struct {
	// emitMu serialises observer delivery so observers see lists in the order
	// the mutations were applied. Observers must not mutate the Queue.
	emitMu sync.Mutex

	mu        sync.Mutex
	items     []domain.Notification
	timers    map[uint64]ports.CancelFunc
	nextID    uint64
	closed    bool
	observers []subscription
	nextSub   int

	sched     ports.Scheduler
	ttl       time.Duration
	sessionID string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option configures the Queue.
type Option func(*Queue)

// WithScheduler overrides the timer source (default: runtime timers).
func WithScheduler(s ports.Scheduler) Option {
	return func(q *Queue) {
		q.sched = s
	}
}

// WithTTL overrides the automatic removal delay.
func WithTTL(ttl time.Duration) Option {
	return func(q *Queue) {
		if ttl > 0 {
			q.ttl = ttl
		}
	}
}

// WithSessionID tags emitted events with the owning session.
func WithSessionID(id string) Option {
	return func(q *Queue) {
		q.sessionID = id
	}
}

// WithLogger configures a logger for the Queue.
func WithLogger(logger *slog.Logger) Option {
	return func(q *Queue) {
		q.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(q *Queue) {
		q.hooks = hooks
	}
}

// New creates an empty Queue.
func New(opts ...Option) *Queue {
	q := &Queue{
		timers: make(map[uint64]ports.CancelFunc),
		sched:  scheduler.New(),
		ttl:    DefaultTTL,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Add appends a notification and schedules its removal. It returns the new
// id, or 0 if the queue is closed. An empty severity means Info.
func (q *Queue) Add(message string, severity domain.Severity) uint64 {
	if severity == "" {
		severity = domain.SeverityInfo
	}

	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return 0
	}
	q.nextID++
	n := domain.Notification{
		ID:        q.nextID,
		Message:   message,
		Severity:  severity,
		CreatedAt: time.Now(),
	}
	q.items = append(q.items, n)
	id := n.ID
	q.timers[id] = q.sched.AfterFunc(q.ttl, func() { q.remove(id, domain.RemovedExpired) })
	q.mu.Unlock()

	q.logger.Debug("Notification added", "session_id", q.sessionID, "id", id, "severity", severity)
	q.emit()
	if q.hooks.OnNotificationAdd != nil {
		q.hooks.OnNotificationAdd(context.Background(), q.event(domain.EventNotificationAdd, n, ""))
	}
	return id
}

// Remove deletes a notification by id and cancels its expiry.
// It reports whether anything was removed; an unknown id is a no-op.
func (q *Queue) Remove(id uint64) bool {
	return q.remove(id, domain.RemovedManually)
}

func (q *Queue) remove(id uint64, cause domain.RemovalCause) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	idx := -1
	for i, n := range q.items {
		if n.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		q.mu.Unlock()
		return false
	}
	n := q.items[idx]
	q.items = append(q.items[:idx], q.items[idx+1:]...)
	if cancel, ok := q.timers[id]; ok {
		delete(q.timers, id)
		if cause == domain.RemovedManually {
			cancel()
		}
	}
	q.mu.Unlock()

	q.logger.Debug("Notification removed", "session_id", q.sessionID, "id", id, "cause", cause)
	q.emit()
	if q.hooks.OnNotificationRemove != nil {
		q.hooks.OnNotificationRemove(context.Background(), q.event(domain.EventNotificationRemove, n, cause))
	}
	return true
}

// List returns a copy of the current notifications in insertion order.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.listLocked()
}

func (q *Queue) listLocked() []domain.Notification {
	out := make([]domain.Notification, len(q.items))
	copy(out, q.items)
	return out
}

// Len returns the number of listed notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Subscribe registers an observer called synchronously after every Add or
// removal, before the mutating call returns.
func (q *Queue) Subscribe(fn Observer) (unsubscribe func()) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.nextSub++
	id := q.nextSub
	q.observers = append(q.observers, subscription{id: id, fn: fn})

	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		for i, o := range q.observers {
			if o.id == id {
				q.observers = append(q.observers[:i], q.observers[i+1:]...)
				return
			}
		}
	}
}

// Close cancels every pending expiry and drops observers. Listed
// notifications stay readable; further Add and Remove calls are no-ops.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	for id, cancel := range q.timers {
		cancel()
		delete(q.timers, id)
	}
	q.observers = nil
}

func (q *Queue) emit() {
	q.emitMu.Lock()
	defer q.emitMu.Unlock()

	q.mu.Lock()
	observers := make([]subscription, len(q.observers))
	copy(observers, q.observers)
	list := q.listLocked()
	q.mu.Unlock()

	for _, o := range observers {
		o.fn(list)
	}
}

func (q *Queue) event(t domain.EventType, n domain.Notification, cause domain.RemovalCause) *domain.NotificationEvent {
	return &domain.NotificationEvent{
		EventBase:    domain.EventBase{Timestamp: time.Now(), Type: t, SessionID: q.sessionID},
		Notification: n,
		Cause:        cause,
	}
}
