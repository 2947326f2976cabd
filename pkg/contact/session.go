package contact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/notify"
	"github.com/var1d/folio/pkg/ports"
	"github.com/var1d/folio/pkg/scheduler"
)

const (
	// DefaultResetDelay is how long Success or Error is shown before Idle.
	DefaultResetDelay = 3000 * time.Millisecond

	// DefaultSendTimeout bounds a single delivery attempt.
	DefaultSendTimeout = 10 * time.Second

	// MsgDelivered is the notification text for a successful delivery.
	MsgDelivered = "message sent successfully! 🚀"

	// MsgUnavailable prefixes the notification queued when the submission
	// lock cannot be checked.
	MsgUnavailable = "could not start sending, please retry"

	lockGrace = 5 * time.Second
)

// SubmitResult tells the caller what Submit did.
type SubmitResult int

const (
	// SubmitAccepted means delivery started and the status is Sending.
	SubmitAccepted SubmitResult = iota
	// SubmitIgnored means a submission was already in progress or just
	// succeeded, or the session is closed. Nothing happened.
	SubmitIgnored
	// SubmitInvalid means a required field was blank. An error
	// notification was queued and the status is unchanged.
	SubmitInvalid
	// SubmitUnavailable means the submission lock could not be checked. An
	// error notification was queued and the status is unchanged.
	SubmitUnavailable
)

func (r SubmitResult) String() string {
	switch r {
	case SubmitAccepted:
		return "accepted"
	case SubmitIgnored:
		return "ignored"
	case SubmitInvalid:
		return "invalid"
	case SubmitUnavailable:
		return "unavailable"
	}
	return fmt.Sprintf("SubmitResult(%d)", int(r))
}

// Observer receives the session read model after every change.
type Observer func(domain.SessionSnapshot)

type subscription struct {
	id int
	fn Observer
}

// Session is one contact form with its submission state machine.
// Safe for concurrent use.
type Session struct {
	// emitMu serialises observer delivery. Observers must not mutate the
	// Session.
	emitMu sync.Mutex

	mu          sync.Mutex
	status      domain.SubmissionStatus
	fields      domain.FormFields
	closed      bool
	attempt     uint64
	cancelSend  context.CancelFunc
	cancelReset ports.CancelFunc
	observers   []subscription
	nextSub     int

	inflight sync.WaitGroup

	id          string
	queue       *notify.Queue
	unsubQueue  func()
	notifyOpts  []notify.Option
	sender      ports.Sender
	sched       ports.Scheduler
	locker      ports.DistributedLocker
	resetDelay  time.Duration
	sendTimeout time.Duration
	hooks       domain.LifecycleHooks
	logger      *slog.Logger
}

// Option configures the Session.
type Option func(*Session)

// WithSessionID sets the id (default: a random UUID).
func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithSender sets the delivery port. Without one, every delivery succeeds
// immediately.
func WithSender(sender ports.Sender) Option {
	return func(s *Session) {
		s.sender = sender
	}
}

// WithScheduler overrides the timer source for the session and its queue.
func WithScheduler(sched ports.Scheduler) Option {
	return func(s *Session) {
		s.sched = sched
	}
}

// WithResetDelay overrides how long Success or Error lasts before Idle.
func WithResetDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.resetDelay = d
		}
	}
}

// WithSendTimeout bounds each delivery attempt.
func WithSendTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.sendTimeout = d
		}
	}
}

// WithNotificationTTL overrides the notification lifetime of the owned queue.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Session) {
		s.notifyOpts = append(s.notifyOpts, notify.WithTTL(ttl))
	}
}

// WithLocker guards submissions across replicas. A submission whose lock is
// held elsewhere is ignored.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Session) {
		s.locker = locker
	}
}

// WithLogger configures a logger for the Session and its queue.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks for the Session and its
// queue.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Session) {
		s.hooks = hooks
	}
}

// New creates an Idle session with empty fields.
func New(opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		status:      domain.StatusIdle,
		sched:       scheduler.New(),
		resetDelay:  DefaultResetDelay,
		sendTimeout: DefaultSendTimeout,
		logger:      logging.NewNop(),
		sender: ports.SenderFunc(func(context.Context, domain.FormFields) error {
			return nil
		}),
	}
	for _, opt := range opts {
		opt(s)
	}

	queueOpts := append([]notify.Option{
		notify.WithScheduler(s.sched),
		notify.WithSessionID(s.id),
		notify.WithLogger(s.logger),
		notify.WithLifecycleHooks(s.hooks),
	}, s.notifyOpts...)
	s.queue = notify.New(queueOpts...)
	s.unsubQueue = s.queue.Subscribe(func([]domain.Notification) { s.emit() })
	return s
}

// ID returns the session id.
func (s *Session) ID() string {
	return s.id
}

// Queue exposes the notification queue owned by the session.
func (s *Session) Queue() *notify.Queue {
	return s.queue
}

// Status returns the current submission status.
func (s *Session) Status() domain.SubmissionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Fields returns the current form values.
func (s *Session) Fields() domain.FormFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// Snapshot returns the read model.
func (s *Session) Snapshot() domain.SessionSnapshot {
	s.mu.Lock()
	snap := domain.SessionSnapshot{
		SessionID: s.id,
		Status:    s.status,
		Fields:    s.fields,
	}
	s.mu.Unlock()
	snap.Notifications = s.queue.List()
	return snap
}

// UpdateField overwrites one field. Allowed in every status; the status is
// never changed.
func (s *Session) UpdateField(field domain.Field, value string) error {
	field, err := domain.ParseField(string(field))
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	s.fields = s.fields.With(field, value)
	s.mu.Unlock()

	s.emit()
	return nil
}

// SetFields overwrites every field at once.
func (s *Session) SetFields(fields domain.FormFields) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	s.fields = fields
	s.mu.Unlock()

	s.emit()
	return nil
}

// UpdateFields overwrites several fields in one step. Every name is checked
// first, so an unknown field leaves the form untouched.
func (s *Session) UpdateFields(values map[domain.Field]string) error {
	parsed := make(map[domain.Field]string, len(values))
	for field, value := range values {
		f, err := domain.ParseField(string(field))
		if err != nil {
			return err
		}
		parsed[f] = value
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return domain.ErrSessionClosed
	}
	for field, value := range parsed {
		s.fields = s.fields.With(field, value)
	}
	s.mu.Unlock()

	s.emit()
	return nil
}

// Submit starts a delivery attempt. It never blocks on the Sender.
func (s *Session) Submit(ctx context.Context) SubmitResult {
	s.mu.Lock()
	if s.closed || !s.status.AcceptsSubmit() {
		status := s.status
		s.mu.Unlock()
		s.logger.Debug("Submit ignored", "session_id", s.id, "status", status)
		return SubmitIgnored
	}
	fields := s.fields
	s.mu.Unlock()

	if missing := fields.Missing(); len(missing) > 0 {
		return s.reject(missing)
	}

	unlock, err := s.tryLock(ctx)
	if errors.Is(err, domain.ErrLockHeld) {
		return SubmitIgnored
	}
	if err != nil {
		s.logger.Warn("Failed to acquire submission lock", "session_id", s.id, "err", err)
		s.queue.Add(fmt.Sprintf("%s: %v", MsgUnavailable, err), domain.SeverityError)
		return SubmitUnavailable
	}

	s.mu.Lock()
	if s.closed || !s.status.AcceptsSubmit() {
		s.mu.Unlock()
		s.releaseLock(unlock)
		return SubmitIgnored
	}
	// Fields may have changed while the lock was being taken.
	payload := s.fields.Trimmed()
	if missing := payload.Missing(); len(missing) > 0 {
		s.mu.Unlock()
		s.releaseLock(unlock)
		return s.reject(missing)
	}
	from := s.status
	if _, err := domain.Transition(from, domain.StatusSending); err != nil {
		s.mu.Unlock()
		s.releaseLock(unlock)
		s.logger.Error("Unexpected transition", "session_id", s.id, "err", err)
		return SubmitIgnored
	}
	s.status = domain.StatusSending
	s.stopResetLocked()
	s.attempt++
	attempt := s.attempt
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.sendTimeout)
	s.cancelSend = cancel
	s.inflight.Add(1)
	s.mu.Unlock()

	s.transitioned(from, domain.StatusSending)
	s.emit()

	go s.deliver(sendCtx, cancel, attempt, payload, unlock)
	return SubmitAccepted
}

func (s *Session) reject(missing []domain.Field) SubmitResult {
	verr := &domain.ValidationError{Missing: missing}
	s.logger.Debug("Submit rejected", "session_id", s.id, "err", verr)
	s.queue.Add(verr.Error(), domain.SeverityError)
	return SubmitInvalid
}

func (s *Session) tryLock(ctx context.Context) (ports.UnlockFunc, error) {
	if s.locker == nil {
		return nil, nil
	}
	return s.locker.TryLock(ctx, "contact:"+s.id, s.sendTimeout+lockGrace)
}

func (s *Session) releaseLock(unlock ports.UnlockFunc) {
	if unlock == nil {
		return
	}
	if err := unlock(context.Background()); err != nil {
		s.logger.Warn("Failed to release submission lock (will expire via TTL)",
			"session_id", s.id,
			"err", err,
		)
	}
}

func (s *Session) deliver(ctx context.Context, cancel context.CancelFunc, attempt uint64, fields domain.FormFields, unlock ports.UnlockFunc) {
	defer s.inflight.Done()
	defer s.releaseLock(unlock)
	defer cancel()

	start := time.Now()
	err := s.sender.Send(ctx, fields)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		err = fmt.Errorf("timed out after %s: %w", s.sendTimeout, err)
	}
	if err != nil {
		err = &domain.DeliveryError{Reason: err}
	}

	if s.hooks.OnDelivery != nil {
		s.hooks.OnDelivery(context.Background(), &domain.DeliveryEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventDelivery, SessionID: s.id},
			Duration:  time.Since(start),
			Err:       err,
		})
	}
	s.resolve(attempt, err)
}

func (s *Session) resolve(attempt uint64, err error) {
	to := domain.StatusSuccess
	if err != nil {
		to = domain.StatusError
	}

	s.mu.Lock()
	if s.closed || attempt != s.attempt || s.status != domain.StatusSending {
		s.mu.Unlock()
		s.logger.Debug("Discarding stale delivery result", "session_id", s.id, "attempt", attempt)
		return
	}
	s.status = to
	s.cancelSend = nil
	if to == domain.StatusSuccess {
		s.fields = domain.FormFields{}
	}
	s.cancelReset = s.sched.AfterFunc(s.resetDelay, func() { s.reset(attempt) })
	s.mu.Unlock()

	s.transitioned(domain.StatusSending, to)
	if err != nil {
		s.logger.Info("Delivery failed", "session_id", s.id, "err", err)
		s.queue.Add(err.Error(), domain.SeverityError)
	} else {
		s.logger.Info("Delivery succeeded", "session_id", s.id)
		s.queue.Add(MsgDelivered, domain.SeveritySuccess)
	}
	s.emit()
}

func (s *Session) reset(attempt uint64) {
	s.mu.Lock()
	if s.closed || attempt != s.attempt {
		s.mu.Unlock()
		return
	}
	from := s.status
	if _, err := domain.Transition(from, domain.StatusIdle); err != nil || from == domain.StatusSending {
		s.mu.Unlock()
		return
	}
	s.status = domain.StatusIdle
	s.cancelReset = nil
	s.mu.Unlock()

	s.transitioned(from, domain.StatusIdle)
	s.emit()
}

// stopResetLocked must be called with s.mu held.
func (s *Session) stopResetLocked() {
	if s.cancelReset != nil {
		s.cancelReset()
		s.cancelReset = nil
	}
}

// Subscribe registers an observer called synchronously after every change to
// the status, the fields or the notification list.
func (s *Session) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
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

// Wait blocks until every in-flight delivery has returned.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close tears the session down: the in-flight delivery is abandoned, the
// reset timer and every notification expiry are cancelled and observers are
// dropped. Safe to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	from := s.status
	if s.cancelSend != nil {
		s.cancelSend()
		s.cancelSend = nil
		s.status = domain.StatusIdle
	}
	s.stopResetLocked()
	s.observers = nil
	s.mu.Unlock()

	if from == domain.StatusSending {
		s.transitioned(from, domain.StatusIdle)
	}
	s.unsubQueue()
	s.queue.Close()
	s.logger.Debug("Session closed", "session_id", s.id)
}

func (s *Session) transitioned(from, to domain.SubmissionStatus) {
	s.logger.Debug("Status changed", "session_id", s.id, "from", from, "to", to)
	if s.hooks.OnTransition != nil {
		s.hooks.OnTransition(context.Background(), &domain.TransitionEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventTransition, SessionID: s.id},
			From:      from,
			To:        to,
		})
	}
}

func (s *Session) emit() {
	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()
	if len(observers) == 0 {
		return
	}

	snap := s.Snapshot()
	for _, o := range observers {
		o.fn(snap)
	}
}
