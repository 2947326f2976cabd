package simulated

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/var1d/folio/internal/logging"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
)

// DefaultDelay is the pretend network latency.
const DefaultDelay = 1500 * time.Millisecond

// Sender pretends to deliver a contact form. It waits for the configured
// delay and then succeeds, or fails with the configured reason.
type Sender struct {
	delay  time.Duration
	fail   error
	logger *slog.Logger
}

var _ ports.Sender = (*Sender)(nil)

// Option configures the Sender.
type Option func(*Sender)

// WithDelay overrides the latency. Zero means respond immediately.
func WithDelay(d time.Duration) Option {
	return func(s *Sender) {
		if d >= 0 {
			s.delay = d
		}
	}
}

// WithFailure makes every delivery fail with reason.
func WithFailure(reason string) Option {
	return func(s *Sender) {
		if reason != "" {
			s.fail = errors.New(reason)
		}
	}
}

// WithLogger configures a logger for the Sender.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Sender) {
		s.logger = logger
	}
}

// New creates a Sender that succeeds after DefaultDelay.
func New(opts ...Option) *Sender {
	s := &Sender{
		delay:  DefaultDelay,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send waits for the delay or until ctx is done.
func (s *Sender) Send(ctx context.Context, fields domain.FormFields) error {
	s.logger.Debug("Simulating delivery", "email", fields.Email, "delay", s.delay)

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := ctx.Err(); err != nil {
		return err
	}

	return s.fail
}
