package simulated_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/var1d/folio/pkg/adapters/simulated"
	"github.com/var1d/folio/pkg/domain"
)

var form = domain.FormFields{Name: "Ada", Email: "ada@example.com", Message: "hi"}

func TestSender_Succeeds(t *testing.T) {
	s := simulated.New(simulated.WithDelay(5 * time.Millisecond))

	start := time.Now()
	assert.NoError(t, s.Send(context.Background(), form))
	assert.GreaterOrEqual(t, time.Since(start), 5*time.Millisecond)
}

func TestSender_Failure(t *testing.T) {
	s := simulated.New(simulated.WithDelay(0), simulated.WithFailure("mailbox full"))
	assert.EqualError(t, s.Send(context.Background(), form), "mailbox full")
}

func TestSender_HonoursContext(t *testing.T) {
	s := simulated.New()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.Send(ctx, form)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), simulated.DefaultDelay)
}

func TestSender_CancelledBeforeStart(t *testing.T) {
	s := simulated.New(simulated.WithDelay(0))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, form), context.Canceled)
}
