package notify_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/notify"
	"github.com/var1d/folio/pkg/scheduler"
)

func messages(list []domain.Notification) []string {
	out := make([]string, len(list))
	for i, n := range list {
		out[i] = n.Message
	}
	return out
}

func TestQueue_InsertionOrderAndIDs(t *testing.T) {
	q := notify.New(notify.WithScheduler(scheduler.NewManual()))

	a := q.Add("first", domain.SeverityInfo)
	b := q.Add("second", domain.SeverityError)
	c := q.Add("third", "")

	assert.Less(t, a, b)
	assert.Less(t, b, c)

	list := q.List()
	assert.Equal(t, []string{"first", "second", "third"}, messages(list))
	assert.Equal(t, domain.SeverityInfo, list[2].Severity, "empty severity defaults to info")
}

func TestQueue_ExpiresAfterTTL(t *testing.T) {
	clock := scheduler.NewManual()
	q := notify.New(notify.WithScheduler(clock))

	q.Add("hello", domain.SeverityInfo)

	clock.Advance(notify.DefaultTTL - time.Millisecond)
	assert.Equal(t, 1, q.Len())

	clock.Advance(time.Millisecond)
	assert.Empty(t, q.List())
	assert.Equal(t, 0, clock.Pending())
}

func TestQueue_ManualRemoveBeatsExpiry(t *testing.T) {
	clock := scheduler.NewManual()
	q := notify.New(notify.WithScheduler(clock))

	id := q.Add("bye", domain.SeverityInfo)
	q.Add("stay", domain.SeverityInfo)

	assert.True(t, q.Remove(id))
	assert.False(t, q.Remove(id), "second removal is a no-op")
	assert.Equal(t, 1, clock.Pending(), "manual removal cancels its expiry")

	clock.Advance(time.Second)
	assert.Equal(t, []string{"stay"}, messages(q.List()))
}

func TestQueue_RemoveUnknownIsNoop(t *testing.T) {
	q := notify.New(notify.WithScheduler(scheduler.NewManual()))
	q.Add("x", domain.SeverityInfo)

	assert.False(t, q.Remove(999))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_StaggeredExpiry(t *testing.T) {
	clock := scheduler.NewManual()
	q := notify.New(notify.WithScheduler(clock), notify.WithTTL(100*time.Millisecond))

	q.Add("a", domain.SeverityInfo)
	clock.Advance(50 * time.Millisecond)
	q.Add("b", domain.SeverityInfo)

	clock.Advance(50 * time.Millisecond)
	assert.Equal(t, []string{"b"}, messages(q.List()))

	clock.Advance(50 * time.Millisecond)
	assert.Empty(t, q.List())
}

func TestQueue_ObserversSeeEveryChange(t *testing.T) {
	clock := scheduler.NewManual()
	q := notify.New(notify.WithScheduler(clock))

	var lengths []int
	unsubscribe := q.Subscribe(func(list []domain.Notification) { lengths = append(lengths, len(list)) })

	id := q.Add("a", domain.SeverityInfo)
	q.Add("b", domain.SeverityInfo)
	q.Remove(id)
	clock.Advance(notify.DefaultTTL)

	assert.Equal(t, []int{1, 2, 1, 0}, lengths)

	unsubscribe()
	q.Add("c", domain.SeverityInfo)
	assert.Len(t, lengths, 4)
}

func TestQueue_CloseCancelsTimers(t *testing.T) {
	clock := scheduler.NewManual()
	q := notify.New(notify.WithScheduler(clock))

	q.Add("a", domain.SeverityInfo)
	q.Add("b", domain.SeverityInfo)
	require.Equal(t, 2, clock.Pending())

	q.Close()
	assert.Equal(t, 0, clock.Pending())
	assert.Zero(t, q.Add("late", domain.SeverityInfo))
	assert.Len(t, q.List(), 2, "closed queue stays readable")

	q.Close()
}

func TestQueue_LifecycleHooks(t *testing.T) {
	clock := scheduler.NewManual()
	var added, removed []*domain.NotificationEvent
	q := notify.New(
		notify.WithScheduler(clock),
		notify.WithSessionID("s1"),
		notify.WithLifecycleHooks(domain.LifecycleHooks{
			OnNotificationAdd:    func(_ context.Context, e *domain.NotificationEvent) { added = append(added, e) },
			OnNotificationRemove: func(_ context.Context, e *domain.NotificationEvent) { removed = append(removed, e) },
		}),
	)

	id := q.Add("manual", domain.SeverityInfo)
	q.Add("expiring", domain.SeverityInfo)
	q.Remove(id)
	clock.Advance(notify.DefaultTTL)

	require.Len(t, added, 2)
	require.Len(t, removed, 2)
	assert.Equal(t, "s1", added[0].SessionID)
	assert.Equal(t, domain.RemovedManually, removed[0].Cause)
	assert.Equal(t, domain.RemovedExpired, removed[1].Cause)
	assert.Equal(t, "expiring", removed[1].Notification.Message)
}

func TestQueue_ConcurrentAddsGetUniqueIDs(t *testing.T) {
	q := notify.New(notify.WithScheduler(scheduler.NewManual()))

	const n = 200
	ids := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- q.Add("burst", domain.SeverityInfo)
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uint64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)

	list := q.List()
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].ID, list[i].ID, "list order follows id order")
	}
}
