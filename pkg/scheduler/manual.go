package scheduler

import (
	"sort"
	"sync"
	"time"

	"github.com/var1d/folio/pkg/ports"
)

// Manual is a deterministic scheduler driven by Advance.
// Callbacks run synchronously on the goroutine calling Advance, in due order
// (ties broken by scheduling order). Safe for concurrent use.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	pending map[uint64]*manualTimer
}

type manualTimer struct {
	id  uint64
	due time.Duration
	fn  func()
}

var _ ports.Scheduler = (*Manual)(nil)

// NewManual creates a virtual clock at t=0.
func NewManual() *Manual {
	return &Manual{pending: make(map[uint64]*manualTimer)}
}

// AfterFunc registers fn to run once the clock has advanced by d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	id := m.seq
	m.pending[id] = &manualTimer{id: id, due: m.now + d, fn: fn}

	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if _, ok := m.pending[id]; !ok {
			return false
		}
		delete(m.pending, id)
		return true
	}
}

// Advance moves the clock forward by d and fires every callback that falls
// due, including ones scheduled by callbacks during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDue(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		delete(m.pending, next.id)
		m.now = next.due
		m.mu.Unlock()

		next.fn()
	}
}

// Elapsed returns the virtual time since creation.
func (m *Manual) Elapsed() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of callbacks not yet fired or cancelled.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// nextDue must be called with m.mu held.
func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	var due []*manualTimer
	for _, t := range m.pending {
		if t.due <= limit {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].due != due[j].due {
			return due[i].due < due[j].due
		}
		return due[i].id < due[j].id
	})
	return due[0]
}
