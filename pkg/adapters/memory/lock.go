package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
)

type lease struct {
	token   uint64
	expires time.Time
}

// Locker implements ports.DistributedLocker for a single process.
// Safe for concurrent use.
type Locker struct {
	mu     sync.Mutex
	leases map[string]lease
	seq    uint64
	now    func() time.Time
}

var _ ports.DistributedLocker = (*Locker)(nil)

// NewLocker creates an empty in-memory locker.
func NewLocker() *Locker {
	return &Locker{
		leases: make(map[string]lease),
		now:    time.Now,
	}
}

// TryLock takes the lock for key unless a live lease exists.
func (l *Locker) TryLock(_ context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if held, ok := l.leases[key]; ok && now.Before(held.expires) {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}

	l.seq++
	token := l.seq
	l.leases[key] = lease{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if held, ok := l.leases[key]; ok && held.token == token {
			delete(l.leases, key)
		}
		return nil
	}, nil
}
