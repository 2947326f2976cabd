package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
	"github.com/var1d/folio/pkg/domain"
	"github.com/var1d/folio/pkg/ports"
)

// DefaultPrefix namespaces every lock key.
const DefaultPrefix = "folio:"

// releaseScript deletes the key only if it still holds our token.
var releaseScript = backend.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client backend.UniversalClient
	prefix string
}

var _ ports.DistributedLocker = (*Locker)(nil)

// Option configures the Locker.
type Option func(*Locker)

// WithPrefix sets the key prefix for locks.
func WithPrefix(prefix string) Option {
	return func(l *Locker) {
		l.prefix = prefix
	}
}

// New creates a Locker with its own client.
func New(address, password string, db int, opts ...Option) *Locker {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a Locker from an existing client.
func NewFromClient(client backend.UniversalClient, opts ...Option) *Locker {
	l := &Locker{
		client: client,
		prefix: DefaultPrefix,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Ping checks connectivity.
func (l *Locker) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (l *Locker) Close() error {
	return l.client.Close()
}

func (l *Locker) key(key string) string {
	return l.prefix + "lock:" + key
}

// TryLock makes one SET NX PX attempt. The key holds a random token so only
// the owner can release it.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.key(key)
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error acquiring lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{lockKey}, token).Err()
		if err != nil && !errors.Is(err, backend.Nil) {
			return fmt.Errorf("redis error releasing lock: %w", err)
		}
		return nil
	}, nil
}
