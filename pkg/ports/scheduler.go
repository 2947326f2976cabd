package ports

import "time"

// CancelFunc stops a scheduled callback. It reports whether the callback was
// still pending. Calling it more than once, or after the callback ran, is safe.
type CancelFunc func() bool

// Scheduler runs deferred side effects (notification expiry, status reset).
// Returning a cancel handle lets a component tear down its pending timers
// deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}
