package scheduler

import (
	"time"

	"github.com/var1d/folio/pkg/ports"
)

// Real schedules callbacks with time.AfterFunc.
type Real struct{}

var _ ports.Scheduler = Real{}

// New returns the runtime-backed scheduler.
func New() Real {
	return Real{}
}

// AfterFunc runs fn in its own goroutine after d.
func (Real) AfterFunc(d time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
