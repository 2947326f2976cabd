package runner

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// raceWindow is how long an input error waits for a signal to follow it.
const raceWindow = 100 * time.Millisecond

// SignalManager arms SIGINT and SIGTERM for the console. Each arming yields
// one context that is cancelled by the next signal; Reset arms a fresh one so
// a second Ctrl+C can be told apart from the first.
type SignalManager struct {
	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalManager starts listening immediately.
func NewSignalManager() *SignalManager {
	sm := &SignalManager{}
	sm.Reset()
	return sm
}

// Context returns the context of the current arming.
func (sm *SignalManager) Context() context.Context {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ctx
}

// Interrupted reports whether the current arming has fired.
func (sm *SignalManager) Interrupted() bool {
	return sm.Context().Err() != nil
}

// Interrupt fires the current arming as a signal would.
func (sm *SignalManager) Interrupt() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.cancel()
}

// Reset re-arms the listener after a signal was handled.
func (sm *SignalManager) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.cancel != nil {
		sm.cancel()
	}
	sm.ctx, sm.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Stop releases the signal handlers.
func (sm *SignalManager) Stop() {
	sm.Interrupt()
}

// CheckRace gives a signal a short window to arrive after an input error.
// Terminals often close stdin on Ctrl+C slightly before the signal lands.
func (sm *SignalManager) CheckRace() bool {
	ctx := sm.Context()
	if ctx.Err() == nil {
		select {
		case <-ctx.Done():
		case <-time.After(raceWindow):
		}
	}
	return ctx.Err() != nil
}
