package theme

import (
	"sync"

	"github.com/var1d/folio/pkg/domain"
)

// ApplyFunc receives the variable table of the active mode.
type ApplyFunc func(Palette)

// Applier keeps a presentation target in sync with a Store.
type Applier struct {
	mu          sync.Mutex
	unsubscribe func()
}

// NewApplier applies the current mode immediately and then every change.
func NewApplier(store *Store, palettes Palettes, apply ApplyFunc) *Applier {
	a := &Applier{}

	// Held across subscribe + initial apply so a concurrent write cannot be
	// applied before the initial (possibly older) table.
	a.mu.Lock()
	defer a.mu.Unlock()

	a.unsubscribe = store.Subscribe(func(mode domain.ThemeMode) {
		a.mu.Lock()
		defer a.mu.Unlock()
		apply(palettes[mode])
	})
	apply(palettes[store.Get()])
	return a
}

// Close stops forwarding changes. Safe to call more than once.
func (a *Applier) Close() {
	a.mu.Lock()
	unsubscribe := a.unsubscribe
	a.unsubscribe = nil
	a.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}
