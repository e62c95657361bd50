// Package tracker holds the change-notification switch that a save cycle
// turns off while it reads blocks, and a scoped guard around it.
package tracker

import (
	"sync"
)

// ChangeTracker decides whether change notifications fire.
type ChangeTracker interface {
	Disable()
	Enable()
}

// Guard disables a tracker for the span of one save cycle. Release enables it
// again and is safe to call more than once; only the first call has effect.
type Guard struct {
	tracker ChangeTracker
	once    sync.Once
}

// Hold disables t and returns the guard that re-enables it.
func Hold(t ChangeTracker) *Guard {
	g := &Guard{tracker: t}
	if t != nil {
		t.Disable()
	}
	return g
}

func (g *Guard) Release() {
	g.once.Do(func() {
		if g.tracker != nil {
			g.tracker.Enable()
		}
	})
}

// Change describes one modification reported to an Observer.
type Change struct {
	UnitID string
	Kind   string
}

// Observer is an in-memory ChangeTracker: Notify delivers changes to the
// subscribed listeners only while the observer is enabled.
type Observer struct {
	mu        sync.RWMutex
	disabled  bool
	listeners []func(Change)
}

func NewObserver() *Observer {
	return &Observer{}
}

func (o *Observer) Disable() {
	o.mu.Lock()
	o.disabled = true
	o.mu.Unlock()
}

func (o *Observer) Enable() {
	o.mu.Lock()
	o.disabled = false
	o.mu.Unlock()
}

func (o *Observer) Enabled() bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return !o.disabled
}

// Subscribe registers fn for future changes.
func (o *Observer) Subscribe(fn func(Change)) {
	o.mu.Lock()
	o.listeners = append(o.listeners, fn)
	o.mu.Unlock()
}

// Notify reports a change and returns whether it was delivered.
func (o *Observer) Notify(c Change) bool {
	o.mu.RLock()
	if o.disabled {
		o.mu.RUnlock()
		return false
	}
	listeners := make([]func(Change), len(o.listeners))
	copy(listeners, o.listeners)
	o.mu.RUnlock()

	for _, fn := range listeners {
		fn(c)
	}
	return true
}
