package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingTracker struct {
	calls []string
}

func (c *countingTracker) Disable() { c.calls = append(c.calls, "disable") }
func (c *countingTracker) Enable()  { c.calls = append(c.calls, "enable") }

func TestGuard_ReleaseOnce(t *testing.T) {
	t.Parallel()

	ct := &countingTracker{}
	g := Hold(ct)
	g.Release()
	g.Release()

	assert.Equal(t, []string{"disable", "enable"}, ct.calls)
}

func TestGuard_ReleasedByDeferOnPanic(t *testing.T) {
	t.Parallel()

	ct := &countingTracker{}
	func() {
		defer func() { _ = recover() }()
		g := Hold(ct)
		defer g.Release()
		panic("unit exploded")
	}()

	assert.Equal(t, []string{"disable", "enable"}, ct.calls)
}

func TestGuard_NilTracker(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Hold(nil).Release()
	})
}

func TestObserver_SuppressesWhileDisabled(t *testing.T) {
	t.Parallel()

	o := NewObserver()
	var got []Change
	o.Subscribe(func(c Change) { got = append(got, c) })

	assert.True(t, o.Notify(Change{UnitID: "a", Kind: "edit"}))

	g := Hold(o)
	assert.False(t, o.Enabled())
	assert.False(t, o.Notify(Change{UnitID: "b", Kind: "edit"}))
	g.Release()

	assert.True(t, o.Enabled())
	assert.True(t, o.Notify(Change{UnitID: "c", Kind: "edit"}))
	assert.Equal(t, []Change{{UnitID: "a", Kind: "edit"}, {UnitID: "c", Kind: "edit"}}, got)
}
