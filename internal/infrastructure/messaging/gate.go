package messaging

import "sync"

// Gate is a one-shot readiness latch. The bootstrap sequence releases it
// exactly once after storage, session, and collection hydration settle; the
// UI shell stays on its loading screen until then. Releasing an already
// released gate is a no-op.
type Gate struct {
	once sync.Once
	ch   chan struct{}
}

// NewGate creates an unreleased gate.
func NewGate() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// Release opens the gate. Safe to call more than once; only the first call
// counts.
func (g *Gate) Release() {
	g.once.Do(func() { close(g.ch) })
}

// Released reports whether the gate is open.
func (g *Gate) Released() bool {
	select {
	case <-g.ch:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the gate opens.
func (g *Gate) Done() <-chan struct{} {
	return g.ch
}
