// Package readiness gates request handling on the store connection.
//
// The store clients are constructed synchronously at start, but the backends
// may not be reachable yet. A Gate starts closed and is opened exactly once,
// after the background connect step succeeds.
package readiness

import (
	"context"
	"sync"
	"sync/atomic"
)

// Gate is a one-shot readiness latch, safe for concurrent use.
type Gate struct {
	ready atomic.Bool
	once  sync.Once
	ch    chan struct{}
}

// New returns a closed gate.
func New() *Gate {
	return &Gate{ch: make(chan struct{})}
}

// MarkReady opens the gate. Calls after the first are no-ops.
func (g *Gate) MarkReady() {
	g.once.Do(func() {
		g.ready.Store(true)
		close(g.ch)
	})
}

// Ready reports whether the gate is open.
func (g *Gate) Ready() bool {
	return g.ready.Load()
}

// Wait blocks until the gate opens or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
