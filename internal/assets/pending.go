package assets

import (
	"context"
	"sync"
)

// Pending is the handle to an in-flight load. It resolves exactly once;
// every later resolution attempt is rejected.
type Pending[T any] struct {
	mu       sync.Mutex
	done     chan struct{}
	result   Result[T]
	resolved bool
	claimed  bool

	progress *progressTracker
}

func newPending[T any]() *Pending[T] {
	return &Pending[T]{done: make(chan struct{})}
}

// resolve installs the result built by build unless the handle already
// resolved. The first caller claims the handle under the lock; build then
// runs unlocked so Poll never waits on it.
func (p *Pending[T]) resolve(build func() Result[T]) bool {
	p.mu.Lock()
	if p.claimed {
		p.mu.Unlock()
		return false
	}
	p.claimed = true
	p.mu.Unlock()

	r := build()

	p.mu.Lock()
	p.result = r
	p.resolved = true
	p.mu.Unlock()
	close(p.done)
	return true
}

// Poll returns the result without blocking. The bool is false while the
// load is still running. Safe to call every frame.
func (p *Pending[T]) Poll() (Result[T], bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.result, p.resolved
}

// Done is closed once the result is available.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the load resolves or ctx ends.
func (p *Pending[T]) Wait(ctx context.Context) (Result[T], error) {
	select {
	case <-p.done:
		r, _ := p.Poll()
		return r, nil
	case <-ctx.Done():
		var zero Result[T]
		return zero, ctx.Err()
	}
}

// Progress returns the latest known progress, if any was reported.
func (p *Pending[T]) Progress() (Progress, bool) {
	if p.progress == nil {
		return Progress{}, false
	}
	return p.progress.Last()
}
