/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package gate provides the one-time initialization gate guarding a lazily
// connected backend handle.
package gate

import (
	"context"
	stderrors "errors"
	"sync"
	"sync/atomic"

	"github.com/suparena/dictstore/errors"
)

// State is the lifecycle position of a Gate.
type State int32

const (
	Uninitialized State = iota
	Connecting
	Ready
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Connecting:
		return "connecting"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// InitFunc builds the handle. It runs at most once concurrently.
type InitFunc[H any] func(ctx context.Context) (H, error)

var errInitPanicked = stderrors.New("gate: initializer panicked")

// attempt is one in-flight run of the initializer. done is closed when it
// finishes.
type attempt struct {
	done chan struct{}
	err  error
	// abandoned is set when the run failed because its caller's context ended
	abandoned bool
}

// Gate hands out a handle built on first use. Concurrent first callers wait
// for the single initializer, or until their own context ends, and share its
// outcome. Configuration errors are sticky; any other failure returns the
// gate to Uninitialized so a later call can try again. A run abandoned by its
// caller's context is taken over by the next waiter.
type Gate[H any] struct {
	mu       sync.Mutex
	state    atomic.Int32
	handle   atomic.Pointer[H]
	fatal    error
	inflight *attempt
	init     InitFunc[H]
}

// New creates a gate around init.
func New[H any](init InitFunc[H]) *Gate[H] {
	return &Gate[H]{init: init}
}

// Get returns the ready handle, initializing it if needed.
func (g *Gate[H]) Get(ctx context.Context) (H, error) {
	var zero H
	for {
		if h := g.handle.Load(); h != nil {
			return *h, nil
		}

		g.mu.Lock()
		if h := g.handle.Load(); h != nil {
			g.mu.Unlock()
			return *h, nil
		}
		if g.fatal != nil {
			g.mu.Unlock()
			return zero, g.fatal
		}
		if a := g.inflight; a != nil {
			g.mu.Unlock()
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-a.done:
			}
			if a.err != nil && !a.abandoned {
				return zero, a.err
			}
			continue
		}

		a := &attempt{done: make(chan struct{})}
		g.inflight = a
		g.state.Store(int32(Connecting))
		g.mu.Unlock()
		return g.run(ctx, a)
	}
}

func (g *Gate[H]) run(ctx context.Context, a *attempt) (h H, err error) {
	err = errInitPanicked
	defer func() { g.finish(a, h, err, ctx.Err() != nil) }()
	h, err = g.init(ctx)
	return h, err
}

func (g *Gate[H]) finish(a *attempt, h H, err error, cancelled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err != nil {
		if errors.IsConfiguration(err) {
			g.fatal = err
		}
		g.state.Store(int32(Uninitialized))
	} else {
		g.handle.Store(&h)
		g.state.Store(int32(Ready))
	}
	a.err = err
	a.abandoned = err != nil && cancelled
	g.inflight = nil
	close(a.done)
}

// State reports the current lifecycle state.
func (g *Gate[H]) State() State {
	return State(g.state.Load())
}
