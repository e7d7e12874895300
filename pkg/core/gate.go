package core

import "sync"

// Gate is a component's visibility flag that tasks can wait on.
//
// Waiters are callbacks rather than blocked goroutines: Wait registers a
// function that runs once the gate opens or is released. Release is final;
// it wakes every waiter so it can observe cancellation and stop.
type Gate struct {
	mu       sync.Mutex
	active   bool
	released bool
	waiters  map[uint64]func()
	next     uint64
}

// NewGate returns a gate in the given state.
func NewGate(active bool) *Gate {
	return &Gate{active: active}
}

// Active reports whether the gate is open. A released gate is never active.
func (g *Gate) Active() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.active && !g.released
}

// Released reports whether Release has been called.
func (g *Gate) Released() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.released
}

// Set opens or closes the gate. Opening it runs all pending waiters.
func (g *Gate) Set(active bool) {
	g.mu.Lock()
	if g.released || g.active == active {
		g.mu.Unlock()
		return
	}
	g.active = active
	var wake []func()
	if active {
		wake = g.drain()
	}
	g.mu.Unlock()

	for _, fn := range wake {
		fn()
	}
}

// Wait arranges for fn to run when the gate opens or is released. If the gate
// is already open or released, fn runs before Wait returns. The returned
// function cancels the wait.
func (g *Gate) Wait(fn func()) (cancel func()) {
	g.mu.Lock()
	if g.active || g.released {
		g.mu.Unlock()
		fn()
		return func() {}
	}
	if g.waiters == nil {
		g.waiters = make(map[uint64]func())
	}
	g.next++
	id := g.next
	g.waiters[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		delete(g.waiters, id)
	}
}

// Waiting returns the number of pending waiters.
func (g *Gate) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.waiters)
}

// Release permanently closes the gate and wakes every waiter.
func (g *Gate) Release() {
	g.mu.Lock()
	if g.released {
		g.mu.Unlock()
		return
	}
	g.released = true
	wake := g.drain()
	g.mu.Unlock()

	for _, fn := range wake {
		fn()
	}
}

// drain empties the waiter set. The caller holds mu.
func (g *Gate) drain() []func() {
	wake := make([]func(), 0, len(g.waiters))
	for _, fn := range g.waiters {
		wake = append(wake, fn)
	}
	clear(g.waiters)
	return wake
}
