package core

import "sync"

// detacher is implemented by State so Base can cut the owner link on destroy.
type detacher interface {
	detach()
}

// State holds a component's observable data.
//
// Each mutation replaces the whole value atomically and is compared with the
// previous value; when they are equal nothing happens. Otherwise the OnChange
// hooks run with the previous value, and the owning component reconciles.
//
// T is typically a small struct so related fields change together:
//
//	type scrollState struct {
//	    Top      int
//	    Progress float64
//	}
//
//	s.scroll = core.NewState(s, scrollState{})
//	s.scroll.Update(func(v scrollState) scrollState {
//	    v.Top++
//	    return v
//	})
//
// State is safe for concurrent use. Its link to the owner is cut when the
// owner is destroyed; later mutations still update the value but notify no one.
type State[T any] struct {
	mu    sync.Mutex
	value T
	equal func(a, b T) bool
	owner *Base
	hooks []func(prev T)
}

// NewState creates state owned by owner, compared with ==.
func NewState[T comparable](owner Component, initial T) *State[T] {
	return NewStateFunc(owner, initial, func(a, b T) bool { return a == b })
}

// NewStateFunc creates state owned by owner, compared with equal. Use it for
// values == cannot compare, such as images or slices.
func NewStateFunc[T any](owner Component, initial T, equal func(a, b T) bool) *State[T] {
	b := owner.base()
	s := &State[T]{
		value: initial,
		equal: equal,
		owner: b,
	}
	b.addState(s)
	return s
}

// Value returns the current value.
func (s *State[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set replaces the value. Returns whether it changed.
func (s *State[T]) Set(next T) bool {
	return s.Update(func(T) T { return next })
}

// Update replaces the value with fn applied to the current one, atomically
// with respect to other mutations. Returns whether the value changed.
func (s *State[T]) Update(fn func(T) T) bool {
	s.mu.Lock()
	prev := s.value
	next := fn(prev)
	if s.equal(prev, next) {
		s.mu.Unlock()
		return false
	}
	s.value = next
	owner := s.owner
	hooks := s.hooks
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(prev)
	}
	if owner != nil {
		owner.requestReconcile()
	}
	return true
}

// OnChange registers fn to run after every change, with the previous value.
// Hooks run before the owner reconciles.
func (s *State[T]) OnChange(fn func(prev T)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks[:len(s.hooks):len(s.hooks)], fn)
}

func (s *State[T]) detach() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owner = nil
	s.hooks = nil
}
