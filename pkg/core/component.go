package core

import (
	"fmt"
	"image"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/metrics"
)

// Component is a node in the render tree. Implementations embed Base and
// provide Paint.
type Component interface {
	// Paint draws the component into canvas and returns an image of the same
	// size. canvas is a private copy; Paint may draw on it and return it.
	// Paint must not mutate the component's own State.
	Paint(canvas *image.Gray) (*image.Gray, error)

	// Render is provided by Base. Parents call it on their children.
	Render(canvas *image.Gray) (*image.Gray, error)

	base() *Base
}

// BaseOf returns the framework side of c.
func BaseOf(c Component) *Base { return c.base() }

// Factory creates a component. The framework wires the result into the tree.
type Factory func() Component

// Initializer is implemented by components that set up state, children or
// intervals once they are wired into the tree.
type Initializer interface {
	Init()
}

// Cleaner is implemented by components holding resources outside the tree.
// Cleanup runs before the component's children and intervals are torn down.
type Cleaner interface {
	Cleanup()
}

var nextID atomic.Uint64

// Base carries the framework side of a component. Embed it by value:
//
//	type label struct {
//	    core.Base
//	    text string
//	}
type Base struct {
	self  Component
	name  string
	id    uint64
	sched *animation.Scheduler

	notifyMu sync.RWMutex
	notify   func()

	renderMu  sync.Mutex
	lastInput *image.Gray
	cache     RenderCache

	mu        sync.Mutex
	size      image.Point
	children  []Component
	intervals []*Interval
	states    []detacher

	gate      *Gate
	rendered  atomic.Bool
	mounted   atomic.Bool
	destroyed atomic.Bool

	reconcileMu sync.Mutex
	pending     atomic.Bool
}

func (b *Base) base() *Base { return b }

// Option configures a root component.
type Option func(*rootOptions)

type rootOptions struct {
	scheduler *animation.Scheduler
	name      string
}

// WithScheduler runs the tree's intervals and transitions on s instead of
// the default scheduler.
func WithScheduler(s *animation.Scheduler) Option {
	return func(o *rootOptions) {
		o.scheduler = s
	}
}

// WithName overrides the root's name in errors and logs. The default is the
// component's Go type.
func WithName(name string) Option {
	return func(o *rootOptions) {
		o.name = name
	}
}

// NewRoot creates the root of a component tree. redraw is called whenever the
// root's rendered output has changed and the display should be refreshed.
func NewRoot(f Factory, redraw func(), opts ...Option) (Component, error) {
	if f == nil {
		return nil, &errors.ConstructionError{Reason: "nil factory"}
	}
	if redraw == nil {
		return nil, &errors.ConstructionError{Reason: "nil redraw callback"}
	}
	var o rootOptions
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = animation.DefaultScheduler()
	}

	c := f()
	if isNil(c) {
		return nil, &errors.ConstructionError{Reason: "factory returned nil"}
	}
	if err := attach(c, o.name, redraw, o.scheduler, true); err != nil {
		return nil, err
	}
	return c, nil
}

func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func attach(c Component, name string, notify func(), sched *animation.Scheduler, active bool) error {
	b := c.base()
	if name == "" {
		name = fmt.Sprintf("%T", c)
	}
	if b.self != nil {
		return &errors.ConstructionError{Component: name, Reason: "component is already part of a tree"}
	}
	b.self = c
	b.name = name
	b.id = nextID.Add(1)
	b.notify = notify
	b.sched = sched
	b.gate = NewGate(active)
	metrics.LiveComponents.Inc()

	if init, ok := c.(Initializer); ok {
		init.Init()
	}
	return nil
}

// CreateChild creates a child from f, wires it to this component and appends
// it to the owned children. It panics with a *errors.ConstructionError if f
// returns nil or a component that already belongs to a tree.
func (b *Base) CreateChild(f Factory) Component {
	var c Component
	if f != nil {
		c = f()
	}
	if isNil(c) {
		panic(&errors.ConstructionError{Component: b.name, Reason: "child factory returned nil"})
	}
	if err := attach(c, "", b.requestReconcile, b.sched, false); err != nil {
		panic(err)
	}

	b.mu.Lock()
	if b.destroyed.Load() {
		b.mu.Unlock()
		c.base().destroy()
		return c
	}
	b.children = append(b.children, c)
	b.mu.Unlock()
	return c
}

// Child wires c into parent's tree as an owned child and returns it typed.
func Child[C Component](parent Component, c C) C {
	parent.base().CreateChild(func() Component { return c })
	return c
}

// RemoveChild destroys an owned child. Removing a component this one does not
// own is reported and otherwise ignored.
func (b *Base) RemoveChild(c Component) {
	b.mu.Lock()
	idx := slices.IndexFunc(b.children, func(x Component) bool { return x == c })
	if idx < 0 {
		b.mu.Unlock()
		if !b.destroyed.Load() {
			errors.Report(&errors.FrameworkError{
				Op:        "core.RemoveChild",
				Kind:      errors.KindUnknownObject,
				Component: b.name,
				Err:       fmt.Errorf("%T is not a child of this component", c),
			})
		}
		return
	}
	b.children = slices.Delete(b.children, idx, idx+1)
	b.mu.Unlock()

	c.base().destroy()
}

// CreateInterval starts a periodic task gated on this component being
// visible. The interval is owned by the component and cancelled with it.
func (b *Base) CreateInterval(fn func(), period time.Duration) *Interval {
	iv := newInterval(b.sched, b.gate, period, fn, b.name)

	b.mu.Lock()
	if b.destroyed.Load() {
		b.mu.Unlock()
		iv.Cancel()
		return iv
	}
	b.intervals = append(b.intervals, iv)
	b.mu.Unlock()

	iv.start()
	return iv
}

// RemoveInterval cancels an owned interval. Removing an interval this
// component does not own is reported and otherwise ignored.
func (b *Base) RemoveInterval(iv *Interval) {
	b.mu.Lock()
	idx := slices.Index(b.intervals, iv)
	if idx < 0 {
		b.mu.Unlock()
		if !b.destroyed.Load() {
			errors.Report(&errors.FrameworkError{
				Op:        "core.RemoveInterval",
				Kind:      errors.KindUnknownObject,
				Component: b.name,
				Err:       fmt.Errorf("interval is not owned by this component"),
			})
		}
		return
	}
	b.intervals = slices.Delete(b.intervals, idx, idx+1)
	b.mu.Unlock()

	iv.Cancel()
}

// Destroy tears down the component and everything it owns. Owners should
// use RemoveChild; Destroy is for the root of a tree. Safe to call twice.
func (b *Base) Destroy() {
	b.destroy()
}

func (b *Base) destroy() {
	if !b.destroyed.CompareAndSwap(false, true) {
		return
	}

	b.notifyMu.Lock()
	b.notify = nil
	b.notifyMu.Unlock()

	if cleaner, ok := b.self.(Cleaner); ok {
		func() {
			defer errors.Recover("core.Cleanup")
			cleaner.Cleanup()
		}()
	}

	b.mu.Lock()
	intervals := b.intervals
	children := b.children
	states := b.states
	b.intervals = nil
	b.children = nil
	b.states = nil
	b.mu.Unlock()

	for _, iv := range intervals {
		iv.Cancel()
	}
	for _, c := range children {
		c.base().destroy()
	}
	for _, s := range states {
		s.detach()
	}
	if b.gate != nil {
		b.gate.Release()
	}
	b.cache.Clear()
	if b.self != nil {
		metrics.LiveComponents.Dec()
	}
}

// Render draws the component into an image the size of canvas.
//
// If canvas matches the last input pixel for pixel, the cached output is
// returned without invoking Paint. A render that returns no image, an image
// of a different size, or is called with a zero-size canvas fails with a
// *errors.RenderError. The returned image is always a private copy.
func (b *Base) Render(canvas *image.Gray) (*image.Gray, error) {
	if b.self == nil {
		return nil, &errors.ConstructionError{Reason: "component rendered before it was wired into a tree"}
	}
	if graphics.Empty(canvas) {
		var size image.Point
		if canvas != nil {
			size = canvas.Bounds().Size()
		}
		return nil, &errors.RenderError{
			Component: b.name,
			Reason:    errors.ReasonZeroSize,
			Want:      graphics.SizeString(size),
		}
	}

	b.renderMu.Lock()
	defer b.renderMu.Unlock()

	b.rendered.Store(true)
	if out, ok := b.cache.Lookup(canvas); ok {
		metrics.CacheHits.Inc()
		return out, nil
	}

	out, err := b.paint(canvas)
	if err != nil {
		b.cache.Clear()
		return nil, err
	}
	b.cache.Store(canvas, out)
	b.lastInput = graphics.Clone(canvas)
	b.mounted.Store(true)
	return graphics.Clone(out), nil
}

// paint runs the Paint body and then updates child visibility. The caller
// holds renderMu.
func (b *Base) paint(canvas *image.Gray) (out *image.Gray, err error) {
	size := canvas.Bounds().Size()
	b.mu.Lock()
	b.size = size
	children := slices.Clone(b.children)
	b.mu.Unlock()

	for _, c := range children {
		c.base().rendered.Store(false)
	}

	out, err = b.safePaint(graphics.Clone(canvas))
	metrics.Renders.Inc()
	if err != nil {
		return nil, &errors.RenderError{Component: b.name, Reason: errors.ReasonFailed, Err: err}
	}
	if out == nil {
		return nil, &errors.RenderError{
			Component: b.name,
			Reason:    errors.ReasonNoOutput,
			Want:      graphics.SizeString(size),
		}
	}
	if got := out.Bounds().Size(); got != size {
		return nil, &errors.RenderError{
			Component: b.name,
			Reason:    errors.ReasonSizeMismatch,
			Want:      graphics.SizeString(size),
			Got:       graphics.SizeString(got),
		}
	}

	active := b.gate.Active()
	for _, c := range children {
		cb := c.base()
		cb.setActive(active && cb.rendered.Load())
	}
	return out, nil
}

// safePaint converts a panic in Paint into an error.
func (b *Base) safePaint(canvas *image.Gray) (out *image.Gray, err error) {
	defer func() {
		if r := recover(); r != nil {
			errors.ReportPanic(&errors.PanicError{
				Op:         b.name + ".Paint",
				Value:      r,
				StackTrace: errors.CaptureStack(),
			})
			out, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	return b.self.Paint(canvas)
}

// setActive updates this component's gate and propagates to its children.
func (b *Base) setActive(active bool) {
	if b.gate.Active() == active {
		return
	}
	b.gate.Set(active)

	for _, c := range b.Children() {
		cb := c.base()
		cb.setActive(active && cb.rendered.Load())
	}
}

func (b *Base) notifyParent() {
	b.notifyMu.RLock()
	fn := b.notify
	b.notifyMu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (b *Base) addState(s detacher) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.destroyed.Load() {
		s.detach()
		return
	}
	b.states = append(b.states, s)
}

// Size returns the size of the most recent render.
func (b *Base) Size() image.Point {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.size
}

// Children returns a snapshot of the owned children in creation order.
func (b *Base) Children() []Component {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.children)
}

// Intervals returns a snapshot of the owned intervals.
func (b *Base) Intervals() []*Interval {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.intervals)
}

// Active reports whether the component is currently visible.
func (b *Base) Active() bool {
	return b.gate != nil && b.gate.Active()
}

// Mounted reports whether the component has rendered successfully.
func (b *Base) Mounted() bool { return b.mounted.Load() }

// Destroyed reports whether the component has been torn down.
func (b *Base) Destroyed() bool { return b.destroyed.Load() }

// Scheduler returns the scheduler the component's tasks run on.
func (b *Base) Scheduler() *animation.Scheduler { return b.sched }

// Name returns the component's type name.
func (b *Base) Name() string { return b.name }

// ID returns a process-unique identifier assigned when the component was wired.
func (b *Base) ID() uint64 { return b.id }
