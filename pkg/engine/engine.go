// Package engine is the display driver for a component tree.
//
// An Engine owns one root component. It renders the first frame as soon as
// Run starts and renders again whenever the root reports a change, at most FPS
// times per second, sending each new frame to a Display. Intervals and
// transitions run on the engine's scheduler in the same errgroup as the frame
// loop, so cancelling Run's context stops both and destroys the tree.
package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/core"
	pderrors "github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/metrics"
)

const (
	// DefaultWidth is the display width used when Config.Width is zero.
	DefaultWidth = 128
	// DefaultHeight is the display height used when Config.Height is zero.
	DefaultHeight = 64
	// DefaultFPS caps the frame rate when Config.FPS is zero.
	DefaultFPS = 20
)

// ErrRunning is returned by Run when the engine is already running.
var ErrRunning = errors.New("engine: already running")

// Display receives finished frames. Show is called from a single goroutine
// and must not retain frame after returning.
type Display interface {
	Show(frame *image.Gray) error
}

// DisplayFunc adapts a function to a Display.
type DisplayFunc func(frame *image.Gray) error

// Show calls f(frame).
func (f DisplayFunc) Show(frame *image.Gray) error { return f(frame) }

// Config configures an Engine.
type Config struct {
	Width  int
	Height int
	// FPS caps how often frames are rendered. Bursts of changes between
	// frames collapse into one frame.
	FPS float64
	// Scheduler runs the tree's intervals and transitions. Nil creates one
	// on the system clock.
	Scheduler *animation.Scheduler
	// Name labels the root in errors and logs.
	Name string
	// TraceSamples is the number of recent frames kept for the debug
	// handler. Zero uses a default; negative disables tracing.
	TraceSamples int
}

// Engine drives a component tree onto a Display.
type Engine struct {
	cfg     Config
	factory core.Factory
	display Display
	sched   *animation.Scheduler
	limiter *rate.Limiter
	trace   *FrameTraceBuffer

	redraw  chan struct{}
	running atomic.Bool
	frames  atomic.Int64

	mu   sync.Mutex
	root core.Component
	last *image.Gray
}

// New creates an engine for the tree built by root.
func New(cfg Config, root core.Factory, display Display) (*Engine, error) {
	if root == nil {
		return nil, &pderrors.ConstructionError{Component: "engine", Reason: "nil root factory"}
	}
	if display == nil {
		return nil, &pderrors.ConstructionError{Component: "engine", Reason: "nil display"}
	}
	if cfg.Width < 0 || cfg.Height < 0 || cfg.FPS < 0 {
		return nil, &pderrors.ConstructionError{
			Component: "engine",
			Reason:    fmt.Sprintf("invalid display %dx%d at %g fps", cfg.Width, cfg.Height, cfg.FPS),
		}
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height == 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.FPS == 0 {
		cfg.FPS = DefaultFPS
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = animation.NewScheduler(animation.SystemClock)
	}

	e := &Engine{
		cfg:     cfg,
		factory: root,
		display: display,
		sched:   cfg.Scheduler,
		limiter: rate.NewLimiter(rate.Limit(cfg.FPS), 1),
		redraw:  make(chan struct{}, 1),
	}
	if cfg.TraceSamples >= 0 {
		e.trace = NewFrameTraceBuffer(cfg.TraceSamples, time.Duration(float64(time.Second)/cfg.FPS))
	}
	return e, nil
}

// Run builds the tree, shows the first frame and keeps the display current
// until ctx is done. The tree is destroyed before Run returns. A render or
// display error stops the engine and is returned; cancellation returns nil.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrRunning
	}
	defer e.running.Store(false)

	var opts []core.Option
	opts = append(opts, core.WithScheduler(e.sched))
	if e.cfg.Name != "" {
		opts = append(opts, core.WithName(e.cfg.Name))
	}
	root, err := core.NewRoot(e.factory, e.requestFrame, opts...)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.root = root
	e.mu.Unlock()
	defer func() {
		core.BaseOf(root).Destroy()
		e.mu.Lock()
		e.root = nil
		e.mu.Unlock()
	}()

	e.limiter.Allow()
	if err := e.renderFrame(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return e.sched.Run(gctx) })
	g.Go(func() error { return e.frameLoop(gctx) })
	err = g.Wait()
	if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
		return nil
	}
	return err
}

// requestFrame is the root's redraw callback. It never blocks; requests
// arriving while one is pending collapse into it.
func (e *Engine) requestFrame() {
	select {
	case e.redraw <- struct{}{}:
	default:
	}
}

func (e *Engine) frameLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.redraw:
		}
		if err := e.limiter.Wait(ctx); err != nil {
			return err
		}
		if err := e.renderFrame(); err != nil {
			return err
		}
	}
}

// renderFrame renders the root onto a blank canvas and shows the result if
// it differs from the last frame shown.
func (e *Engine) renderFrame() error {
	e.mu.Lock()
	root := e.root
	last := e.last
	e.mu.Unlock()
	if root == nil {
		return nil
	}

	start := time.Now()
	frame, err := root.Render(graphics.New(e.cfg.Width, e.cfg.Height))
	if err != nil {
		return err
	}
	rendered := time.Now()
	if last != nil && graphics.Equal(last, frame) {
		return nil
	}
	if err := e.display.Show(frame); err != nil {
		return fmt.Errorf("engine: show frame: %w", err)
	}
	done := time.Now()

	e.mu.Lock()
	e.last = frame
	e.mu.Unlock()
	e.frames.Add(1)
	metrics.Frames.Inc()

	if e.trace != nil {
		e.trace.Add(FrameSample{
			Timestamp:  start.UnixMilli(),
			FrameMs:    durationToMillis(done.Sub(start)),
			RenderMs:   durationToMillis(rendered.Sub(start)),
			ShowMs:     durationToMillis(done.Sub(rendered)),
			Components: countTree(root, 0),
		}, done.Sub(start))
	}
	return nil
}

// Frames returns the number of frames shown.
func (e *Engine) Frames() int64 { return e.frames.Load() }

// Frame returns a copy of the last frame shown, or nil.
func (e *Engine) Frame() *image.Gray {
	e.mu.Lock()
	defer e.mu.Unlock()
	return graphics.Clone(e.last)
}

// Root returns the running root component, or nil when not running.
func (e *Engine) Root() core.Component {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.root
}

// Scheduler returns the scheduler the tree runs on.
func (e *Engine) Scheduler() *animation.Scheduler { return e.sched }

// Size returns the display size.
func (e *Engine) Size() image.Point { return image.Pt(e.cfg.Width, e.cfg.Height) }

// Trace returns the frame trace buffer, or nil when tracing is disabled.
func (e *Engine) Trace() *FrameTraceBuffer { return e.trace }

// Post runs fn on the scheduler goroutine after the callbacks already due.
// Input handlers should mutate the tree through it.
func (e *Engine) Post(fn func()) {
	e.sched.After(0, fn)
}
