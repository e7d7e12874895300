package testing

import (
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

const (
	// DefaultWidth is the default test display width.
	DefaultWidth = 128
	// DefaultHeight is the default test display height.
	DefaultHeight = 64
)

// ErrSettleTimeout is returned when AdvanceUntil exceeds its timeout.
var ErrSettleTimeout = errors.New("AdvanceUntil timed out: condition never held")

// ComponentTester mounts a component tree on a fake clock and plays the
// display driver: it renders a blank canvas and counts redraw requests.
type ComponentTester struct {
	clock  *FakeClock
	sched  *animation.Scheduler
	width  int
	height int

	root    core.Component
	frame   *image.Gray
	redraws atomic.Int64
}

// NewComponentTester creates a tester with the default display size.
// Call Cleanup when done, or use NewComponentTesterWithT instead.
func NewComponentTester() *ComponentTester {
	clk := NewFakeClock()
	return &ComponentTester{
		clock:  clk,
		sched:  animation.NewScheduler(clk),
		width:  DefaultWidth,
		height: DefaultHeight,
	}
}

// NewComponentTesterWithT creates a tester that cleans up via t.Cleanup.
func NewComponentTesterWithT(t testing.TB) *ComponentTester {
	tester := NewComponentTester()
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup destroys the mounted tree.
func (t *ComponentTester) Cleanup() {
	if t.root != nil {
		core.BaseOf(t.root).Destroy()
		t.root = nil
	}
}

// SetSize sets the canvas size. Must be called before Mount.
func (t *ComponentTester) SetSize(width, height int) {
	t.width, t.height = width, height
}

// Clock returns the fake clock.
func (t *ComponentTester) Clock() *FakeClock { return t.clock }

// Scheduler returns the scheduler the mounted tree runs on.
func (t *ComponentTester) Scheduler() *animation.Scheduler { return t.sched }

// Root returns the mounted root, or nil.
func (t *ComponentTester) Root() core.Component { return t.root }

// Mount builds a root from f and renders the first frame, replacing any
// previously mounted tree.
func (t *ComponentTester) Mount(f core.Factory) (core.Component, error) {
	if t.root != nil {
		core.BaseOf(t.root).Destroy()
		t.root = nil
	}
	t.redraws.Store(0)
	t.frame = nil

	root, err := core.NewRoot(f, func() { t.redraws.Add(1) }, core.WithScheduler(t.sched))
	if err != nil {
		return nil, err
	}
	t.root = root
	if _, err := t.Render(); err != nil {
		return root, err
	}
	return root, nil
}

// Render renders the root against a blank canvas and stores the frame.
func (t *ComponentTester) Render() (*image.Gray, error) {
	if t.root == nil {
		return nil, errors.New("no root mounted")
	}
	frame, err := core.BaseOf(t.root).Render(graphics.New(t.width, t.height))
	if err != nil {
		return nil, err
	}
	t.frame = frame
	return frame, nil
}

// Frame returns the most recently rendered frame.
func (t *ComponentTester) Frame() *image.Gray { return t.frame }

// Redraws returns how many times the root asked to be redrawn since Mount.
func (t *ComponentTester) Redraws() int { return int(t.redraws.Load()) }

// Pump runs every timer due now. Returns the number of callbacks run.
func (t *ComponentTester) Pump() int {
	return t.sched.RunDue()
}

// Advance moves the clock forward by d, stopping at each timer's due time so
// callbacks observe the time they were scheduled for.
func (t *ComponentTester) Advance(d time.Duration) int {
	target := t.clock.Now().Add(d)
	ran := 0
	for {
		due, ok := t.sched.NextDue()
		if !ok || due.After(target) {
			break
		}
		t.clock.Set(due)
		ran += t.sched.RunDue()
	}
	t.clock.Set(target)
	ran += t.sched.RunDue()
	return ran
}

// AdvanceUntil advances the clock in steps of step until cond holds.
func (t *ComponentTester) AdvanceUntil(cond func() bool, step, timeout time.Duration) error {
	var elapsed time.Duration
	for !cond() {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Advance(step)
		elapsed += step
	}
	return nil
}
