package animation

import (
	"sync"
	"time"

	"github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/metrics"
)

// Transition moves a distance over time by running a Stepper on a Scheduler.
//
// OnStep receives the total distance travelled after every step; OnDone runs
// once after the final step. Neither runs after Stop.
type Transition struct {
	sched   *Scheduler
	stepper *Stepper
	kind    string
	onStep  func(travelled int)
	onDone  func()

	mu      sync.Mutex
	timer   *Timer
	stopped bool
	done    bool
}

// TransitionSpec describes a transition to run.
type TransitionSpec struct {
	// Kind labels the transition in metrics (e.g. "scroll", "push").
	Kind string
	// Distance is the number of pixels to travel.
	Distance int
	// Duration is the target wall-clock duration.
	Duration time.Duration
	// BaseStep is the nominal pixels per step. Zero uses DefaultBaseStep.
	BaseStep int
	// OnStep is called with the distance travelled after each step.
	OnStep func(travelled int)
	// OnDone is called after the last step.
	OnDone func()
}

// Animate starts a transition. When the duration or distance is zero the
// transition completes synchronously before Animate returns.
func (s *Scheduler) Animate(spec TransitionSpec) *Transition {
	t := &Transition{
		sched:   s,
		stepper: NewStepper(spec.Distance, spec.Duration, spec.BaseStep),
		kind:    spec.Kind,
		onStep:  spec.OnStep,
		onDone:  spec.OnDone,
	}
	metrics.TransitionsStarted.WithLabelValues(t.kind).Inc()

	if spec.Duration <= 0 || spec.Distance <= 0 {
		t.stepper.Start(s.Now())
		t.stepper.travelled = t.stepper.distance
		t.finish()
		return t
	}

	t.stepper.Start(s.Now())
	t.mu.Lock()
	t.timer = s.After(t.stepper.StepDuration(), t.step)
	t.mu.Unlock()
	return t
}

func (t *Transition) step() {
	defer errors.Recover("animation.Transition")

	t.mu.Lock()
	if t.stopped || t.done {
		t.mu.Unlock()
		return
	}
	travelled, done := t.stepper.Next(t.sched.Now())
	t.mu.Unlock()

	if done {
		t.finish()
		return
	}
	if t.onStep != nil {
		t.onStep(travelled)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.stopped {
		t.timer = t.sched.After(t.stepper.StepDuration(), t.step)
	}
}

func (t *Transition) finish() {
	t.mu.Lock()
	if t.stopped || t.done {
		t.mu.Unlock()
		return
	}
	t.done = true
	travelled := t.stepper.Travelled()
	t.mu.Unlock()

	if t.onStep != nil {
		t.onStep(travelled)
	}
	if t.onDone != nil {
		t.onDone()
	}
}

// Stop cancels the transition. OnStep and OnDone are not called afterwards.
// Safe to call more than once and from any goroutine.
func (t *Transition) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.timer.Stop()
	t.timer = nil
}

// Done reports whether the transition ran to completion.
func (t *Transition) Done() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.done
}

// Stopped reports whether Stop was called.
func (t *Transition) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}

// Progress returns the fraction of the distance covered.
func (t *Transition) Progress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stepper.Progress()
}
