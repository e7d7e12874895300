package core

import (
	"fmt"
	"sync"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/metrics"
)

// IntervalStatus is the lifecycle state of an Interval.
//
//	Created ──start──► Running ◄──gate opens── Paused
//	                      │ └──gate closed──────►┘
//	                      └────Cancel────► Cancelled
//
// Cancelled is terminal and reachable from every other state.
type IntervalStatus int

const (
	// IntervalCreated means the interval has not started.
	IntervalCreated IntervalStatus = iota
	// IntervalRunning means ticks are being scheduled.
	IntervalRunning
	// IntervalPaused means the owner is not visible and the interval is
	// waiting on its gate.
	IntervalPaused
	// IntervalCancelled means the interval will never run again.
	IntervalCancelled
)

func (s IntervalStatus) String() string {
	switch s {
	case IntervalCreated:
		return "created"
	case IntervalRunning:
		return "running"
	case IntervalPaused:
		return "paused"
	case IntervalCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("IntervalStatus(%d)", int(s))
	}
}

// Interval is a periodic task owned by a component and gated on the
// component's visibility.
//
// Ticks are scheduled against a deadline that advances by the period, so the
// time a callback takes is subtracted from the wait before the next tick. A
// callback that outlasts the period is reported as an overrun and the next
// tick runs immediately; no tick is skipped.
//
// The interval holds the owner's gate and its callback, never the owner.
// Cancel drops the callback.
type Interval struct {
	sched  *animation.Scheduler
	gate   *Gate
	period time.Duration
	owner  string

	mu       sync.Mutex
	callback func()
	status   IntervalStatus
	timer    *animation.Timer
	unwait   func()
	due      time.Time
	ticks    int
	overruns int
}

func newInterval(sched *animation.Scheduler, gate *Gate, period time.Duration, fn func(), owner string) *Interval {
	if period <= 0 {
		period = time.Millisecond
	}
	metrics.LiveIntervals.Inc()
	return &Interval{
		sched:    sched,
		gate:     gate,
		period:   period,
		owner:    owner,
		callback: fn,
	}
}

func (iv *Interval) start() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	if iv.status != IntervalCreated {
		return
	}
	iv.status = IntervalRunning
	iv.due = iv.sched.Now().Add(iv.period)
	iv.timer = iv.sched.At(iv.due, iv.tick)
}

func (iv *Interval) tick() {
	iv.mu.Lock()
	iv.timer = nil
	if iv.status == IntervalCancelled || iv.callback == nil {
		iv.mu.Unlock()
		return
	}
	if !iv.gate.Active() {
		iv.status = IntervalPaused
		iv.mu.Unlock()
		iv.pause()
		return
	}
	iv.status = IntervalRunning
	cb := iv.callback
	iv.mu.Unlock()

	start := iv.sched.Now()
	iv.run(cb)
	now := iv.sched.Now()

	iv.mu.Lock()
	iv.ticks++
	if iv.status == IntervalCancelled {
		iv.mu.Unlock()
		return
	}
	elapsed := now.Sub(start)
	overran := elapsed > iv.period
	if overran {
		iv.overruns++
	}
	iv.due = iv.due.Add(iv.period)
	if iv.due.Before(now) {
		iv.due = now
	}
	iv.timer = iv.sched.At(iv.due, iv.tick)
	iv.mu.Unlock()

	if overran {
		metrics.IntervalOverruns.Inc()
		errors.Report(&errors.FrameworkError{
			Op:        "core.Interval",
			Kind:      errors.KindInterval,
			Component: iv.owner,
			Err:       fmt.Errorf("callback took %v, longer than its %v period", elapsed, iv.period),
		})
	}
}

func (iv *Interval) run(cb func()) {
	defer errors.Recover("core.Interval")
	cb()
}

// pause waits on the gate. Wait may call resume before it returns.
func (iv *Interval) pause() {
	unwait := iv.gate.Wait(iv.resume)

	iv.mu.Lock()
	cancelled := iv.status == IntervalCancelled
	if !cancelled && iv.status == IntervalPaused {
		iv.unwait = unwait
	}
	iv.mu.Unlock()
	if cancelled {
		unwait()
	}
}

func (iv *Interval) resume() {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	iv.unwait = nil
	if iv.status != IntervalPaused {
		return
	}
	iv.status = IntervalRunning
	iv.due = iv.sched.Now()
	iv.timer = iv.sched.At(iv.due, iv.tick)
}

// Cancel stops the interval permanently. A callback already executing runs
// to completion; none starts afterwards. Safe to call more than once and from
// any goroutine.
func (iv *Interval) Cancel() {
	iv.mu.Lock()
	if iv.status == IntervalCancelled {
		iv.mu.Unlock()
		return
	}
	iv.status = IntervalCancelled
	iv.callback = nil
	timer, unwait := iv.timer, iv.unwait
	iv.timer, iv.unwait = nil, nil
	iv.mu.Unlock()

	timer.Stop()
	if unwait != nil {
		unwait()
	}
	metrics.LiveIntervals.Dec()
}

// Status returns the interval's lifecycle state.
func (iv *Interval) Status() IntervalStatus {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.status
}

// Period returns the nominal time between ticks.
func (iv *Interval) Period() time.Duration { return iv.period }

// Ticks returns the number of callbacks run so far.
func (iv *Interval) Ticks() int {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.ticks
}

// Overruns returns how many callbacks outlasted the period.
func (iv *Interval) Overruns() int {
	iv.mu.Lock()
	defer iv.mu.Unlock()
	return iv.overruns
}
