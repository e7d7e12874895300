// Package animation provides the timing primitives the component tree runs on.
//
// # Scheduler
//
// A [Scheduler] owns a single timer loop. Periodic tasks and transition steps
// are cooperative callbacks queued on it rather than goroutines sleeping in
// loops, so cancelling one is a matter of stopping its [Timer]:
//
//	sched := animation.NewScheduler(nil)
//	go sched.Run(ctx)
//	t := sched.After(time.Second, func() { fmt.Println("tick") })
//	t.Stop()
//
// Tests drive a scheduler by hand: advance a fake clock, then call RunDue.
//
// # Stepper and Transition
//
// [Stepper] is the lag-corrected stepping algorithm shared by scrolling lists
// and the stack navigator. [Transition] runs a Stepper on a Scheduler.
package animation

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

// Scheduler runs timed callbacks on a single loop.
//
// Callbacks run one at a time, in due order, on whichever goroutine calls
// Run or RunDue. A callback may schedule or stop other timers.
type Scheduler struct {
	clock Clock

	mu    sync.Mutex
	queue timerQueue
	seq   uint64
	wake  chan struct{}
}

// NewScheduler creates a scheduler. A nil clock uses the package clock.
func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = packageClock{}
	}
	return &Scheduler{
		clock: c,
		wake:  make(chan struct{}, 1),
	}
}

var (
	defaultOnce      sync.Once
	defaultScheduler *Scheduler
)

// DefaultScheduler returns a process-wide scheduler whose loop is started on
// first use. Components fall back to it when no scheduler is configured.
func DefaultScheduler() *Scheduler {
	defaultOnce.Do(func() {
		defaultScheduler = NewScheduler(nil)
		go defaultScheduler.Run(context.Background())
	})
	return defaultScheduler
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// Clock returns the scheduler's time source.
func (s *Scheduler) Clock() Clock {
	return s.clock
}

// At schedules fn to run at t. Times in the past run on the next pass.
func (s *Scheduler) At(t time.Time, fn func()) *Timer {
	timer := &Timer{sched: s, at: t, fn: fn, index: -1}
	s.mu.Lock()
	s.seq++
	timer.seq = s.seq
	heap.Push(&s.queue, timer)
	first := s.queue[0] == timer
	s.mu.Unlock()

	if first {
		s.signal()
	}
	return timer
}

// After schedules fn to run once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	return s.At(s.clock.Now().Add(d), fn)
}

// Pending returns the number of queued timers.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// NextDue returns when the earliest timer is due.
func (s *Scheduler) NextDue() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return time.Time{}, false
	}
	return s.queue[0].at, true
}

// RunDue runs every timer due at the current time, including timers that
// become due while running. Returns the number of callbacks run.
func (s *Scheduler) RunDue() int {
	ran := 0
	for {
		now := s.clock.Now()
		s.mu.Lock()
		if len(s.queue) == 0 || s.queue[0].at.After(now) {
			s.mu.Unlock()
			return ran
		}
		timer := heap.Pop(&s.queue).(*Timer)
		timer.fired = true
		fn := timer.fn
		timer.fn = nil
		s.mu.Unlock()

		if fn != nil {
			fn()
			ran++
		}
	}
}

// Run drives the scheduler with real timers until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.RunDue()

		wait := time.Duration(-1)
		if due, ok := s.NextDue(); ok {
			wait = max(due.Sub(s.clock.Now()), 0)
		}

		var fire <-chan time.Time
		if wait >= 0 {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(wait)
			fire = timer.C
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake:
		case <-fire:
		}
	}
}

func (s *Scheduler) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Timer is a single scheduled callback.
type Timer struct {
	sched *Scheduler
	at    time.Time
	fn    func()
	seq   uint64
	index int
	fired bool
}

// Stop cancels the timer. Returns false if it already ran or was stopped.
func (t *Timer) Stop() bool {
	if t == nil {
		return false
	}
	s := t.sched
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.fired || t.index < 0 {
		return false
	}
	heap.Remove(&s.queue, t.index)
	t.fn = nil
	return true
}

// When returns the time the timer is due.
func (t *Timer) When() time.Time {
	return t.at
}

// timerQueue is a min-heap ordered by due time, then insertion order.
type timerQueue []*Timer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].at.Equal(q[j].at) {
		return q[i].seq < q[j].seq
	}
	return q[i].at.Before(q[j].at)
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*Timer)
	t.index = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.index = -1
	*q = old[:n-1]
	return t
}
