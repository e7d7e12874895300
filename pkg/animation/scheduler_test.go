package animation_test

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/pocketdash/pkg/animation"
	pdtest "github.com/go-drift/pocketdash/pkg/testing"
)

func TestScheduler_RunsInDueOrder(t *testing.T) {
	clk := pdtest.NewFakeClock()
	s := animation.NewScheduler(clk)

	var order []string
	s.After(20*time.Millisecond, func() { order = append(order, "b") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(20*time.Millisecond, func() { order = append(order, "c") })
	s.After(30*time.Millisecond, func() { order = append(order, "late") })

	if s.Pending() != 4 {
		t.Fatalf("Pending() = %d, want 4", s.Pending())
	}
	if n := s.RunDue(); n != 0 {
		t.Fatalf("RunDue ran %d callbacks before anything was due", n)
	}

	clk.Advance(20 * time.Millisecond)
	if n := s.RunDue(); n != 3 {
		t.Errorf("RunDue() = %d, want 3", n)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	due, ok := s.NextDue()
	if !ok || due.Sub(pdtest.Epoch) != 30*time.Millisecond {
		t.Errorf("NextDue() = %v, %v", due, ok)
	}
}

func TestScheduler_CallbackSchedulesDueTimer(t *testing.T) {
	clk := pdtest.NewFakeClock()
	s := animation.NewScheduler(clk)

	ran := 0
	s.After(0, func() {
		ran++
		s.After(0, func() { ran++ })
	})
	if n := s.RunDue(); n != 2 || ran != 2 {
		t.Errorf("RunDue() = %d, ran = %d, want 2/2", n, ran)
	}
}

func TestTimer_Stop(t *testing.T) {
	clk := pdtest.NewFakeClock()
	s := animation.NewScheduler(clk)

	ran := false
	timer := s.After(time.Millisecond, func() { ran = true })
	if !timer.Stop() {
		t.Error("Stop() on a pending timer returned false")
	}
	if timer.Stop() {
		t.Error("second Stop() returned true")
	}
	clk.Advance(time.Second)
	s.RunDue()
	if ran {
		t.Error("stopped timer ran")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", s.Pending())
	}

	fired := s.After(0, func() {})
	s.RunDue()
	if fired.Stop() {
		t.Error("Stop() after firing returned true")
	}

	var nilTimer *animation.Timer
	if nilTimer.Stop() {
		t.Error("nil Stop() returned true")
	}
}

func TestScheduler_StopOtherTimerFromCallback(t *testing.T) {
	clk := pdtest.NewFakeClock()
	s := animation.NewScheduler(clk)

	ran := false
	var second *animation.Timer
	s.After(time.Millisecond, func() { second.Stop() })
	second = s.After(time.Millisecond, func() { ran = true })

	clk.Advance(time.Millisecond)
	s.RunDue()
	if ran {
		t.Error("timer stopped by an earlier callback still ran")
	}
}

func TestScheduler_Run(t *testing.T) {
	s := animation.NewScheduler(animation.SystemClock)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()

	fired := make(chan struct{})
	s.After(5*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("timer did not fire under Run")
	}

	cancel()
	if err := <-errc; !stderrors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want context.Canceled", err)
	}
}

func TestSetClock(t *testing.T) {
	clk := pdtest.NewFakeClock()
	prev := animation.SetClock(clk)
	defer animation.SetClock(prev)

	if !animation.Now().Equal(pdtest.Epoch) {
		t.Errorf("Now() = %v, want the fake epoch", animation.Now())
	}
	s := animation.NewScheduler(nil)
	clk.Advance(time.Minute)
	if got := s.Now().Sub(pdtest.Epoch); got != time.Minute {
		t.Errorf("scheduler without a clock ignored SetClock: %v", got)
	}
}

func TestSetClock_WhileDefaultSchedulerRuns(t *testing.T) {
	s := animation.DefaultScheduler()
	fired := make(chan struct{}, 100)
	for i := range 50 {
		s.After(time.Duration(i)*time.Millisecond, func() { fired <- struct{}{} })
	}

	lagging := laggingClock(10 * time.Millisecond)
	prev := animation.SetClock(nil)
	for i := range 50 {
		if i%2 == 0 {
			animation.SetClock(lagging)
		} else {
			animation.SetClock(nil)
		}
		_ = animation.Now()
		time.Sleep(100 * time.Microsecond)
	}
	animation.SetClock(prev)

	// Every timer still fires on the wall clock.
	deadline := time.After(5 * time.Second)
	for range 50 {
		select {
		case <-fired:
		case <-deadline:
			t.Fatal("timers stopped firing after the clock was swapped")
		}
	}
}

// laggingClock reads the wall clock minus a fixed lag.
type laggingClock time.Duration

func (c laggingClock) Now() time.Time { return time.Now().Add(-time.Duration(c)) }
