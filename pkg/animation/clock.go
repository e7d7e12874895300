package animation

import (
	"sync/atomic"
	"time"
)

// Clock provides time for schedulers and steppers. The default implementation
// uses system time. Tests inject a fake clock via NewScheduler or SetClock to
// control timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}

// clockRef boxes a Clock so differing implementations can share one
// atomic.Pointer.
type clockRef struct{ c Clock }

// clock is the package-level time source, replaceable for testing. Schedulers
// built without an explicit clock read it from their own goroutines.
var clock atomic.Pointer[clockRef]

func init() {
	clock.Store(&clockRef{SystemClock})
}

// SetClock replaces the package clock used by schedulers created without an
// explicit clock. Returns the previous clock so callers can restore it during
// cleanup. It is safe to call while such schedulers are running.
func SetClock(c Clock) Clock {
	if c == nil {
		c = SystemClock
	}
	return clock.Swap(&clockRef{c}).c
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Load().c.Now() }

// packageClock forwards to whatever SetClock installed last.
type packageClock struct{}

func (packageClock) Now() time.Time { return Now() }
