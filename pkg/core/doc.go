// Package core provides the component tree that every screen is built from.
//
// A component is a struct embedding Base that implements Paint. Base wraps
// Paint with the render contract (output size equals input size), memoizes the
// last (input, output) pair, owns the component's children and intervals, and
// reconciles the component when its State changes.
//
// # Components
//
//	type clock struct {
//	    core.Base
//	    now *core.State[string]
//	}
//
//	func (c *clock) Init() {
//	    c.now = core.NewState(c, time.Now().Format("15:04:05"))
//	    c.CreateInterval(func() {
//	        c.now.Set(time.Now().Format("15:04:05"))
//	    }, time.Second)
//	}
//
//	func (c *clock) Paint(canvas *image.Gray) (*image.Gray, error) {
//	    graphics.DrawText(canvas, image.Pt(0, 0), c.now.Value(), true)
//	    return canvas, nil
//	}
//
// # Ownership
//
// Children are created through CreateChild (or the generic Child helper) and
// belong to exactly one parent. Destroying a component runs its Cleanup hook,
// cancels its intervals, destroys its children and releases its visibility
// gate. Removing something a component does not own is reported and ignored.
//
// # Reconciliation
//
// A State change re-renders the owning component against its last input. The
// parent is notified only if the output changed, so a clock whose seconds are
// hidden does not redraw the display every second. Requests arriving while a
// pass is in flight are coalesced into one follow-up pass that reads the
// latest state.
//
// # Visibility
//
// After every real render a parent marks each child active if the child was
// rendered in that pass and the parent itself is active. Intervals wait while
// their owner is inactive, so offscreen list rows and backgrounded stack pages
// stop polling without being destroyed.
package core
