// Package testing drives component trees deterministically.
//
// # Quick Start
//
// Create a tester, mount a root, and advance time:
//
//	func TestClock(t *testing.T) {
//	    tester := pdtest.NewComponentTesterWithT(t)
//	    if _, err := tester.Mount(func() core.Component { return newClock() }); err != nil {
//	        t.Fatal(err)
//	    }
//
//	    tester.Advance(time.Second)
//	    frame := tester.Frame()
//
//	    if tester.Redraws() != 1 {
//	        t.Errorf("expected one redraw, got %d", tester.Redraws())
//	    }
//	}
//
// The tester owns a [FakeClock] and a scheduler that only runs when the test
// advances time, so intervals and transitions fire exactly when asked.
//
// # Snapshots
//
// Frames print as ASCII art, one character per pixel:
//
//	pdtest.ASCII(frame).MatchesFile(t, "testdata/clock.txt")
//
// Update golden files with:
//
//	POCKETDASH_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import pdtest "github.com/go-drift/pocketdash/pkg/testing"
package testing
