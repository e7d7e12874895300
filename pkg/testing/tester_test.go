package testing

import (
	"image"
	"testing"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// blinker lights its top-left pixel on alternate ticks.
type blinker struct {
	core.Base
	on *core.State[bool]
}

func (b *blinker) Init() {
	b.on = core.NewState(b, false)
	b.CreateInterval(func() {
		b.on.Update(func(v bool) bool { return !v })
	}, 100*time.Millisecond)
}

func (b *blinker) Paint(canvas *image.Gray) (*image.Gray, error) {
	if b.on.Value() {
		canvas.SetGray(0, 0, graphics.On)
	}
	return canvas, nil
}

func TestComponentTester_Defaults(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	if _, err := tester.Mount(func() core.Component { return &blinker{} }); err != nil {
		t.Fatal(err)
	}
	size := tester.Frame().Bounds().Size()
	if size.X != DefaultWidth || size.Y != DefaultHeight {
		t.Errorf("frame size = %v, want %dx%d", size, DefaultWidth, DefaultHeight)
	}
}

func TestComponentTester_SetSize(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	tester.SetSize(8, 4)
	if _, err := tester.Mount(func() core.Component { return &blinker{} }); err != nil {
		t.Fatal(err)
	}
	if got := tester.Frame().Bounds().Size(); got != image.Pt(8, 4) {
		t.Errorf("frame size = %v, want 8x4", got)
	}
}

func TestComponentTester_AdvanceFiresIntervals(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	tester.SetSize(4, 2)
	if _, err := tester.Mount(func() core.Component { return &blinker{} }); err != nil {
		t.Fatal(err)
	}

	tester.Advance(99 * time.Millisecond)
	if tester.Redraws() != 0 {
		t.Fatalf("redraw before the first period: %d", tester.Redraws())
	}

	tester.Advance(time.Millisecond)
	if tester.Redraws() != 1 {
		t.Fatalf("Redraws() = %d after one period, want 1", tester.Redraws())
	}
	frame, err := tester.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got := ASCII(frame).Row(0); got != "#..." {
		t.Errorf("row 0 = %q, want %q", got, "#...")
	}

	tester.Advance(300 * time.Millisecond)
	if tester.Redraws() != 4 {
		t.Errorf("Redraws() = %d after four periods, want 4", tester.Redraws())
	}
}

func TestComponentTester_Remount(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	first, err := tester.Mount(func() core.Component { return &blinker{} })
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tester.Mount(func() core.Component { return &blinker{} }); err != nil {
		t.Fatal(err)
	}
	if !core.BaseOf(first).Destroyed() {
		t.Error("expected previous root to be destroyed on remount")
	}
}

func TestComponentTester_AdvanceUntil(t *testing.T) {
	tester := NewComponentTesterWithT(t)
	if _, err := tester.Mount(func() core.Component { return &blinker{} }); err != nil {
		t.Fatal(err)
	}

	err := tester.AdvanceUntil(func() bool { return tester.Redraws() >= 3 }, 50*time.Millisecond, time.Second)
	if err != nil {
		t.Fatalf("AdvanceUntil: %v", err)
	}
	if got := tester.Clock().Elapsed(); got != 300*time.Millisecond {
		t.Errorf("elapsed = %v, want 300ms", got)
	}

	err = tester.AdvanceUntil(func() bool { return false }, 50*time.Millisecond, 200*time.Millisecond)
	if err != ErrSettleTimeout {
		t.Errorf("expected ErrSettleTimeout, got %v", err)
	}
}
