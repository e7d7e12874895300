package core_test

import (
	"testing"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

func TestRenderCache(t *testing.T) {
	var c core.RenderCache
	in := graphics.New(3, 3)
	out := graphics.New(3, 3)
	out.SetGray(1, 1, graphics.On)

	if _, ok := c.Lookup(in); ok {
		t.Fatal("empty cache reported a hit")
	}

	c.Store(in, out)
	out.SetGray(0, 0, graphics.On)
	in.SetGray(2, 2, graphics.On)

	if _, ok := c.Lookup(in); ok {
		t.Error("cache matched an input that changed after Store")
	}
	got, ok := c.Lookup(graphics.New(3, 3))
	if !ok {
		t.Fatal("expected a hit for the stored input")
	}
	if graphics.Count(got) != 1 {
		t.Errorf("cached output has %d lit pixels, want 1", graphics.Count(got))
	}

	got.SetGray(2, 0, graphics.On)
	if again, _ := c.Lookup(graphics.New(3, 3)); graphics.Count(again) != 1 {
		t.Error("writing to a looked-up image changed the cache")
	}
	if !c.OutputEquals(c.Output()) {
		t.Error("OutputEquals(Output()) = false")
	}
	if c.Input() == nil {
		t.Error("Input() = nil after Store")
	}

	c.Clear()
	if _, ok := c.Lookup(graphics.New(3, 3)); ok {
		t.Error("hit after Clear")
	}
	if c.Output() != nil {
		t.Error("Output() != nil after Clear")
	}
}
