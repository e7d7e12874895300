package core_test

import (
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/errors"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// recordingHandler captures reported errors instead of logging them.
type recordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.FrameworkError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.FrameworkError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func (h *recordingHandler) kinds() []errors.ErrorKind {
	h.mu.Lock()
	defer h.mu.Unlock()
	kinds := make([]errors.ErrorKind, len(h.errs))
	for i, err := range h.errs {
		kinds[i] = err.Kind
	}
	return kinds
}

func (h *recordingHandler) panicCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.panics)
}

func recordErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

// counter lights pixel (value, 0) and counts paint calls.
type counter struct {
	core.Base
	value   *core.State[int]
	paints  atomic.Int32
	changes atomic.Int32
}

func (c *counter) Init() {
	c.value = core.NewState(c, 0)
	c.value.OnChange(func(int) { c.changes.Add(1) })
}

func (c *counter) Paint(canvas *image.Gray) (*image.Gray, error) {
	c.paints.Add(1)
	v := c.value.Value()
	if v >= 0 && v < canvas.Bounds().Dx() {
		canvas.SetGray(v, 0, graphics.On)
	}
	return canvas, nil
}

// ticker owns one interval and counts its ticks.
type ticker struct {
	core.Base
	period   time.Duration
	ticks    atomic.Int32
	interval *core.Interval
	cleaned  atomic.Bool
}

func (t *ticker) Init() {
	t.interval = t.CreateInterval(func() { t.ticks.Add(1) }, t.period)
}

func (t *ticker) Cleanup() { t.cleaned.Store(true) }

func (t *ticker) Paint(canvas *image.Gray) (*image.Gray, error) {
	return canvas, nil
}

// switcher renders exactly one of its children, chosen by state.
type switcher struct {
	core.Base
	factories []core.Factory
	kids      []core.Component
	selected  *core.State[int]
}

func (s *switcher) Init() {
	s.selected = core.NewState(s, 0)
	for _, f := range s.factories {
		s.kids = append(s.kids, s.CreateChild(f))
	}
}

func (s *switcher) Paint(canvas *image.Gray) (*image.Gray, error) {
	return s.kids[s.selected.Value()].Render(canvas)
}

// painter paints with an arbitrary function.
type painter struct {
	core.Base
	fn func(*image.Gray) (*image.Gray, error)
}

func (p *painter) Paint(canvas *image.Gray) (*image.Gray, error) {
	return p.fn(canvas)
}
