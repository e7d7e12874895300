package widgets

import (
	"image"
	"math"
	"sync"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

const (
	// DefaultVisibleRows is used when ListConfig.VisibleRows is zero.
	DefaultVisibleRows = 4
	// DefaultScrollDuration is the scroll transition length when
	// ListConfig.Duration is zero. Use a negative duration to scroll without
	// animating.
	DefaultScrollDuration = 150 * time.Millisecond

	scrollbarWidth = 3
)

// ListConfig describes a List.
type ListConfig struct {
	// Rows creates one row component each. Rows are created lazily in
	// virtual mode and eagerly otherwise.
	Rows []core.Factory
	// VisibleRows is the number of rows shown at once. Defaults to
	// DefaultVisibleRows.
	VisibleRows int
	// Gap is the number of blank pixels between rows.
	Gap int
	// Virtual keeps only the rows on screen alive. Rows that scroll fully out
	// of view are destroyed and recreated from their factory when they
	// return.
	Virtual bool
	// Duration is the scroll transition length. Zero uses
	// DefaultScrollDuration; negative disables the animation.
	Duration time.Duration
	// BaseStep is the nominal pixels moved per transition step. Zero uses
	// animation.DefaultBaseStep.
	BaseStep int
	// Scrollbar draws a scrollbar on the right edge when not every row fits.
	Scrollbar bool
}

// listState is the scroll position. Top is the first visible row when idle.
// During a transition Dir is +1 (down) or -1 (up), Target is the new top,
// Rows is how many row pitches the strip moves and Offset is how many pixels
// have been travelled. Generation changes whenever the row set is replaced.
type listState struct {
	Top        int
	Target     int
	Dir        int
	Rows       int
	Offset     int
	Generation int
}

// rowAt maps position k of the strip being drawn to a row index. Idle, the
// strip is the window itself. Scrolling by more than a window, the strip is
// the old window followed directly by the new one, so rows in between are
// never built.
func (s listState) rowAt(k, visible int) int {
	switch {
	case s.Dir > 0 && k >= visible:
		return s.Target + k - s.Rows
	case s.Dir < 0 && k < s.Rows:
		return s.Target + k
	case s.Dir < 0:
		return s.Top + k - s.Rows
	default:
		return s.Top + k
	}
}

// List shows a vertical window of equally sized rows and scrolls it with an
// animated transition.
//
//	list := widgets.NewList(widgets.ListConfig{
//	    Rows:        []core.Factory{widgets.LabelRow("Clock", clock), widgets.LabelRow("About", about)},
//	    VisibleRows: 4,
//	    Gap:         1,
//	    Scrollbar:   true,
//	})
//
// Scroll requests are ignored while a transition is running, when the
// distance is zero, or when the window would move past the first or last
// row.
type List struct {
	core.Base
	cfg ListConfig

	state *core.State[listState]

	mu         sync.Mutex
	factories  []core.Factory
	rows       map[int]core.Component
	moving     bool
	transition *animation.Transition

	// highlight marks rows drawn inverted. Set by SelectableList.
	highlight func(index int) bool
}

// NewList creates a List. The returned component must be wired with
// core.NewRoot, CreateChild or core.Child before use.
func NewList(cfg ListConfig) *List {
	return &List{cfg: cfg.withDefaults()}
}

func (cfg ListConfig) withDefaults() ListConfig {
	if cfg.VisibleRows <= 0 {
		cfg.VisibleRows = DefaultVisibleRows
	}
	cfg.Gap = max(cfg.Gap, 0)
	if cfg.Duration == 0 {
		cfg.Duration = DefaultScrollDuration
	}
	return cfg
}

// Init materializes the initial rows.
func (l *List) Init() {
	l.state = core.NewState(l, listState{})
	l.mu.Lock()
	l.factories = l.cfg.Rows
	l.rows = make(map[int]core.Component)
	l.mu.Unlock()
	l.materialize(l.initialRange())
}

// Cleanup stops a running transition.
func (l *List) Cleanup() {
	l.mu.Lock()
	tr := l.transition
	l.transition = nil
	l.moving = false
	l.mu.Unlock()
	if tr != nil {
		tr.Stop()
	}
}

func (l *List) initialRange() (int, int) {
	if !l.cfg.Virtual {
		return 0, len(l.factories)
	}
	return 0, min(l.cfg.VisibleRows, len(l.factories))
}

// materialize creates any missing rows in [from, to).
func (l *List) materialize(from, to int) {
	for i := from; i < to; i++ {
		l.mu.Lock()
		_, ok := l.rows[i]
		var f core.Factory
		if !ok && i >= 0 && i < len(l.factories) {
			f = l.factories[i]
		}
		l.mu.Unlock()
		if f == nil {
			continue
		}
		c := l.CreateChild(f)
		l.mu.Lock()
		l.rows[i] = c
		l.mu.Unlock()
	}
}

// release destroys the rows in [from, to).
func (l *List) release(from, to int) {
	var gone []core.Component
	l.mu.Lock()
	for i := from; i < to; i++ {
		if c, ok := l.rows[i]; ok {
			gone = append(gone, c)
			delete(l.rows, i)
		}
	}
	l.mu.Unlock()
	for _, c := range gone {
		l.RemoveChild(c)
	}
}

// SetRows replaces the row factories, destroys every materialized row and
// resets the window to the top.
func (l *List) SetRows(rows []core.Factory) {
	l.Cleanup()
	l.mu.Lock()
	old := l.rows
	l.rows = make(map[int]core.Component)
	l.factories = rows
	l.mu.Unlock()
	for _, c := range old {
		l.RemoveChild(c)
	}
	l.materialize(l.initialRange())
	l.state.Update(func(s listState) listState {
		return listState{Generation: s.Generation + 1}
	})
}

// ScrollUp moves the window up by n rows.
func (l *List) ScrollUp(n int) bool { return l.scroll(-n) }

// ScrollDown moves the window down by n rows.
func (l *List) ScrollDown(n int) bool { return l.scroll(n) }

// ScrollToTop moves the window to the first row.
func (l *List) ScrollToTop() bool { return l.scroll(-l.TopIndex()) }

// ScrollToBottom moves the window so the last row is visible.
func (l *List) ScrollToBottom() bool { return l.scroll(l.maxTop() - l.TopIndex()) }

func (l *List) maxTop() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return max(len(l.factories)-l.cfg.VisibleRows, 0)
}

func (l *List) scroll(delta int) bool {
	return l.scrollThen(delta, nil)
}

// scrollThen scrolls by delta and calls done once the window has settled.
// done is not called if the scroll is ignored.
func (l *List) scrollThen(delta int, done func()) bool {
	if delta == 0 || l.Destroyed() {
		return false
	}
	maxTop := l.maxTop()

	l.mu.Lock()
	if l.moving {
		l.mu.Unlock()
		return false
	}
	cur := l.state.Value()
	top := cur.Top
	target := top + delta
	if target < 0 || target > maxTop {
		l.mu.Unlock()
		return false
	}
	l.moving = true
	l.mu.Unlock()

	visible := l.cfg.VisibleRows
	dir, n := 1, delta
	if delta < 0 {
		dir, n = -1, -delta
	}
	moved := min(n, visible)
	if l.cfg.Virtual {
		if dir > 0 {
			l.materialize(max(top+visible, target), target+visible)
		} else {
			l.materialize(target, min(target+visible, top))
		}
	}

	gen := cur.Generation
	l.state.Set(listState{Top: top, Target: target, Dir: dir, Rows: moved, Generation: gen})

	duration := l.cfg.Duration
	if duration < 0 {
		duration = 0
	}
	tr := l.Scheduler().Animate(animation.TransitionSpec{
		Kind:     "scroll",
		Distance: moved * l.pitch(),
		Duration: duration,
		BaseStep: l.cfg.BaseStep,
		OnStep: func(travelled int) {
			l.state.Update(func(s listState) listState {
				s.Offset = travelled
				return s
			})
		},
		OnDone: func() { l.settle(top, target, gen, done) },
	})

	l.mu.Lock()
	if l.moving {
		l.transition = tr
	}
	l.mu.Unlock()
	return true
}

// settle finishes a transition: the window moves to target and, in virtual
// mode, the rows that left the screen are destroyed. done runs last.
func (l *List) settle(top, target, gen int, done func()) {
	l.state.Set(listState{Top: target, Generation: gen})

	if l.cfg.Virtual {
		visible := l.cfg.VisibleRows
		if target > top {
			l.release(top, min(target, top+visible))
		} else {
			l.release(max(target+visible, top), top+visible)
		}
	}

	l.mu.Lock()
	l.moving = false
	l.transition = nil
	l.mu.Unlock()

	if done != nil {
		done()
	}
}

// pitch is the row height plus the gap, from the last rendered size. Zero
// before the first render.
func (l *List) pitch() int {
	h := l.rowHeight(l.Size().Y)
	if h == 0 {
		return 0
	}
	return h + l.cfg.Gap
}

func (l *List) rowHeight(height int) int {
	v := l.cfg.VisibleRows
	avail := height - (v-1)*l.cfg.Gap
	if avail <= 0 {
		return 0
	}
	return (avail + v - 1) / v
}

// RowHeight returns the height of one row at the last rendered size.
func (l *List) RowHeight() int {
	return l.rowHeight(l.Size().Y)
}

// TopIndex returns the index of the first visible row.
func (l *List) TopIndex() int {
	return l.state.Value().Top
}

// RowCount returns the number of rows.
func (l *List) RowCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.factories)
}

// VisibleRows returns the number of rows shown at once.
func (l *List) VisibleRows() int { return l.cfg.VisibleRows }

// Materialized returns the number of rows currently alive.
func (l *List) Materialized() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.rows)
}

// Row returns the component for row i, or nil if it is not materialized.
func (l *List) Row(i int) core.Component {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rows[i]
}

// InTransition reports whether a scroll transition is running.
func (l *List) InTransition() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.moving
}

// Paint composes the visible rows. During a transition the strip of rows
// covering both the old and new window is shifted by the travelled offset.
func (l *List) Paint(canvas *image.Gray) (*image.Gray, error) {
	size := canvas.Bounds().Size()
	s := l.state.Value()
	count := l.RowCount()

	rowH := l.rowHeight(size.Y)
	if rowH <= 0 || count == 0 {
		return canvas, nil
	}
	pitch := rowH + l.cfg.Gap
	showBar := l.cfg.Scrollbar && count > l.cfg.VisibleRows
	rowW := size.X
	if showBar {
		rowW = max(size.X-scrollbarWidth, 1)
	}

	// shift is how far the viewport has scrolled into the strip.
	shift := s.Offset
	if s.Dir < 0 {
		shift = s.Rows*pitch - s.Offset
	}
	visible := l.cfg.VisibleRows
	for k := 0; k < visible+s.Rows; k++ {
		y := k*pitch - shift
		i := s.rowAt(k, visible)
		if y+rowH <= 0 || y >= size.Y || i < 0 || i >= count {
			continue
		}
		row := l.Row(i)
		if row == nil {
			continue
		}
		out, err := row.Render(graphics.New(rowW, rowH))
		if err != nil {
			return nil, err
		}
		if l.highlight != nil && l.highlight(i) {
			out = graphics.Invert(out)
		}
		graphics.Paste(canvas, out, image.Pt(0, y))
	}

	if showBar {
		l.paintScrollbar(canvas, s, count, pitch)
	}
	return canvas, nil
}

func (l *List) paintScrollbar(canvas *image.Gray, s listState, count, pitch int) {
	size := canvas.Bounds().Size()
	x := size.X - scrollbarWidth + 1
	for y := 0; y < size.Y; y += 2 {
		graphics.Fill(canvas, image.Rect(x+1, y, x+2, y+1), true)
	}

	visible := l.cfg.VisibleRows
	thumb := max(int(math.Round(float64(size.Y*visible)/float64(count))), 2)
	pos := float64(s.Top)
	if s.Dir != 0 && s.Rows > 0 && pitch > 0 {
		progress := float64(s.Offset) / float64(s.Rows*pitch)
		pos += float64(s.Target-s.Top) * progress
	}
	maxTop := float64(max(count-visible, 1))
	y := int(math.Round(pos / maxTop * float64(size.Y-thumb)))
	graphics.Fill(canvas, image.Rect(x, y, x+2, y+thumb), true)
}
