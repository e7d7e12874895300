package navigation

import (
	"image"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// GutterWidth is the width of the Shell's icon column.
const GutterWidth = 7

// ShellConfig describes a Shell.
type ShellConfig struct {
	// Home is the first screen.
	Home core.Factory
	// Duration is the push and pop slide length.
	Duration time.Duration
	// BaseStep is the nominal pixels moved per slide step.
	BaseStep int
	// HideGutter draws the stack across the full width with no hints.
	HideGutter bool
}

// Shell is a root component: a Stack with an icon gutter on the right edge
// hinting at which buttons the active screen responds to.
type Shell struct {
	core.Base
	cfg    ShellConfig
	stack  *Stack
	dialog *core.State[*dialog]
}

// NewShell creates a Shell.
func NewShell(cfg ShellConfig) *Shell {
	return &Shell{cfg: cfg}
}

// Init creates the stack with the home screen.
func (s *Shell) Init() {
	s.stack = core.Child(s, NewStack(StackConfig{
		Root:     s.cfg.Home,
		Duration: s.cfg.Duration,
		BaseStep: s.cfg.BaseStep,
	}))
	s.dialog = core.NewState[*dialog](s, nil)
}

// Stack returns the shell's navigator.
func (s *Shell) Stack() *Stack { return s.stack }

// Handle dispatches a button to the open dialog, or else to the active
// screen.
func (s *Shell) Handle(b Button) bool {
	if d := s.dialog.Value(); d != nil {
		return s.handleDialog(d, b)
	}
	return Dispatch(s.stack, b)
}

// Gutter returns the hints for the active screen.
func (s *Shell) Gutter() Gutter {
	if s.cfg.HideGutter {
		return Gutter{}
	}
	if d := s.dialog.Value(); d != nil {
		return d.gutter()
	}
	return GutterFor(s.stack.ActiveComponent(), s.stack.Context())
}

// Paint renders the stack beside the gutter, with any dialog on top.
func (s *Shell) Paint(canvas *image.Gray) (*image.Gray, error) {
	size := canvas.Bounds().Size()
	gutter := !s.cfg.HideGutter && size.X > GutterWidth
	content := image.Rect(0, 0, size.X, size.Y)
	if gutter {
		content.Max.X -= GutterWidth
	}

	out, err := s.stack.Render(graphics.Crop(canvas, content))
	if err != nil {
		return nil, err
	}
	graphics.Paste(canvas, out, image.Point{})
	if d := s.dialog.Value(); d != nil {
		d.paint(canvas, content)
	}
	if !gutter {
		return canvas, nil
	}

	x := size.X - GutterWidth
	graphics.Fill(canvas, image.Rect(x, 0, x+1, size.Y), true)
	g := s.Gutter()
	slots := []struct {
		icon graphics.Icon
		y    int
	}{
		{g.Up, 1},
		{g.Select, size.Y/2 - 6},
		{g.Back, size.Y/2 + 1},
		{g.Down, size.Y - 4},
	}
	for _, slot := range slots {
		if !slot.icon.IsZero() {
			slot.icon.Draw(canvas, image.Pt(x+2, slot.y))
		}
	}
	return canvas, nil
}
