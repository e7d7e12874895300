package navigation

import (
	"image"

	"github.com/go-drift/pocketdash/pkg/graphics"
)

// DialogOptions configures [Shell.ShowDialog].
type DialogOptions struct {
	// Lines is the dialog text, one entry per line.
	Lines []string
	// OnConfirm runs when Select is pressed, after the dialog closes.
	OnConfirm func()
	// Persistent ignores Back, so only Select closes the dialog.
	Persistent bool
}

// dialog is one shown dialog. Pointer identity tells a stale dismiss from a
// live one.
type dialog struct {
	opts DialogOptions
}

// ShowDialog draws a modal box over the active screen. While it is open,
// Select confirms, Back dismisses and every other button is swallowed. A
// second call replaces the open dialog.
//
// The returned dismiss function closes this dialog. It is safe to call more
// than once, and does nothing once another dialog has replaced it.
func (s *Shell) ShowDialog(opts DialogOptions) (dismiss func()) {
	d := &dialog{opts: opts}
	s.dialog.Set(d)
	return func() { s.closeDialog(d) }
}

// DialogOpen reports whether a dialog is showing.
func (s *Shell) DialogOpen() bool {
	return s.dialog.Value() != nil
}

func (s *Shell) closeDialog(d *dialog) {
	s.dialog.Update(func(cur *dialog) *dialog {
		if cur == d {
			return nil
		}
		return cur
	})
}

func (s *Shell) handleDialog(d *dialog, b Button) bool {
	switch b {
	case ButtonSelect:
		s.closeDialog(d)
		if d.opts.OnConfirm != nil {
			d.opts.OnConfirm()
		}
		return true
	case ButtonBack:
		if d.opts.Persistent {
			return false
		}
		s.closeDialog(d)
		return true
	}
	return false
}

func (d *dialog) gutter() Gutter {
	g := Gutter{Select: graphics.IconAction}
	if !d.opts.Persistent {
		g.Back = graphics.IconBack
	}
	return g
}

// paint draws the dialog box centred in area.
func (d *dialog) paint(canvas *image.Gray, area image.Rectangle) {
	lh := graphics.LineHeight()
	w := area.Dx() - 8
	h := min(len(d.opts.Lines)*lh+4, area.Dy()-2)
	if w <= 6 || h <= 2 {
		return
	}
	x := area.Min.X + (area.Dx()-w)/2
	y := area.Min.Y + (area.Dy()-h)/2
	box := image.Rect(x, y, x+w, y+h)

	graphics.Fill(canvas, box, false)
	graphics.Outline(canvas, box, true)
	for i, line := range d.opts.Lines {
		ty := y + 2 + i*lh
		if ty+lh > box.Max.Y-1 {
			break
		}
		graphics.DrawText(canvas, image.Pt(x+3, ty), graphics.Truncate(line, w-6), true)
	}
}
