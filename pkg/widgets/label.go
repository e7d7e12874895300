package widgets

import (
	"image"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/navigation"
)

var (
	_ navigation.Enterable  = (*Label)(nil)
	_ navigation.Actionable = (*Label)(nil)
)

// Label is a single line of text, typically a menu row. A Label may carry a
// target screen or an action; a SelectableList forwards select to it.
type Label struct {
	core.Base
	text    *core.State[string]
	initial string
	target  core.Factory
	action  func()
}

// NewLabel creates a label showing text.
func NewLabel(text string) *Label {
	return &Label{initial: text}
}

// TextRow returns a factory for a plain label.
func TextRow(text string) core.Factory {
	return func() core.Component { return NewLabel(text) }
}

// LabelRow returns a factory for a label that opens target on select.
func LabelRow(text string, target core.Factory) core.Factory {
	return func() core.Component {
		l := NewLabel(text)
		l.target = target
		return l
	}
}

// ActionRow returns a factory for a label that runs action on select.
func ActionRow(text string, action func()) core.Factory {
	return func() core.Component {
		l := NewLabel(text)
		l.action = action
		return l
	}
}

func (l *Label) Init() {
	l.text = core.NewState(l, l.initial)
}

// Text returns the label's text.
func (l *Label) Text() string { return l.text.Value() }

// SetText replaces the label's text.
func (l *Label) SetText(s string) { l.text.Set(s) }

// Target returns the screen to open on select, or nil.
func (l *Label) Target() core.Factory { return l.target }

// Action returns the action to run on select, or nil.
func (l *Label) Action() func() { return l.action }

// Paint draws the text left-aligned and vertically centered, truncated to
// fit. Rows with a target end in an arrow.
func (l *Label) Paint(canvas *image.Gray) (*image.Gray, error) {
	size := canvas.Bounds().Size()
	width := size.X - 1
	if l.target != nil {
		icon := graphics.IconEnter
		iw := icon.Size()
		icon.Draw(canvas, image.Pt(size.X-iw.X-1, (size.Y-iw.Y)/2))
		width -= iw.X + 2
	}
	y := (size.Y - graphics.LineHeight()) / 2
	graphics.DrawText(canvas, image.Pt(1, y), graphics.Truncate(l.text.Value(), width), true)
	return canvas, nil
}
