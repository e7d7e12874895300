package widgets

import (
	"image"
	"strings"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// Text shows lines of static text from the top-left corner. Lines that do
// not fit are truncated; lines below the bottom edge are dropped.
type Text struct {
	core.Base
	initial string
	text    *core.State[string]
}

// NewText creates a Text showing the given lines.
func NewText(lines ...string) *Text {
	return &Text{initial: strings.Join(lines, "\n")}
}

// Init creates the text state.
func (t *Text) Init() {
	t.text = core.NewState(t, t.initial)
}

// Lines returns the current lines.
func (t *Text) Lines() []string {
	return strings.Split(t.text.Value(), "\n")
}

// SetLines replaces the text.
func (t *Text) SetLines(lines ...string) {
	t.text.Set(strings.Join(lines, "\n"))
}

// Paint draws one line per LineHeight from the top.
func (t *Text) Paint(canvas *image.Gray) (*image.Gray, error) {
	size := canvas.Bounds().Size()
	lh := graphics.LineHeight()
	for i, line := range t.Lines() {
		y := i * lh
		if y >= size.Y {
			break
		}
		graphics.DrawText(canvas, image.Pt(1, y), graphics.Truncate(line, size.X-1), true)
	}
	return canvas, nil
}
