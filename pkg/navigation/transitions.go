package navigation

import (
	"image"

	"github.com/go-drift/pocketdash/pkg/graphics"
)

// SlideDirection is the direction a stack transition moves in.
type SlideDirection int

const (
	// SlideNone means no transition is running.
	SlideNone SlideDirection = iota
	// SlideIn is a push: the new screen enters from the right.
	SlideIn
	// SlideOut is a pop: the top screen leaves to the right.
	SlideOut
)

func (d SlideDirection) String() string {
	switch d {
	case SlideIn:
		return "in"
	case SlideOut:
		return "out"
	default:
		return "none"
	}
}

// slideVisible returns how many columns of the foreground show after
// travelled pixels of a slide across width.
func slideVisible(dir SlideDirection, travelled, width int) int {
	travelled = min(max(travelled, 0), width)
	if dir == SlideOut {
		return width - travelled
	}
	return travelled
}

// composeSlide draws bg across canvas, then the left visible columns of fg
// right-aligned on top of it.
func composeSlide(canvas, bg, fg *image.Gray, visible int) *image.Gray {
	size := canvas.Bounds().Size()
	if bg != nil {
		graphics.Paste(canvas, bg, image.Point{})
	}
	if fg != nil && visible > 0 {
		part := graphics.Crop(fg, image.Rect(0, 0, visible, size.Y))
		graphics.Paste(canvas, part, image.Pt(size.X-visible, 0))
	}
	return canvas
}
