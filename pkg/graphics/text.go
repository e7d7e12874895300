package graphics

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap font used for all text. It has no antialiasing, so
// drawn glyphs stay strictly 1-bit.
var Face font.Face = basicfont.Face7x13

// LineHeight returns the height in pixels of one line of text.
func LineHeight() int {
	return Face.Metrics().Height.Ceil()
}

// Ascent returns the distance from the top of a line to its baseline.
func Ascent() int {
	return Face.Metrics().Ascent.Ceil()
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(s string) int {
	return font.MeasureString(Face, s).Ceil()
}

// DrawText draws s with the top-left of its line box at at. Glyphs falling
// outside img are clipped.
func DrawText(img *image.Gray, at image.Point, s string, lit bool) {
	if img == nil || s == "" {
		return
	}
	origin := img.Bounds().Min.Add(at)
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(Pixel(lit)),
		Face: Face,
		Dot:  fixed.P(origin.X, origin.Y+Ascent()),
	}
	d.DrawString(s)
}

// Truncate shortens s so it fits in width pixels, replacing the tail with
// "~" when characters were dropped.
func Truncate(s string, width int) string {
	if TextWidth(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "~"
		if TextWidth(candidate) <= width {
			return candidate
		}
	}
	return ""
}
