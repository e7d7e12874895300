package graphics

import "image/color"

// threshold separates lit from dark pixels when reading gray values.
const threshold = 0x80

var (
	// On is a lit pixel.
	On = color.Gray{Y: 0xFF}
	// Off is a dark pixel.
	Off = color.Gray{Y: 0x00}
)

// Lit reports whether a gray value counts as a lit pixel.
func Lit(y uint8) bool {
	return y >= threshold
}

// Pixel returns On when lit is true and Off otherwise.
func Pixel(lit bool) color.Gray {
	if lit {
		return On
	}
	return Off
}
