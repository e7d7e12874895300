// Package graphics holds the small set of 1-bit bitmap operations the
// component tree composes frames with.
//
// Frames are *image.Gray values whose pixels are either On (0xFF) or Off
// (0x00). Every helper that returns an image returns a fresh buffer anchored
// at the origin; callers never receive an alias of an input.
package graphics

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// New returns a dark bitmap of the given size.
func New(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, max(width, 0), max(height, 0)))
}

// NewSize returns a dark bitmap of size p.
func NewSize(p image.Point) *image.Gray {
	return New(p.X, p.Y)
}

// SizeString formats a size as "WxH".
func SizeString(p image.Point) string {
	return fmt.Sprintf("%dx%d", p.X, p.Y)
}

// Empty reports whether img is nil or has no pixels.
func Empty(img *image.Gray) bool {
	return img == nil || img.Bounds().Dx() <= 0 || img.Bounds().Dy() <= 0
}

// Clone returns an independent copy of img anchored at the origin.
func Clone(img *image.Gray) *image.Gray {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], src[:b.Dx()])
	}
	return out
}

// Equal reports whether a and b have the same size and pixel content.
// Bounds origins are ignored.
func Equal(a, b *image.Gray) bool {
	if a == nil || b == nil {
		return a == b
	}
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Size() != bb.Size() {
		return false
	}
	w := ab.Dx()
	for y := 0; y < ab.Dy(); y++ {
		ra := a.Pix[a.PixOffset(ab.Min.X, ab.Min.Y+y):][:w]
		rb := b.Pix[b.PixOffset(bb.Min.X, bb.Min.Y+y):][:w]
		if string(ra) != string(rb) {
			return false
		}
	}
	return true
}

// Invert returns a copy of img with lit and dark pixels swapped.
func Invert(img *image.Gray) *image.Gray {
	out := Clone(img)
	if out == nil {
		return nil
	}
	for i, y := range out.Pix {
		out.Pix[i] = 0xFF - y
	}
	return out
}

// Crop returns a copy of the part of img inside r, where r is relative to
// img's origin. Parts of r outside img are dark.
func Crop(img *image.Gray, r image.Rectangle) *image.Gray {
	out := New(r.Dx(), r.Dy())
	if img == nil {
		return out
	}
	src := r.Add(img.Bounds().Min)
	draw.Copy(out, image.Point{}, img, src, draw.Src, nil)
	return out
}

// Paste copies src onto dst with src's top-left corner at at (relative to
// dst's origin). Pixels falling outside dst are dropped.
func Paste(dst, src *image.Gray, at image.Point) {
	if dst == nil || src == nil {
		return
	}
	draw.Copy(dst, dst.Bounds().Min.Add(at), src, src.Bounds(), draw.Src, nil)
}

// Fill sets every pixel of r (relative to img's origin) to On or Off.
func Fill(img *image.Gray, r image.Rectangle, lit bool) {
	if img == nil {
		return
	}
	r = r.Add(img.Bounds().Min).Intersect(img.Bounds())
	draw.Draw(img, r, image.NewUniform(Pixel(lit)), image.Point{}, draw.Src)
}

// Outline draws a one pixel border around r.
func Outline(img *image.Gray, r image.Rectangle, lit bool) {
	if r.Empty() {
		return
	}
	Fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), lit)
	Fill(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), lit)
	Fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), lit)
	Fill(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), lit)
}

// Count returns the number of lit pixels in img.
func Count(img *image.Gray) int {
	if img == nil {
		return 0
	}
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if Lit(img.GrayAt(x, y).Y) {
				n++
			}
		}
	}
	return n
}
