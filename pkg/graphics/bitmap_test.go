package graphics

import (
	"image"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	src := New(3, 2)
	src.SetGray(1, 1, On)
	sub := src.SubImage(image.Rect(1, 1, 3, 2)).(*image.Gray)

	c := Clone(sub)
	if c.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Fatalf("Clone bounds = %v, want origin-anchored 2x1", c.Bounds())
	}
	if !Lit(c.GrayAt(0, 0).Y) {
		t.Error("Clone lost the lit pixel")
	}
	c.SetGray(1, 0, On)
	if Lit(src.GrayAt(2, 1).Y) {
		t.Error("writing to the clone changed the source")
	}
	if Clone(nil) != nil {
		t.Error("Clone(nil) should be nil")
	}
}

func TestEqual(t *testing.T) {
	a := New(2, 2)
	b := New(2, 2)
	if !Equal(a, b) {
		t.Error("blank bitmaps should be equal")
	}
	b.SetGray(0, 1, On)
	if Equal(a, b) {
		t.Error("bitmaps differing in one pixel should not be equal")
	}
	if Equal(a, New(2, 3)) {
		t.Error("bitmaps of different size should not be equal")
	}
	if !Equal(nil, nil) || Equal(a, nil) {
		t.Error("nil handling")
	}

	big := New(4, 4)
	big.SetGray(2, 3, On)
	sub := big.SubImage(image.Rect(1, 2, 3, 4)).(*image.Gray)
	want := New(2, 2)
	want.SetGray(1, 1, On)
	if !Equal(sub, want) {
		t.Error("Equal should ignore bounds origins")
	}
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name string
		img  *image.Gray
		want bool
	}{
		{"nil", nil, true},
		{"zero width", New(0, 4), true},
		{"zero height", New(4, 0), true},
		{"1x1", New(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Empty(tt.img); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInvert(t *testing.T) {
	img := New(2, 1)
	img.SetGray(0, 0, On)
	inv := Invert(img)
	if Lit(inv.GrayAt(0, 0).Y) || !Lit(inv.GrayAt(1, 0).Y) {
		t.Error("Invert did not swap pixels")
	}
	if !Lit(img.GrayAt(0, 0).Y) {
		t.Error("Invert modified its input")
	}
}

func TestCropAndPaste(t *testing.T) {
	img := New(4, 4)
	Fill(img, image.Rect(1, 1, 3, 3), true)
	if got := Count(img); got != 4 {
		t.Fatalf("Count after Fill = %d, want 4", got)
	}

	part := Crop(img, image.Rect(2, 2, 6, 6))
	if part.Bounds().Size() != image.Pt(4, 4) {
		t.Fatalf("Crop size = %v", part.Bounds().Size())
	}
	if Count(part) != 1 || !Lit(part.GrayAt(0, 0).Y) {
		t.Errorf("Crop should keep one lit pixel at the origin, got %d", Count(part))
	}

	dst := New(3, 3)
	Fill(dst, dst.Bounds(), true)
	Paste(dst, New(2, 2), image.Pt(2, 2))
	if got := Count(dst); got != 8 {
		t.Errorf("Paste should overwrite and clip, lit = %d, want 8", got)
	}
}

func TestOutline(t *testing.T) {
	img := New(4, 3)
	Outline(img, img.Bounds(), true)
	if got := Count(img); got != 10 {
		t.Errorf("Outline lit %d pixels, want 10", got)
	}
	if Lit(img.GrayAt(1, 1).Y) {
		t.Error("Outline filled the interior")
	}
}

func TestSizeString(t *testing.T) {
	if got := SizeString(image.Pt(128, 64)); got != "128x64" {
		t.Errorf("SizeString = %q", got)
	}
}
