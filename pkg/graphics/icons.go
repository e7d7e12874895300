package graphics

import (
	"image"
	"strings"
)

// Icon is a small fixed bitmap described row by row, '#' for lit pixels.
type Icon struct {
	Name string
	rows []string
}

// NewIcon parses an icon from rows of '#' and '.' characters.
func NewIcon(name string, rows ...string) Icon {
	return Icon{Name: name, rows: rows}
}

// Size returns the icon's dimensions.
func (i Icon) Size() image.Point {
	w := 0
	for _, r := range i.rows {
		w = max(w, len(r))
	}
	return image.Pt(w, len(i.rows))
}

// IsZero reports whether the icon has no pixels.
func (i Icon) IsZero() bool {
	return len(i.rows) == 0
}

// Draw paints the icon's lit pixels onto img at at.
func (i Icon) Draw(img *image.Gray, at image.Point) {
	if img == nil {
		return
	}
	origin := img.Bounds().Min.Add(at)
	for y, row := range i.rows {
		for x, c := range row {
			if c != '#' {
				continue
			}
			p := origin.Add(image.Pt(x, y))
			if p.In(img.Bounds()) {
				img.SetGray(p.X, p.Y, On)
			}
		}
	}
}

func (i Icon) String() string {
	return strings.Join(i.rows, "\n")
}

// Built-in gutter icons.
var (
	IconUp = NewIcon("up",
		"..#..",
		".###.",
		"#####",
	)
	IconDown = NewIcon("down",
		"#####",
		".###.",
		"..#..",
	)
	IconEnter = NewIcon("enter",
		"#....",
		"##...",
		"###..",
		"##...",
		"#....",
	)
	IconAction = NewIcon("action",
		".###.",
		"#...#",
		"#.#.#",
		"#...#",
		".###.",
	)
	IconBack = NewIcon("back",
		"....#",
		"...##",
		"..###",
		"...##",
		"....#",
	)
)
