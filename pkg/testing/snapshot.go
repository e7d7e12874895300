package testing

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/pocketdash/pkg/graphics"
)

const (
	litChar   = '#'
	unlitChar = '.'
)

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot is a frame printed as ASCII art: one line per pixel row, '#' for
// lit pixels and '.' for unlit ones.
type Snapshot string

// ASCII prints img as a Snapshot.
func ASCII(img *image.Gray) Snapshot {
	if img == nil {
		return ""
	}
	r := img.Bounds()
	var sb strings.Builder
	sb.Grow((r.Dx() + 1) * r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if graphics.Lit(img.GrayAt(x, y).Y) {
				sb.WriteByte(litChar)
			} else {
				sb.WriteByte(unlitChar)
			}
		}
		sb.WriteByte('\n')
	}
	return Snapshot(sb.String())
}

// Image parses the snapshot back into a bitmap. Rows shorter than the widest
// row are padded with unlit pixels.
func (s Snapshot) Image() *image.Gray {
	lines := s.lines()
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	img := graphics.New(width, len(lines))
	for y, l := range lines {
		for x := 0; x < len(l); x++ {
			if l[x] == litChar {
				img.SetGray(x, y, graphics.On)
			}
		}
	}
	return img
}

// Row returns row y of the snapshot without its newline.
func (s Snapshot) Row(y int) string {
	lines := s.lines()
	if y < 0 || y >= len(lines) {
		return ""
	}
	return lines[y]
}

func (s Snapshot) lines() []string {
	trimmed := strings.TrimSuffix(string(s), "\n")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// Diff returns a line diff between s and want. Returns the empty string if
// they are equal.
func (s Snapshot) Diff(want Snapshot) string {
	return cmp.Diff(want.lines(), s.lines())
}

// MatchesFile compares the snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When
// POCKETDASH_UPDATE_SNAPSHOTS=1 is set, the file is silently updated instead.
func (s Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv("POCKETDASH_UPDATE_SNAPSHOTS") == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: POCKETDASH_UPDATE_SNAPSHOTS=1 go test -run %s", path, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(Snapshot(data)); diff != "" {
		t.Errorf("snapshot mismatch: %s (-want +got):\n%s\n\nTo update: POCKETDASH_UPDATE_SNAPSHOTS=1 go test -run %s", path, diff, t.Name())
	}
}

// UpdateFile writes the snapshot to path, creating directories as needed.
func (s Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(s), 0o644)
}

// String implements fmt.Stringer.
func (s Snapshot) String() string { return string(s) }
