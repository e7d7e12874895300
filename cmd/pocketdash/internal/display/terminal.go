// Package display provides the frame sinks the demo binary draws to.
package display

import (
	"fmt"
	"image"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/go-drift/pocketdash/pkg/engine"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

const (
	clearScreen = "\033[2J"
	cursorHome  = "\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
	altScreen   = "\033[?1049h"
	mainScreen  = "\033[?1049l"
)

// Terminal draws frames as half-block characters, two pixel rows per text
// row, inside a rounded border.
type Terminal struct {
	w      io.Writer
	frame  lipgloss.Style
	status lipgloss.Style
	footer func() string

	mu      sync.Mutex
	started bool
}

// NewTerminal creates a Terminal writing to w. footer, if set, is called for
// the status line under each frame.
func NewTerminal(w io.Writer, footer func() string) *Terminal {
	return &Terminal{
		w:      w,
		footer: footer,
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("6")),
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// Show redraws the terminal with frame.
func (t *Terminal) Show(frame *image.Gray) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var sb strings.Builder
	if !t.started {
		sb.WriteString(altScreen + hideCursor + clearScreen)
		t.started = true
	}
	sb.WriteString(cursorHome)
	sb.WriteString(t.frame.Render(HalfBlocks(frame)))
	if t.footer != nil {
		sb.WriteString("\n")
		sb.WriteString(t.status.Render(t.footer()))
	}
	// Raw mode needs explicit carriage returns.
	out := strings.ReplaceAll(sb.String(), "\n", "\r\n")
	_, err := io.WriteString(t.w, out)
	return err
}

// Close restores the terminal screen.
func (t *Terminal) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.started {
		return nil
	}
	t.started = false
	_, err := fmt.Fprint(t.w, showCursor+mainScreen)
	return err
}

// HalfBlocks prints img with one character per column and two pixel rows per
// line. An odd last row is paired with a dark row.
func HalfBlocks(img *image.Gray) string {
	if img == nil {
		return ""
	}
	b := img.Bounds()
	lit := func(x, y int) bool {
		return y < b.Max.Y && graphics.Lit(img.GrayAt(x, y).Y)
	}
	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		if y > b.Min.Y {
			sb.WriteByte('\n')
		}
		for x := b.Min.X; x < b.Max.X; x++ {
			top, bottom := lit(x, y), lit(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
	}
	return sb.String()
}

// Multi shows each frame on every display in turn, stopping at the first
// error.
func Multi(displays ...engine.Display) engine.Display {
	return engine.DisplayFunc(func(frame *image.Gray) error {
		for _, d := range displays {
			if err := d.Show(frame); err != nil {
				return err
			}
		}
		return nil
	})
}
