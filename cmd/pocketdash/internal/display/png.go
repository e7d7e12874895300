package display

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
)

// PNGDir writes each frame to a numbered PNG file in a directory.
type PNGDir struct {
	dir string

	mu sync.Mutex
	n  int
}

// NewPNGDir creates dir if needed and returns a display writing into it.
func NewPNGDir(dir string) (*PNGDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create frame directory: %w", err)
	}
	return &PNGDir{dir: dir}, nil
}

// Show writes frame as frame-NNNNN.png.
func (p *PNGDir) Show(frame *image.Gray) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	path := filepath.Join(p.dir, fmt.Sprintf("frame-%05d.png", p.n))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	p.n++
	return nil
}

// Count returns the number of frames written.
func (p *PNGDir) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.n
}
