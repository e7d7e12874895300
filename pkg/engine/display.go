package engine

import (
	"context"
	"image"
	"sync"

	"github.com/go-drift/pocketdash/pkg/graphics"
)

// RecordingDisplay keeps every frame it is shown. It is meant for tests and
// for headless runs that inspect output afterwards.
type RecordingDisplay struct {
	mu      sync.Mutex
	frames  []*image.Gray
	changed chan struct{}
}

// NewRecordingDisplay creates an empty RecordingDisplay.
func NewRecordingDisplay() *RecordingDisplay {
	return &RecordingDisplay{changed: make(chan struct{}, 1)}
}

// Show stores a copy of frame.
func (d *RecordingDisplay) Show(frame *image.Gray) error {
	d.mu.Lock()
	d.frames = append(d.frames, graphics.Clone(frame))
	d.mu.Unlock()
	select {
	case d.changed <- struct{}{}:
	default:
	}
	return nil
}

// Len returns the number of frames shown.
func (d *RecordingDisplay) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// Frames returns the frames shown so far, oldest first.
func (d *RecordingDisplay) Frames() []*image.Gray {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*image.Gray(nil), d.frames...)
}

// Last returns the most recent frame, or nil.
func (d *RecordingDisplay) Last() *image.Gray {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.frames) == 0 {
		return nil
	}
	return d.frames[len(d.frames)-1]
}

// Wait blocks until at least n frames have been shown or ctx is done.
func (d *RecordingDisplay) Wait(ctx context.Context, n int) error {
	for {
		if d.Len() >= n {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.changed:
		}
	}
}
