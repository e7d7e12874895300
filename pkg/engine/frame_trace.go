package engine

import (
	"sync"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
)

const (
	frameTraceSamplesDefault = 240
	maxTreeDepth             = 500
)

// FrameSample is a single frame trace sample.
type FrameSample struct {
	Timestamp  int64   `json:"ts"`
	FrameMs    float64 `json:"frameMs"`
	RenderMs   float64 `json:"renderMs"`
	ShowMs     float64 `json:"showMs"`
	Components int     `json:"components"`
}

// FrameTimeline is the debug handler's response shape.
type FrameTimeline struct {
	Samples     []FrameSample `json:"samples"`
	SlowFrames  int           `json:"slowFrames"`
	ThresholdMs float64       `json:"thresholdMs"`
}

// FrameTraceBuffer stores recent frame samples in a ring buffer and counts
// frames slower than the frame budget.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	samples   []FrameSample
	index     int
	count     int
	slow      int
	threshold time.Duration
}

// NewFrameTraceBuffer creates a buffer holding capacity samples.
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = frameTraceSamplesDefault
	}
	return &FrameTraceBuffer{
		samples:   make([]FrameSample, capacity),
		threshold: threshold,
	}
}

// Capacity returns the buffer capacity.
func (b *FrameTraceBuffer) Capacity() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.samples)
}

// Add records a frame sample.
func (b *FrameTraceBuffer) Add(sample FrameSample, frameDuration time.Duration) {
	b.mu.Lock()
	b.samples[b.index] = sample
	b.index = (b.index + 1) % len(b.samples)
	if b.count < len(b.samples) {
		b.count++
	}
	if b.threshold > 0 && frameDuration > b.threshold {
		b.slow++
	}
	b.mu.Unlock()
}

// Snapshot returns the samples oldest first, with stats.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	tl := FrameTimeline{
		Samples:     make([]FrameSample, b.count),
		SlowFrames:  b.slow,
		ThresholdMs: durationToMillis(b.threshold),
	}
	if b.count < len(b.samples) {
		copy(tl.Samples, b.samples[:b.count])
	} else {
		copy(tl.Samples, b.samples[b.index:])
		copy(tl.Samples[len(b.samples)-b.index:], b.samples[:b.index])
	}
	return tl
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func countTree(c core.Component, depth int) int {
	if c == nil || depth > maxTreeDepth {
		return 0
	}
	n := 1
	for _, child := range core.BaseOf(c).Children() {
		n += countTree(child, depth+1)
	}
	return n
}
