package widgets

import (
	"image"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// MarqueeConfig describes a Marquee.
type MarqueeConfig struct {
	Text string
	// Period is the time between scroll steps. Defaults to 100ms.
	Period time.Duration
	// Step is the number of pixels moved per period. Defaults to 2.
	Step int
	// Hold is the number of periods to rest at each end. Defaults to 10.
	Hold int
}

type marqueeState struct {
	Text   string
	Offset int
	Hold   int
	AtEnd  bool
}

// Marquee is a single line of text that scrolls horizontally when it is too
// long to fit, resting at each end. It only scrolls while visible.
type Marquee struct {
	core.Base
	cfg      MarqueeConfig
	state    *core.State[marqueeState]
	interval *core.Interval
}

// NewMarquee creates a Marquee.
func NewMarquee(cfg MarqueeConfig) *Marquee {
	if cfg.Period <= 0 {
		cfg.Period = 100 * time.Millisecond
	}
	if cfg.Step <= 0 {
		cfg.Step = 2
	}
	if cfg.Hold < 0 {
		cfg.Hold = 0
	} else if cfg.Hold == 0 {
		cfg.Hold = 10
	}
	return &Marquee{cfg: cfg}
}

// MarqueeRow returns a factory for a marquee showing text.
func MarqueeRow(text string) core.Factory {
	return func() core.Component { return NewMarquee(MarqueeConfig{Text: text}) }
}

// Init creates the scroll state and the interval that advances it.
func (m *Marquee) Init() {
	m.state = core.NewState(m, marqueeState{Text: m.cfg.Text, Hold: m.cfg.Hold})
	m.interval = m.CreateInterval(m.advance, m.cfg.Period)
}

// SetText replaces the text and scrolls back to the start.
func (m *Marquee) SetText(s string) {
	m.state.Set(marqueeState{Text: s, Hold: m.cfg.Hold})
}

// Offset returns how many pixels the text is scrolled left.
func (m *Marquee) Offset() int { return m.state.Value().Offset }

func (m *Marquee) advance() {
	width := m.Size().X - 2
	m.state.Update(func(s marqueeState) marqueeState {
		overflow := graphics.TextWidth(s.Text) - width
		if width <= 0 || overflow <= 0 {
			return marqueeState{Text: s.Text, Hold: s.Hold}
		}
		switch {
		case s.Hold > 0:
			s.Hold--
		case s.AtEnd:
			s.Offset, s.AtEnd, s.Hold = 0, false, m.cfg.Hold
		default:
			s.Offset = min(s.Offset+m.cfg.Step, overflow)
			if s.Offset == overflow {
				s.AtEnd, s.Hold = true, m.cfg.Hold
			}
		}
		return s
	})
}

// Paint draws the text shifted left by the current offset, centred
// vertically.
func (m *Marquee) Paint(canvas *image.Gray) (*image.Gray, error) {
	s := m.state.Value()
	y := (canvas.Bounds().Dy() - graphics.LineHeight()) / 2
	graphics.DrawText(canvas, image.Pt(1-s.Offset, y), s.Text, true)
	return canvas, nil
}
