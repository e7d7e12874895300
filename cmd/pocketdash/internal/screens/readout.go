// Package screens builds the demo binary's menu tree.
package screens

import (
	"image"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// Readout shows a title and a value refreshed on an interval.
type Readout struct {
	core.Base
	title  string
	period time.Duration
	format func(now, start time.Time) string

	start time.Time
	value *core.State[string]
}

// NewReadout creates a Readout that formats its value every period. start is
// the scheduler time at mount.
func NewReadout(title string, period time.Duration, format func(now, start time.Time) string) *Readout {
	return &Readout{title: title, period: period, format: format}
}

// Clock shows the time of day.
func Clock() core.Component {
	return NewReadout("Clock", time.Second, func(now, _ time.Time) string {
		return now.Format("15:04:05")
	})
}

// Uptime shows how long the screen has been open.
func Uptime() core.Component {
	return NewReadout("Uptime", time.Second, func(now, start time.Time) string {
		return now.Sub(start).Truncate(time.Second).String()
	})
}

func (r *Readout) Init() {
	r.start = r.Scheduler().Now()
	r.value = core.NewState(r, r.format(r.start, r.start))
	r.CreateInterval(r.refresh, r.period)
}

func (r *Readout) refresh() {
	r.value.Set(r.format(r.Scheduler().Now(), r.start))
}

// Text returns the current value.
func (r *Readout) Text() string { return r.value.Value() }

func (r *Readout) Paint(canvas *image.Gray) (*image.Gray, error) {
	size := canvas.Bounds().Size()
	graphics.DrawText(canvas, image.Pt(1, 0), graphics.Truncate(r.title, size.X-1), true)
	graphics.Fill(canvas, image.Rect(0, graphics.LineHeight(), size.X, graphics.LineHeight()+1), true)

	value := graphics.Truncate(r.Text(), size.X)
	at := image.Pt((size.X-graphics.TextWidth(value))/2, (size.Y-graphics.LineHeight())/2+graphics.LineHeight()/2)
	graphics.DrawText(canvas, at, value, true)
	return canvas, nil
}
