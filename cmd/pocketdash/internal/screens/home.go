package screens

import (
	"strconv"
	"time"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/widgets"
)

// Options carries the list settings shared by every menu.
type Options struct {
	Scroll      time.Duration
	BaseStep    int
	VisibleRows int
	Gap         int
	// Virtual applies to the long number list only.
	Virtual bool
}

func (o Options) list(rows []core.Factory) widgets.ListConfig {
	return widgets.ListConfig{
		Rows:        rows,
		VisibleRows: o.VisibleRows,
		Gap:         o.Gap,
		Duration:    o.Scroll,
		BaseStep:    o.BaseStep,
		Scrollbar:   true,
	}
}

// NumberCount is the length of the number list.
const NumberCount = 1000

// Home returns the main menu. quit runs when the Quit row is selected.
func Home(opts Options, quit func()) core.Factory {
	return func() core.Component {
		return widgets.NewSelectableList(opts.list([]core.Factory{
			widgets.LabelRow("Clock", Clock),
			widgets.LabelRow("Uptime", Uptime),
			widgets.LabelRow("Numbers", Numbers(opts)),
			widgets.LabelRow("About", About(opts)),
			widgets.ActionRow("Quit", quit),
		}))
	}
}

// Numbers returns a long list of numbered rows.
func Numbers(opts Options) core.Factory {
	return func() core.Component {
		rows := make([]core.Factory, NumberCount)
		for i := range rows {
			rows[i] = widgets.TextRow("Item " + strconv.Itoa(i))
		}
		cfg := opts.list(rows)
		cfg.Virtual = opts.Virtual
		return widgets.NewSelectableList(cfg)
	}
}

// About returns a list of information rows, the last one scrolling.
func About(opts Options) core.Factory {
	return func() core.Component {
		return widgets.NewList(opts.list([]core.Factory{
			widgets.TextRow("pocketdash"),
			widgets.TextRow("128x64 menus"),
			widgets.MarqueeRow("Up and down move, select enters, back returns, h goes home, q quits"),
		}))
	}
}
