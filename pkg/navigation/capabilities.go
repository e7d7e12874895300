package navigation

import (
	"strings"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// Enterable is implemented by components that open another screen on
// select. A nil Target means nothing to enter right now.
type Enterable interface {
	Target() core.Factory
}

// Actionable is implemented by components that run an action on select. A
// nil Action means nothing to run right now.
type Actionable interface {
	Action() func()
}

// Navigable is implemented by components with a cursor. Each method reports
// whether it moved.
type Navigable interface {
	Next() bool
	Previous() bool
	Top() bool
}

// HasGutterIcons is implemented by components that choose their own gutter
// hints instead of the ones derived from their other capabilities.
type HasGutterIcons interface {
	GutterIcons(ctx Context) Gutter
}

// Context is what a component sees of the navigation around it.
type Context struct {
	// Depth is the number of screens on the stack.
	Depth int
	// InTransition is true while the stack is sliding.
	InTransition bool
}

// CanGoBack reports whether Back would pop a screen.
func (c Context) CanGoBack() bool { return c.Depth > 1 && !c.InTransition }

// Gutter is the set of hint icons drawn beside the active screen. A zero
// icon leaves its slot blank.
type Gutter struct {
	Up     graphics.Icon
	Down   graphics.Icon
	Select graphics.Icon
	Back   graphics.Icon
}

// IsZero reports whether no icon is set.
func (g Gutter) IsZero() bool {
	return g.Up.IsZero() && g.Down.IsZero() && g.Select.IsZero() && g.Back.IsZero()
}

// Capability is a set of navigation capabilities.
type Capability uint8

const (
	CapEnterable Capability = 1 << iota
	CapActionable
	CapNavigable
	CapGutterIcons
)

var capabilityNames = []struct {
	c    Capability
	name string
}{
	{CapEnterable, "enterable"},
	{CapActionable, "actionable"},
	{CapNavigable, "navigable"},
	{CapGutterIcons, "gutter_icons"},
}

// Has reports whether every capability in x is present.
func (c Capability) Has(x Capability) bool { return c&x == x }

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	for _, n := range capabilityNames {
		if c.Has(n.c) {
			names = append(names, n.name)
		}
	}
	return strings.Join(names, "|")
}

// CapabilitiesOf returns the capabilities c implements.
func CapabilitiesOf(c core.Component) Capability {
	var caps Capability
	if c == nil {
		return caps
	}
	if _, ok := c.(Enterable); ok {
		caps |= CapEnterable
	}
	if _, ok := c.(Actionable); ok {
		caps |= CapActionable
	}
	if _, ok := c.(Navigable); ok {
		caps |= CapNavigable
	}
	if _, ok := c.(HasGutterIcons); ok {
		caps |= CapGutterIcons
	}
	return caps
}

// GutterFor returns the gutter hints for c. Components implementing
// HasGutterIcons decide for themselves; for the rest, Back is shown when the
// stack can pop and Select when there is something to enter or run.
func GutterFor(c core.Component, ctx Context) Gutter {
	if c == nil {
		return Gutter{}
	}
	if h, ok := c.(HasGutterIcons); ok {
		return h.GutterIcons(ctx)
	}
	var g Gutter
	if ctx.CanGoBack() {
		g.Back = graphics.IconBack
	}
	if e, ok := c.(Enterable); ok && e.Target() != nil {
		g.Select = graphics.IconEnter
	} else if a, ok := c.(Actionable); ok && a.Action() != nil {
		g.Select = graphics.IconAction
	}
	return g
}
