package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/navigation"
	"github.com/go-drift/pocketdash/pkg/widgets"
)

func TestCapability_String(t *testing.T) {
	tests := []struct {
		caps navigation.Capability
		want string
	}{
		{0, "none"},
		{navigation.CapEnterable, "enterable"},
		{navigation.CapNavigable | navigation.CapGutterIcons, "navigable|gutter_icons"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.caps.String())
	}
	assert.True(t, (navigation.CapEnterable | navigation.CapActionable).Has(navigation.CapActionable))
	assert.False(t, navigation.CapEnterable.Has(navigation.CapEnterable|navigation.CapNavigable))
}

func TestCapabilitiesOf(t *testing.T) {
	assert.Equal(t, navigation.Capability(0), navigation.CapabilitiesOf(nil))
	assert.Equal(t, navigation.Capability(0), navigation.CapabilitiesOf(&screen{}))
	assert.Equal(t, navigation.CapEnterable|navigation.CapActionable, navigation.CapabilitiesOf(widgets.NewLabel("x")))
}

func TestGutterFor(t *testing.T) {
	assert.True(t, navigation.GutterFor(nil, navigation.Context{Depth: 3}).IsZero())

	g := navigation.GutterFor(&screen{}, navigation.Context{Depth: 2})
	assert.Equal(t, graphics.IconBack.Name, g.Back.Name)

	g = navigation.GutterFor(&screen{}, navigation.Context{Depth: 2, InTransition: true})
	assert.True(t, g.IsZero(), "no back hint mid-slide")
}

func TestButton_String(t *testing.T) {
	assert.Equal(t, "select", navigation.ButtonSelect.String())
	assert.Equal(t, "home", navigation.ButtonHome.String())
	assert.Equal(t, "Button(9)", navigation.Button(9).String())
}
