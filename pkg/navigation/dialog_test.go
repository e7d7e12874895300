package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/navigation"
)

func TestShell_DialogSwallowsButtons(t *testing.T) {
	f := newMenuShell(t)
	confirmed := 0
	f.shell.ShowDialog(navigation.DialogOptions{
		Lines:     []string{"Quit?"},
		OnConfirm: func() { confirmed++ },
	})
	require.True(t, f.shell.DialogOpen())

	assert.False(t, f.shell.Handle(navigation.ButtonDown))
	menu := f.shell.Stack().ActiveComponent()
	assert.Equal(t, 0, menuIndex(t, menu), "the menu behind the dialog does not move")

	assert.True(t, f.shell.Handle(navigation.ButtonSelect))
	assert.Equal(t, 1, confirmed)
	assert.False(t, f.shell.DialogOpen())
	assert.Equal(t, 1, f.shell.Stack().Len(), "confirming does not reach the menu")
}

func TestShell_DialogBackDismisses(t *testing.T) {
	f := newMenuShell(t)
	f.shell.ShowDialog(navigation.DialogOptions{Lines: []string{"Hello"}})

	g := f.shell.Gutter()
	assert.Equal(t, graphics.IconAction.Name, g.Select.Name)
	assert.Equal(t, graphics.IconBack.Name, g.Back.Name)

	assert.True(t, f.shell.Handle(navigation.ButtonBack))
	assert.False(t, f.shell.DialogOpen())
	assert.Zero(t, f.beeps)
}

func TestShell_PersistentDialog(t *testing.T) {
	f := newMenuShell(t)
	dismiss := f.shell.ShowDialog(navigation.DialogOptions{Lines: []string{"Wait"}, Persistent: true})

	assert.True(t, f.shell.Gutter().Back.IsZero())
	assert.False(t, f.shell.Handle(navigation.ButtonBack))
	assert.True(t, f.shell.DialogOpen())

	dismiss()
	assert.False(t, f.shell.DialogOpen())
	dismiss()
	assert.False(t, f.shell.DialogOpen())
}

func TestShell_StaleDismissKeepsNewDialog(t *testing.T) {
	f := newMenuShell(t)
	first := f.shell.ShowDialog(navigation.DialogOptions{Lines: []string{"one"}})
	f.shell.ShowDialog(navigation.DialogOptions{Lines: []string{"two"}})

	first()
	assert.True(t, f.shell.DialogOpen())
}

func TestShell_DialogPaints(t *testing.T) {
	f := newMenuShell(t)
	before := graphics.Clone(f.tester.Frame())

	dismiss := f.shell.ShowDialog(navigation.DialogOptions{Lines: []string{"Quit?"}})
	frame, err := f.tester.Render()
	require.NoError(t, err)
	assert.False(t, graphics.Equal(before, frame))

	// 121 wide content area: box is 113x17 at (4,23).
	lit := func(x, y int) bool { return graphics.Lit(frame.GrayAt(x, y).Y) }
	assert.True(t, lit(4, 23), "top-left corner")
	assert.True(t, lit(116, 39), "bottom-right corner")
	assert.False(t, lit(3, 39), "outside the box")

	dismiss()
	frame, err = f.tester.Render()
	require.NoError(t, err)
	assert.True(t, graphics.Equal(before, frame))
}

func menuIndex(t *testing.T, c any) int {
	t.Helper()
	sel, ok := c.(interface{ SelectedIndex() int })
	require.True(t, ok)
	return sel.SelectedIndex()
}
