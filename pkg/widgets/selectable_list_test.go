package widgets_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/navigation"
	pdtest "github.com/go-drift/pocketdash/pkg/testing"
	"github.com/go-drift/pocketdash/pkg/widgets"
)

func TestSelectableList_HighlightFollowsSelection(t *testing.T) {
	list, tester := mount(t, 8, 4, widgets.NewSelectableList(widgets.ListConfig{
		Rows:        blankRows(4),
		VisibleRows: 2,
		Duration:    -1,
	}))
	lit, dark := "########", "........"

	frame := pdtest.ASCII(tester.Frame())
	assert.Equal(t, []string{lit, lit, dark, dark}, rows(frame, 4))

	require.True(t, list.SelectNext())
	frame = render(t, tester)
	assert.Equal(t, []string{dark, dark, lit, lit}, rows(frame, 4))

	require.True(t, list.SelectNext(), "selecting below the window scrolls")
	assert.Equal(t, 1, list.TopIndex())
	assert.Equal(t, 2, list.SelectedIndex())
	frame = render(t, tester)
	assert.Equal(t, []string{dark, dark, lit, lit}, rows(frame, 4))

	require.True(t, list.Top())
	assert.Equal(t, 0, list.TopIndex())
	assert.Equal(t, 0, list.SelectedIndex())
}

func TestSelectableList_HighlightWaitsForScroll(t *testing.T) {
	list, tester := mount(t, 8, 4, widgets.NewSelectableList(widgets.ListConfig{
		Rows:        blankRows(3),
		VisibleRows: 2,
		Duration:    40 * time.Millisecond,
	}))
	lit, dark := "########", "........"

	require.True(t, list.SelectNext())
	require.True(t, list.SelectNext(), "selecting below the window scrolls")
	require.True(t, list.InTransition())

	// Row 1 stays fully on screen for the whole slide and keeps the
	// highlight; row 2 only takes it at the end.
	tester.Advance(20 * time.Millisecond)
	require.True(t, list.InTransition())
	frame, err := tester.Render()
	require.NoError(t, err)
	assert.Equal(t, 16, graphics.Count(frame))
	assert.Equal(t, 1, list.SelectedIndex())

	settle(t, tester, list.InTransition)
	snap := render(t, tester)
	assert.Equal(t, []string{dark, dark, lit, lit}, rows(snap, 4))
	assert.Equal(t, 2, list.SelectedIndex())
}

func TestSelectableList_Bounds(t *testing.T) {
	list, _ := mount(t, 8, 4, widgets.NewSelectableList(widgets.ListConfig{
		Rows:        blankRows(3),
		VisibleRows: 2,
		Duration:    -1,
	}))

	assert.False(t, list.SelectPrevious())
	assert.False(t, list.SelectRow(0), "reselecting is a no-op")
	assert.False(t, list.SelectRow(3))
	require.True(t, list.SelectRow(2))
	assert.Equal(t, 1, list.TopIndex())
	assert.False(t, list.SelectNext())
}

func TestSelectableList_IgnoresSelectionWhileScrolling(t *testing.T) {
	list, tester := mount(t, 8, 4, widgets.NewSelectableList(widgets.ListConfig{
		Rows:        blankRows(4),
		VisibleRows: 2,
		Duration:    40 * time.Millisecond,
	}))

	require.True(t, list.SelectRow(3))
	assert.True(t, list.InTransition())
	assert.False(t, list.SelectPrevious())
	assert.Equal(t, 0, list.SelectedIndex(), "the cursor moves once the scroll settles")

	settle(t, tester, list.InTransition)
	assert.Equal(t, 2, list.TopIndex())
	assert.Equal(t, 3, list.SelectedIndex())
	require.True(t, list.SelectPrevious())
	assert.Equal(t, 2, list.SelectedIndex())
}

func TestSelectableList_ForwardsToSelectedRow(t *testing.T) {
	beeps := 0
	target := widgets.TextRow("clock")
	list, _ := mount(t, 64, 26, widgets.NewSelectableList(widgets.ListConfig{
		Rows: []core.Factory{
			widgets.LabelRow("Clock", target),
			widgets.ActionRow("Beep", func() { beeps++ }),
			widgets.TextRow("Plain"),
		},
		VisibleRows: 2,
		Duration:    -1,
	}))
	ctx := navigation.Context{Depth: 1}

	assert.NotNil(t, list.Target())
	assert.Nil(t, list.Action())
	g := list.GutterIcons(ctx)
	assert.Equal(t, graphics.IconEnter.Name, g.Select.Name)
	assert.True(t, g.Up.IsZero())
	assert.Equal(t, graphics.IconDown.Name, g.Down.Name)
	assert.True(t, g.Back.IsZero())

	require.True(t, list.SelectNext())
	assert.Nil(t, list.Target())
	require.NotNil(t, list.Action())
	list.Action()()
	assert.Equal(t, 1, beeps)
	g = list.GutterIcons(navigation.Context{Depth: 2})
	assert.Equal(t, graphics.IconAction.Name, g.Select.Name)
	assert.Equal(t, graphics.IconUp.Name, g.Up.Name)
	assert.Equal(t, graphics.IconBack.Name, g.Back.Name)

	require.True(t, list.SelectNext())
	g = list.GutterIcons(ctx)
	assert.True(t, g.Select.IsZero())
	assert.True(t, g.Down.IsZero())

	caps := navigation.CapabilitiesOf(list)
	assert.Equal(t, "enterable|actionable|navigable|gutter_icons", caps.String())
}

func TestSelectableList_SetRowsResetsSelection(t *testing.T) {
	list, _ := mount(t, 8, 4, widgets.NewSelectableList(widgets.ListConfig{
		Rows:        blankRows(4),
		VisibleRows: 2,
		Duration:    -1,
	}))
	require.True(t, list.SelectRow(3))

	list.SetRows(blankRows(2))
	assert.Equal(t, 0, list.SelectedIndex())
	assert.Equal(t, 0, list.TopIndex())
	assert.Equal(t, 2, list.RowCount())
}

func render(t *testing.T, tester *pdtest.ComponentTester) pdtest.Snapshot {
	t.Helper()
	frame, err := tester.Render()
	require.NoError(t, err)
	return pdtest.ASCII(frame)
}

func rows(s pdtest.Snapshot, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s.Row(i)
	}
	return out
}
