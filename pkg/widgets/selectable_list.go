package widgets

import (
	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
	"github.com/go-drift/pocketdash/pkg/navigation"
)

var (
	_ navigation.Navigable      = (*SelectableList)(nil)
	_ navigation.Enterable      = (*SelectableList)(nil)
	_ navigation.Actionable     = (*SelectableList)(nil)
	_ navigation.HasGutterIcons = (*SelectableList)(nil)
)

// SelectableList is a List with a cursor. The selected row is drawn
// inverted, and the window scrolls to keep it visible.
//
// Select on a SelectableList enters or runs whatever the selected row
// offers, so a menu is just a SelectableList of Label rows:
//
//	menu := widgets.NewSelectableList(widgets.ListConfig{Rows: []core.Factory{
//	    widgets.LabelRow("Clock", newClock),
//	    widgets.ActionRow("Reboot", reboot),
//	}})
type SelectableList struct {
	List
	selected *core.State[int]
}

// NewSelectableList creates a SelectableList with the first row selected.
func NewSelectableList(cfg ListConfig) *SelectableList {
	s := &SelectableList{}
	s.cfg = cfg.withDefaults()
	return s
}

// Init materializes the rows and selects the first one.
func (s *SelectableList) Init() {
	s.List.Init()
	s.selected = core.NewState(s, 0)
	s.highlight = func(i int) bool { return i == s.selected.Value() }
}

// SelectedIndex returns the index of the selected row.
func (s *SelectableList) SelectedIndex() int { return s.selected.Value() }

// Selected returns the selected row's component, or nil if it is not
// materialized.
func (s *SelectableList) Selected() core.Component {
	return s.Row(s.SelectedIndex())
}

// SelectNext moves the cursor down one row.
func (s *SelectableList) SelectNext() bool {
	return s.SelectRow(s.SelectedIndex() + 1)
}

// SelectPrevious moves the cursor up one row.
func (s *SelectableList) SelectPrevious() bool {
	return s.SelectRow(s.SelectedIndex() - 1)
}

// SelectRow moves the cursor to row i, scrolling if i is off screen. When
// the window has to scroll, the highlight moves to i once the scroll has
// settled. Ignored if i is out of range or the list is mid-scroll.
func (s *SelectableList) SelectRow(i int) bool {
	if i < 0 || i >= s.RowCount() || i == s.SelectedIndex() || s.InTransition() {
		return false
	}
	top, visible := s.TopIndex(), s.VisibleRows()
	selectI := func() { s.selected.Set(i) }
	switch {
	case i < top:
		return s.scrollThen(i-top, selectI)
	case i >= top+visible:
		return s.scrollThen(i-(top+visible-1), selectI)
	}
	selectI()
	return true
}

// SetRows replaces the rows and selects the first one.
func (s *SelectableList) SetRows(rows []core.Factory) {
	s.List.SetRows(rows)
	s.selected.Set(0)
}

// Next selects the next row.
func (s *SelectableList) Next() bool { return s.SelectNext() }

// Previous selects the previous row.
func (s *SelectableList) Previous() bool { return s.SelectPrevious() }

// Top selects the first row.
func (s *SelectableList) Top() bool { return s.SelectRow(0) }

// Target returns the selected row's target if it is Enterable.
func (s *SelectableList) Target() core.Factory {
	if e, ok := s.Selected().(navigation.Enterable); ok {
		return e.Target()
	}
	return nil
}

// Action returns the selected row's action if it is Actionable.
func (s *SelectableList) Action() func() {
	if a, ok := s.Selected().(navigation.Actionable); ok {
		return a.Action()
	}
	return nil
}

// GutterIcons shows up and down hints when the cursor can move, and the
// selected row's select hint.
func (s *SelectableList) GutterIcons(ctx navigation.Context) navigation.Gutter {
	var g navigation.Gutter
	if ctx.CanGoBack() {
		g.Back = graphics.IconBack
	}
	if s.Target() != nil {
		g.Select = graphics.IconEnter
	} else if s.Action() != nil {
		g.Select = graphics.IconAction
	}
	i := s.SelectedIndex()
	if i > 0 {
		g.Up = graphics.IconUp
	}
	if i < s.RowCount()-1 {
		g.Down = graphics.IconDown
	}
	return g
}
