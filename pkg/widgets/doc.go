// Package widgets provides the stock components screens are built from.
//
// # Lists
//
// [List] shows a window of equally sized rows and scrolls it with a
// lag-corrected slide. [SelectableList] adds a highlighted cursor and
// forwards select to the highlighted row, which makes it the usual menu:
//
//	menu := widgets.NewSelectableList(widgets.ListConfig{
//	    Rows: []core.Factory{
//	        widgets.LabelRow("Clock", newClock),
//	        widgets.LabelRow("About", newAbout),
//	        widgets.ActionRow("Beep", beep),
//	    },
//	    VisibleRows: 4,
//	    Gap:         1,
//	    Scrollbar:   true,
//	})
//
// With Virtual set, only the rows on screen exist. Rows leaving the screen
// are destroyed and rebuilt from their factory when they come back, so a
// list of thousands of rows holds a handful of components.
//
// # Text
//
// [Label] is a single line, [Text] is several, and [Marquee] scrolls a line
// that is too long to fit. All draw with the fixed 7x13 bitmap font.
package widgets
