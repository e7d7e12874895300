package widgets_test

import (
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/pocketdash/pkg/graphics"
	pdtest "github.com/go-drift/pocketdash/pkg/testing"
	"github.com/go-drift/pocketdash/pkg/widgets"
)

func TestLabel(t *testing.T) {
	label, tester := mount(t, 64, 13, widgets.NewLabel("Hello"))
	assert.Positive(t, graphics.Count(tester.Frame()))
	assert.Nil(t, label.Target())
	assert.Nil(t, label.Action())

	label.SetText("")
	assert.Equal(t, "", label.Text())
	assert.Equal(t, 1, tester.Redraws())
	assert.Zero(t, graphics.Count(render(t, tester).Image()))
}

func TestLabel_TargetArrow(t *testing.T) {
	_, tester := mount(t, 64, 13, widgets.LabelRow("", widgets.TextRow("x"))())
	frame := tester.Frame()
	// Only the arrow is drawn, at the right edge.
	assert.Equal(t, 9, graphics.Count(frame))
	assert.True(t, graphics.Lit(frame.GrayAt(58, 4).Y))
}

func TestText(t *testing.T) {
	text, tester := mount(t, 64, 26, widgets.NewText("one", "two"))
	assert.Equal(t, []string{"one", "two"}, text.Lines())
	assert.Positive(t, graphics.Count(band(tester, 0, 13)))
	assert.Positive(t, graphics.Count(band(tester, 13, 26)))

	text.SetLines("one")
	assert.Equal(t, 1, tester.Redraws())
	_, err := tester.Render()
	require.NoError(t, err)
	assert.Zero(t, graphics.Count(band(tester, 13, 26)))
}

func TestMarquee_ScrollsAndRests(t *testing.T) {
	m, tester := mount(t, 40, 13, widgets.NewMarquee(widgets.MarqueeConfig{
		Text:   "the quick brown fox jumps",
		Period: 100 * time.Millisecond,
		Step:   10,
		Hold:   1,
	}))

	tester.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, m.Offset(), "holds at the start")
	tester.Advance(100 * time.Millisecond)
	assert.Equal(t, 10, m.Offset())

	tester.Advance(1300 * time.Millisecond)
	assert.Equal(t, 137, m.Offset(), "stops with the tail flush right")
	tester.Advance(100 * time.Millisecond)
	assert.Equal(t, 137, m.Offset(), "holds at the end")
	tester.Advance(100 * time.Millisecond)
	assert.Equal(t, 0, m.Offset(), "jumps back to the start")
}

func TestMarquee_ShortTextStaysPut(t *testing.T) {
	m, tester := mount(t, 64, 13, widgets.NewMarquee(widgets.MarqueeConfig{Text: "hi"}))
	first := tester.Frame()

	tester.Advance(5 * time.Second)
	assert.Equal(t, 0, m.Offset())
	assert.Zero(t, tester.Redraws())
	frame, err := tester.Render()
	require.NoError(t, err)
	assert.True(t, graphics.Equal(first, frame))
}

// band returns rows [y0, y1) of the last frame.
func band(tester *pdtest.ComponentTester, y0, y1 int) *image.Gray {
	frame := tester.Frame()
	return graphics.Crop(frame, image.Rect(0, y0, frame.Bounds().Dx(), y1))
}
