package widgets_test

import (
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/pocketdash/pkg/core"
	pdtest "github.com/go-drift/pocketdash/pkg/testing"
)

// blank paints nothing and records when it is torn down.
type blank struct {
	core.Base
	cleaned atomic.Bool
}

func (b *blank) Paint(canvas *image.Gray) (*image.Gray, error) { return canvas, nil }
func (b *blank) Cleanup()                                      { b.cleaned.Store(true) }

func blankRows(n int) []core.Factory {
	rows := make([]core.Factory, n)
	for i := range rows {
		rows[i] = func() core.Component { return &blank{} }
	}
	return rows
}

// mount renders f's component as the root of a width x height display.
func mount[C core.Component](t *testing.T, width, height int, c C) (C, *pdtest.ComponentTester) {
	t.Helper()
	tester := pdtest.NewComponentTesterWithT(t)
	tester.SetSize(width, height)
	_, err := tester.Mount(func() core.Component { return c })
	require.NoError(t, err)
	return c, tester
}

// settle advances until the list has finished scrolling.
func settle(t *testing.T, tester *pdtest.ComponentTester, moving func() bool) {
	t.Helper()
	err := tester.AdvanceUntil(func() bool { return !moving() }, 10*time.Millisecond, time.Second)
	require.NoError(t, err)
}
