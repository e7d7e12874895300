package navigation_test

import (
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
	pdtest "github.com/go-drift/pocketdash/pkg/testing"
)

// screen fills itself lit or dark and counts ticks of a 100ms interval.
type screen struct {
	core.Base
	lit   bool
	ticks atomic.Int32
	gone  atomic.Bool
}

func (s *screen) Init() {
	s.CreateInterval(func() { s.ticks.Add(1) }, 100*time.Millisecond)
}

func (s *screen) Paint(canvas *image.Gray) (*image.Gray, error) {
	if s.lit {
		graphics.Fill(canvas, canvas.Bounds(), true)
	}
	return canvas, nil
}

func (s *screen) Cleanup() { s.gone.Store(true) }

// screens returns a factory that records what it builds.
func screens(lit bool, built *[]*screen) core.Factory {
	return func() core.Component {
		s := &screen{lit: lit}
		*built = append(*built, s)
		return s
	}
}

func mount[C core.Component](t *testing.T, width, height int, c C) (C, *pdtest.ComponentTester) {
	t.Helper()
	tester := pdtest.NewComponentTesterWithT(t)
	tester.SetSize(width, height)
	_, err := tester.Mount(func() core.Component { return c })
	require.NoError(t, err)
	return c, tester
}

func settle(t *testing.T, tester *pdtest.ComponentTester, moving func() bool) {
	t.Helper()
	err := tester.AdvanceUntil(func() bool { return !moving() }, 10*time.Millisecond, time.Second)
	require.NoError(t, err)
}
