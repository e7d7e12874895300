package core_test

import (
	"fmt"
	"image"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

type lamp struct {
	core.Base
	on *core.State[bool]
}

func (l *lamp) Init() {
	l.on = core.NewState(l, false)
}

func (l *lamp) Paint(canvas *image.Gray) (*image.Gray, error) {
	if l.on.Value() {
		graphics.Fill(canvas, canvas.Bounds(), true)
	}
	return canvas, nil
}

// This example mounts a root, renders the first frame, and re-renders after
// the root asks for a redraw.
func ExampleNewRoot() {
	l := &lamp{}
	root, err := core.NewRoot(func() core.Component { return l }, func() {
		fmt.Println("redraw requested")
	})
	if err != nil {
		panic(err)
	}
	defer core.BaseOf(root).Destroy()

	blank := graphics.New(4, 2)
	frame, _ := root.Render(blank)
	fmt.Println("lit pixels:", graphics.Count(frame))

	l.on.Set(true)
	l.on.Set(true)

	frame, _ = root.Render(blank)
	fmt.Println("lit pixels:", graphics.Count(frame))

	// Output:
	// lit pixels: 0
	// redraw requested
	// lit pixels: 8
}
