package navigation

import (
	"image"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/pocketdash/pkg/animation"
	"github.com/go-drift/pocketdash/pkg/core"
)

// DefaultPushDuration is the slide length when StackConfig.Duration is zero.
const DefaultPushDuration = 200 * time.Millisecond

// StackConfig describes a Stack.
type StackConfig struct {
	// Root, if set, is pushed without animation when the stack is wired.
	Root core.Factory
	// Duration is the slide length. Zero uses DefaultPushDuration; negative
	// disables the animation.
	Duration time.Duration
	// BaseStep is the nominal pixels moved per slide step.
	BaseStep int
}

type stackState struct {
	Depth  int
	Dir    SlideDirection
	Offset int
}

// Stack is a navigator: a stack of screens showing the topmost.
//
// Push and Pop are ignored while a slide is running. During a slide both the
// outgoing and incoming screens are rendered, so both stay active; once it
// ends only the top screen renders and the one beneath is paused. A popped
// screen is destroyed when its slide finishes.
type Stack struct {
	core.Base
	cfg StackConfig

	state *core.State[stackState]

	mu         sync.Mutex
	items      []core.Component
	moving     bool
	transition *animation.Transition
}

// NewStack creates a Stack.
func NewStack(cfg StackConfig) *Stack {
	if cfg.Duration == 0 {
		cfg.Duration = DefaultPushDuration
	}
	return &Stack{cfg: cfg}
}

// Init pushes the root screen, if any.
func (s *Stack) Init() {
	s.state = core.NewState(s, stackState{})
	if s.cfg.Root != nil {
		s.Push(s.cfg.Root, false)
	}
}

// Cleanup stops a running slide.
func (s *Stack) Cleanup() {
	s.mu.Lock()
	tr := s.transition
	s.transition = nil
	s.moving = false
	s.mu.Unlock()
	if tr != nil {
		tr.Stop()
	}
}

// Push creates a screen from f and slides it in over the current top.
// Returns false if a slide is already running.
func (s *Stack) Push(f core.Factory, animate bool) bool {
	if f == nil || s.Destroyed() {
		return false
	}
	s.mu.Lock()
	if s.moving {
		s.mu.Unlock()
		return false
	}
	s.moving = true
	s.mu.Unlock()

	c := s.CreateChild(f)

	s.mu.Lock()
	s.items = append(s.items, c)
	depth := len(s.items)
	s.mu.Unlock()

	if depth == 1 {
		animate = false
	}
	s.slide(SlideIn, depth, animate, func() {
		s.state.Set(stackState{Depth: depth})
	})
	return true
}

// Pop slides the top screen out and destroys it. Returns false on an empty
// stack or while a slide is running.
func (s *Stack) Pop(animate bool) bool {
	s.mu.Lock()
	if s.moving || len(s.items) == 0 {
		s.mu.Unlock()
		return false
	}
	s.moving = true
	depth := len(s.items)
	s.mu.Unlock()

	if depth == 1 {
		animate = false
	}
	s.slide(SlideOut, depth, animate, func() {
		s.mu.Lock()
		top := s.items[len(s.items)-1]
		s.items = slices.Delete(s.items, len(s.items)-1, len(s.items))
		remaining := len(s.items)
		s.mu.Unlock()

		s.state.Set(stackState{Depth: remaining})
		s.RemoveChild(top)
	})
	return true
}

// slide runs the transition and calls finish once it completes. The caller
// has set moving.
func (s *Stack) slide(dir SlideDirection, depth int, animate bool, finish func()) {
	done := func() {
		finish()
		s.mu.Lock()
		s.moving = false
		s.transition = nil
		s.mu.Unlock()
	}

	width := s.Size().X
	duration := s.cfg.Duration
	if !animate || width <= 0 || duration < 0 {
		done()
		return
	}

	s.state.Set(stackState{Depth: depth, Dir: dir})
	tr := s.Scheduler().Animate(animation.TransitionSpec{
		Kind:     "slide_" + dir.String(),
		Distance: width,
		Duration: duration,
		BaseStep: s.cfg.BaseStep,
		OnStep: func(travelled int) {
			s.state.Update(func(st stackState) stackState {
				st.Offset = travelled
				return st
			})
		},
		OnDone: done,
	})

	s.mu.Lock()
	if s.moving {
		s.transition = tr
	}
	s.mu.Unlock()
}

// Len returns the number of screens, including one sliding out.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// InTransition reports whether a slide is running.
func (s *Stack) InTransition() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moving
}

// ActiveIndex returns the index of the screen buttons act on: the top, or
// the one beneath it while the top slides out. -1 when empty.
func (s *Stack) ActiveIndex() int {
	st := s.state.Value()
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := len(s.items) - 1
	if st.Dir == SlideOut && len(s.items) > 0 {
		idx--
	}
	return idx
}

// ActiveComponent returns the screen buttons act on, or nil.
func (s *Stack) ActiveComponent() core.Component {
	idx := s.ActiveIndex()
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.items) {
		return nil
	}
	return s.items[idx]
}

// Context returns the navigation context for the active screen.
func (s *Stack) Context() Context {
	return Context{Depth: s.Len(), InTransition: s.InTransition()}
}

// Paint renders the top screen, or both screens while sliding.
func (s *Stack) Paint(canvas *image.Gray) (*image.Gray, error) {
	st := s.state.Value()
	s.mu.Lock()
	items := slices.Clone(s.items)
	s.mu.Unlock()

	if len(items) == 0 {
		return canvas, nil
	}
	top := items[len(items)-1]
	if st.Dir == SlideNone || len(items) < 2 {
		return top.Render(canvas)
	}

	bg, err := items[len(items)-2].Render(canvas)
	if err != nil {
		return nil, err
	}
	fg, err := top.Render(canvas)
	if err != nil {
		return nil, err
	}
	visible := slideVisible(st.Dir, st.Offset, canvas.Bounds().Dx())
	return composeSlide(canvas, bg, fg, visible), nil
}
