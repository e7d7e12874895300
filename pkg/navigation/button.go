package navigation

import "fmt"

// Button is a logical input. Hardware or terminal layers map their keys
// onto these.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonSelect
	ButtonBack
	ButtonHome
)

func (b Button) String() string {
	switch b {
	case ButtonUp:
		return "up"
	case ButtonDown:
		return "down"
	case ButtonSelect:
		return "select"
	case ButtonBack:
		return "back"
	case ButtonHome:
		return "home"
	default:
		return fmt.Sprintf("Button(%d)", int(b))
	}
}

// Dispatch applies b to the stack's active screen. Returns whether anything
// happened. Buttons are ignored while the stack is sliding.
//
//   - Up, Down and Home move a Navigable screen's cursor.
//   - Select pushes an Enterable screen's target, or else runs an
//     Actionable screen's action.
//   - Back pops the stack unless only one screen is left.
func Dispatch(stack *Stack, b Button) bool {
	if stack == nil || stack.InTransition() {
		return false
	}
	active := stack.ActiveComponent()
	if active == nil {
		return false
	}

	switch b {
	case ButtonUp, ButtonDown, ButtonHome:
		nav, ok := active.(Navigable)
		if !ok {
			return false
		}
		switch b {
		case ButtonUp:
			return nav.Previous()
		case ButtonDown:
			return nav.Next()
		default:
			return nav.Top()
		}
	case ButtonSelect:
		if e, ok := active.(Enterable); ok {
			if target := e.Target(); target != nil {
				return stack.Push(target, true)
			}
		}
		if a, ok := active.(Actionable); ok {
			if fn := a.Action(); fn != nil {
				fn()
				return true
			}
		}
		return false
	case ButtonBack:
		if stack.Len() <= 1 {
			return false
		}
		return stack.Pop(true)
	}
	return false
}
