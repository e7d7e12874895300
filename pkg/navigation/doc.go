// Package navigation moves between screens.
//
// A [Stack] holds the screens the user has entered, topmost visible. Pushing
// slides the new screen in from the right; popping slides it back out and
// destroys it once the slide finishes:
//
//	stack := navigation.NewStack(navigation.StackConfig{Root: home})
//	stack.Push(settings, true)
//	stack.Pop(true)
//
// # Capabilities
//
// Screens advertise what the buttons can do with them by implementing small
// interfaces: [Enterable] (select pushes a target screen), [Actionable]
// (select runs an action), [Navigable] (up, down and home move a cursor) and
// [HasGutterIcons] (the screen draws its own gutter hints). [Dispatch] maps a
// [Button] onto whichever capability the active screen has:
//
//	navigation.Dispatch(stack, navigation.ButtonSelect)
//
// # Shell
//
// [Shell] is a ready-made root: a stack plus an icon gutter on the right edge
// showing which buttons currently do something.
package navigation
