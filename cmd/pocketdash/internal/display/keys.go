package display

import "github.com/go-drift/pocketdash/pkg/navigation"

// Key is a decoded terminal key press.
type Key struct {
	Button navigation.Button
	// Quit is set for q and Ctrl-C. Button is meaningless then.
	Quit bool
}

// DecodeKeys splits raw terminal input into key presses. Unknown bytes are
// skipped.
func DecodeKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		if b[0] == 0x1b && len(b) >= 3 && b[1] == '[' {
			switch b[2] {
			case 'A':
				keys = append(keys, Key{Button: navigation.ButtonUp})
			case 'B':
				keys = append(keys, Key{Button: navigation.ButtonDown})
			case 'C':
				keys = append(keys, Key{Button: navigation.ButtonSelect})
			case 'D':
				keys = append(keys, Key{Button: navigation.ButtonBack})
			case 'H':
				keys = append(keys, Key{Button: navigation.ButtonHome})
			}
			b = b[3:]
			continue
		}
		switch b[0] {
		case 'k':
			keys = append(keys, Key{Button: navigation.ButtonUp})
		case 'j':
			keys = append(keys, Key{Button: navigation.ButtonDown})
		case '\r', '\n', ' ':
			keys = append(keys, Key{Button: navigation.ButtonSelect})
		case 0x1b, 0x7f, 0x08:
			keys = append(keys, Key{Button: navigation.ButtonBack})
		case 'h':
			keys = append(keys, Key{Button: navigation.ButtonHome})
		case 'q', 0x03:
			keys = append(keys, Key{Quit: true})
		}
		b = b[1:]
	}
	return keys
}
