package keys

// MouseButton identifies a mouse button, numbered as SDL_BUTTON_*.
type MouseButton uint8

const (
	MouseLeft   MouseButton = 1
	MouseMiddle MouseButton = 2
	MouseRight  MouseButton = 3
	MouseX1     MouseButton = 4
	MouseX2     MouseButton = 5
)

// Valid reports whether m is one of the five supported buttons.
func (m MouseButton) Valid() bool {
	return m >= MouseLeft && m <= MouseX2
}

// Mask returns the bit for m in a button state mask, as SDL_BUTTON(m).
func (m MouseButton) Mask() uint32 {
	if !m.Valid() {
		return 0
	}
	return 1 << (m - 1)
}

func (m MouseButton) String() string {
	switch m {
	case MouseLeft:
		return "Left"
	case MouseMiddle:
		return "Middle"
	case MouseRight:
		return "Right"
	case MouseX1:
		return "X1"
	case MouseX2:
		return "X2"
	}
	return "invalid"
}
