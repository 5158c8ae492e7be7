// Package event defines the platform-neutral input events and the
// per-frame structures built from them.
package event

import "github.com/Faultbox/midgard-input/internal/input/keys"

// Kind identifies the type of an Event.
type Kind int

const (
	KindNone Kind = iota
	KindQuit
	KindWindowResize
	KindKeyDown
	KindKeyUp
	KindMouseButtonDown
	KindMouseButtonUp
	KindMouseWheel
	KindMouseMotion
	KindMouseEnter
	KindMouseLeave
	KindGamepadButtonDown
	KindGamepadButtonUp
	KindGamepadAxis
	KindGamepadAdded
	KindGamepadRemoved
	KindTextInput
	KindTextEditing
)

var kindNames = [...]string{
	KindNone:              "none",
	KindQuit:              "quit",
	KindWindowResize:      "window-resize",
	KindKeyDown:           "key-down",
	KindKeyUp:             "key-up",
	KindMouseButtonDown:   "mouse-button-down",
	KindMouseButtonUp:     "mouse-button-up",
	KindMouseWheel:        "mouse-wheel",
	KindMouseMotion:       "mouse-motion",
	KindMouseEnter:        "mouse-enter",
	KindMouseLeave:        "mouse-leave",
	KindGamepadButtonDown: "gamepad-button-down",
	KindGamepadButtonUp:   "gamepad-button-up",
	KindGamepadAxis:       "gamepad-axis",
	KindGamepadAdded:      "gamepad-added",
	KindGamepadRemoved:    "gamepad-removed",
	KindTextInput:         "text-input",
	KindTextEditing:       "text-editing",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// Mod is a set of keyboard modifier bits.
type Mod uint16

const (
	ModShift Mod = 1 << iota
	ModCtrl
	ModAlt
	ModGUI
)

// Has reports whether every bit in o is set.
func (m Mod) Has(o Mod) bool {
	return m&o == o
}

// Event is a processed input event. Only the fields relevant to Kind are
// set.
type Event struct {
	Kind Kind

	// Keyboard
	Key    keys.Scancode
	Mod    Mod
	Repeat bool

	// Mouse
	MouseButton keys.MouseButton
	Clicks      int
	X, Y        int32
	DeltaX      int32
	DeltaY      int32

	// Gamepad; Pad is the slot index
	Pad    int
	Button keys.GamepadButton
	Axis   keys.Axis
	Value  int16
	Name   string

	// Text
	Text   string
	Start  int
	Length int

	// Window
	Width  int
	Height int
}
