package keys

import "strings"

// GamepadButton identifies a button on a game controller.
type GamepadButton int

// Gamepad buttons, numbered as SDL_GameControllerButton.
const (
	ButtonInvalid GamepadButton = iota - 1
	ButtonA
	ButtonB
	ButtonX
	ButtonY
	ButtonBack
	ButtonGuide
	ButtonStart
	ButtonLeftStick
	ButtonRightStick
	ButtonLeftShoulder
	ButtonRightShoulder
	ButtonDPadUp
	ButtonDPadDown
	ButtonDPadLeft
	ButtonDPadRight
	ButtonMisc1
	ButtonPaddle1
	ButtonPaddle2
	ButtonPaddle3
	ButtonPaddle4
	ButtonTouchpad

	NumGamepadButtons
)

var buttonNames = [NumGamepadButtons]string{
	"a", "b", "x", "y",
	"back", "guide", "start",
	"leftstick", "rightstick",
	"leftshoulder", "rightshoulder",
	"dpup", "dpdown", "dpleft", "dpright",
	"misc1",
	"paddle1", "paddle2", "paddle3", "paddle4",
	"touchpad",
}

// Valid reports whether b names a real button.
func (b GamepadButton) Valid() bool {
	return b > ButtonInvalid && b < NumGamepadButtons
}

// Name returns the controller mapping name of the button, or "" for
// ButtonInvalid.
func (b GamepadButton) Name() string {
	if !b.Valid() {
		return ""
	}
	return buttonNames[b]
}

func (b GamepadButton) String() string {
	if !b.Valid() {
		return "invalid"
	}
	return buttonNames[b]
}

// Mask returns the bit for b in a button state mask.
func (b GamepadButton) Mask() uint32 {
	if !b.Valid() {
		return 0
	}
	return 1 << uint(b)
}

// ButtonFromName looks up a button by its mapping name, ignoring case.
// Unknown names return ButtonInvalid.
func ButtonFromName(name string) GamepadButton {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range buttonNames {
		if n == name {
			return GamepadButton(i)
		}
	}
	return ButtonInvalid
}

// Axis identifies an analog controller axis.
type Axis int

// Axes, numbered as SDL_GameControllerAxis.
const (
	AxisLeftX Axis = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerLeft
	AxisTriggerRight

	NumAxes
)
