package binding

import (
	"fmt"

	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// ParseKey resolves a key name as written in a bindings file.
func ParseKey(name string) (keys.Scancode, error) {
	sc := keys.ScancodeFromName(name)
	if sc == keys.ScancodeUnknown {
		return sc, fmt.Errorf("%w: key %q", ErrUnknownName, name)
	}
	return sc, nil
}

// ParseButton resolves a gamepad button name as written in a bindings file.
func ParseButton(name string) (keys.GamepadButton, error) {
	b := keys.ButtonFromName(name)
	if b == keys.ButtonInvalid {
		return b, fmt.Errorf("%w: button %q", ErrUnknownName, name)
	}
	return b, nil
}
