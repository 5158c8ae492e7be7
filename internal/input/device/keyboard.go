// Package device tracks raw keyboard, mouse and gamepad state across two
// consecutive frames. Edge queries compare the two snapshots and are never
// stored.
package device

import "github.com/Faultbox/midgard-input/internal/input/keys"

// Keyboard is the double-buffered state of every scancode.
type Keyboard struct {
	current  [keys.NumScancodes]bool
	previous [keys.NumScancodes]bool
	tracking bool
}

// NewKeyboard creates a keyboard tracker with every key released.
func NewKeyboard() *Keyboard {
	return &Keyboard{tracking: true}
}

// Tick starts a new frame: the current snapshot becomes the previous one,
// then sample, when non-nil and tracking is enabled, replaces the current
// snapshot. sample is indexed by scancode, non-zero meaning pressed, as
// returned by SDL_GetKeyboardState.
func (k *Keyboard) Tick(sample []uint8) {
	k.previous = k.current
	if sample == nil || !k.tracking {
		return
	}
	n := min(len(sample), keys.NumScancodes)
	for i := 0; i < n; i++ {
		k.current[i] = sample[i] != 0
	}
	for i := n; i < keys.NumScancodes; i++ {
		k.current[i] = false
	}
}

// Set records a key event in the current snapshot.
func (k *Keyboard) Set(sc keys.Scancode, down bool) {
	if !sc.Valid() || !k.tracking {
		return
	}
	k.current[sc] = down
}

// SetTracking enables or disables state tracking. Disabling releases every
// key so nothing stays stuck down once tracking resumes.
func (k *Keyboard) SetTracking(on bool) {
	k.tracking = on
	if !on {
		k.current = [keys.NumScancodes]bool{}
	}
}

// Tracking reports whether state updates are enabled.
func (k *Keyboard) Tracking() bool {
	return k.tracking
}

// Reset releases every key in both snapshots.
func (k *Keyboard) Reset() {
	k.current = [keys.NumScancodes]bool{}
	k.previous = [keys.NumScancodes]bool{}
}

// Down reports whether sc is held this frame. Every query answers false
// while tracking is disabled.
func (k *Keyboard) Down(sc keys.Scancode) bool {
	return k.usable(sc) && k.current[sc]
}

// Up reports whether sc is released this frame.
func (k *Keyboard) Up(sc keys.Scancode) bool {
	return k.usable(sc) && !k.current[sc]
}

// Pressed reports an up to down transition between the last two frames.
func (k *Keyboard) Pressed(sc keys.Scancode) bool {
	return k.usable(sc) && k.current[sc] && !k.previous[sc]
}

// Released reports a down to up transition between the last two frames.
func (k *Keyboard) Released(sc keys.Scancode) bool {
	return k.usable(sc) && !k.current[sc] && k.previous[sc]
}

func (k *Keyboard) usable(sc keys.Scancode) bool {
	return k.tracking && sc.Valid()
}
