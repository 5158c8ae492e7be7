package device

import "github.com/Faultbox/midgard-input/internal/input/keys"

// MouseSample is a live mouse reading, as returned by SDL_GetMouseState.
type MouseSample struct {
	Buttons uint32
	X, Y    int32
	Inside  bool
}

// Mouse is the double-buffered button state plus the pointer position and
// per-frame motion and wheel deltas.
type Mouse struct {
	current  uint32
	previous uint32

	x, y           int32
	deltaX, deltaY int32
	wheelX, wheelY int32
	inside         bool
}

// NewMouse creates a mouse tracker with every button released.
func NewMouse() *Mouse {
	return &Mouse{}
}

// Tick starts a new frame. Deltas are reset; sample, when non-nil, replaces
// the button state, position and window focus.
func (m *Mouse) Tick(sample *MouseSample) {
	m.previous = m.current
	m.deltaX, m.deltaY = 0, 0
	m.wheelX, m.wheelY = 0, 0
	if sample == nil {
		return
	}
	m.current = sample.Buttons
	m.x, m.y = sample.X, sample.Y
	m.inside = sample.Inside
}

// Set records a button event.
func (m *Mouse) Set(b keys.MouseButton, down bool) {
	if down {
		m.current |= b.Mask()
	} else {
		m.current &^= b.Mask()
	}
}

// Move records a motion event. Relative motion accumulates until the next
// Tick.
func (m *Mouse) Move(x, y, dx, dy int32) {
	m.x, m.y = x, y
	m.deltaX += dx
	m.deltaY += dy
}

// Scroll records a wheel event.
func (m *Mouse) Scroll(dx, dy int32) {
	m.wheelX += dx
	m.wheelY += dy
}

// SetInside records whether the pointer is over the window.
func (m *Mouse) SetInside(inside bool) {
	m.inside = inside
}

// Down reports whether b is held this frame.
func (m *Mouse) Down(b keys.MouseButton) bool {
	return b.Valid() && m.current&b.Mask() != 0
}

// Up reports whether b is released this frame.
func (m *Mouse) Up(b keys.MouseButton) bool {
	return b.Valid() && m.current&b.Mask() == 0
}

// Pressed reports an up to down transition between the last two frames.
func (m *Mouse) Pressed(b keys.MouseButton) bool {
	return m.Down(b) && m.previous&b.Mask() == 0
}

// Released reports a down to up transition between the last two frames.
func (m *Mouse) Released(b keys.MouseButton) bool {
	return m.Up(b) && m.previous&b.Mask() != 0
}

// Position returns the pointer position in window coordinates.
func (m *Mouse) Position() (x, y int32) {
	return m.x, m.y
}

// Delta returns the relative motion accumulated this frame.
func (m *Mouse) Delta() (dx, dy int32) {
	return m.deltaX, m.deltaY
}

// Wheel returns the wheel motion accumulated this frame.
func (m *Mouse) Wheel() (dx, dy int32) {
	return m.wheelX, m.wheelY
}

// Inside reports whether the pointer is over the window.
func (m *Mouse) Inside() bool {
	return m.inside
}
