package input

import (
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// MouseUpDown reports a single click press of b this frame.
func (c *Context) MouseUpDown(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mousePress.Contains(b)
}

// MouseDownUp reports a single click release of b this frame.
func (c *Context) MouseDownUp(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mouseRelease.Contains(b)
}

// MouseDoubleUpDown reports a double click press of b this frame.
func (c *Context) MouseDoubleUpDown(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mouseDoublePress.Contains(b)
}

// MouseDoubleDownUp reports a double click release of b this frame.
func (c *Context) MouseDoubleDownUp(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mouseDoubleRelease.Contains(b)
}

// MouseDown reports whether b is held.
func (c *Context) MouseDown(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mouse.Down(b)
}

// MouseUp reports whether b is released.
func (c *Context) MouseUp(b keys.MouseButton) bool {
	return !c.mouseConsumed && c.mouse.Up(b)
}

func (c *Context) MouseUpDownConsume(b keys.MouseButton, set State) bool {
	return c.consumeMouse(&c.mousePress, b, set)
}

func (c *Context) MouseUpDownConsumeAll(b keys.MouseButton, set State) int {
	return c.consumeMouseAll(&c.mousePress, b, set)
}

func (c *Context) MouseDownUpConsume(b keys.MouseButton, set State) bool {
	return c.consumeMouse(&c.mouseRelease, b, set)
}

func (c *Context) MouseDownUpConsumeAll(b keys.MouseButton, set State) int {
	return c.consumeMouseAll(&c.mouseRelease, b, set)
}

func (c *Context) MouseDoubleUpDownConsume(b keys.MouseButton, set State) bool {
	return c.consumeMouse(&c.mouseDoublePress, b, set)
}

func (c *Context) MouseDoubleUpDownConsumeAll(b keys.MouseButton, set State) int {
	return c.consumeMouseAll(&c.mouseDoublePress, b, set)
}

func (c *Context) MouseDoubleDownUpConsume(b keys.MouseButton, set State) bool {
	return c.consumeMouse(&c.mouseDoubleRelease, b, set)
}

func (c *Context) MouseDoubleDownUpConsumeAll(b keys.MouseButton, set State) int {
	return c.consumeMouseAll(&c.mouseDoubleRelease, b, set)
}

// MousePosition returns the pointer position in window coordinates.
func (c *Context) MousePosition() (x, y int32) {
	return c.mouse.Position()
}

// MouseDelta returns the pointer motion of this frame.
func (c *Context) MouseDelta() (dx, dy int32) {
	return c.mouse.Delta()
}

// MouseWheel returns the wheel motion of this frame.
func (c *Context) MouseWheel() (dx, dy int32) {
	return c.mouse.Wheel()
}

// MouseInside reports whether the pointer is over the window.
func (c *Context) MouseInside() bool {
	return c.mouse.Inside()
}

func (c *Context) consumeMouse(s *event.Stack[keys.MouseButton], b keys.MouseButton, set State) bool {
	if c.mouseConsumed || !s.Consume(b) {
		return false
	}
	c.forceMouse(b, set)
	return true
}

func (c *Context) consumeMouseAll(s *event.Stack[keys.MouseButton], b keys.MouseButton, set State) int {
	if c.mouseConsumed {
		return 0
	}
	n := s.ConsumeAll(b)
	if n > 0 {
		c.forceMouse(b, set)
	}
	return n
}

func (c *Context) forceMouse(b keys.MouseButton, set State) {
	if set != StateIgnore {
		c.mouse.Set(b, set == StateDown)
	}
}
