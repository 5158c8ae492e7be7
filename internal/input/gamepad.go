package input

import (
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// ButtonUpDown reports whether b went down on pad this frame.
func (c *Context) ButtonUpDown(pad int, b keys.GamepadButton) bool {
	return c.pads.Connected(pad) && c.padPress[pad].Contains(b)
}

// ButtonDownUp reports whether b went up on pad this frame.
func (c *Context) ButtonDownUp(pad int, b keys.GamepadButton) bool {
	return c.pads.Connected(pad) && c.padRelease[pad].Contains(b)
}

// ButtonDown reports whether b is held on pad.
func (c *Context) ButtonDown(pad int, b keys.GamepadButton) bool {
	return c.pads.Connected(pad) && c.pads.Get(pad).Down(b)
}

// ButtonUp reports whether b is released on pad. A disconnected pad
// answers false.
func (c *Context) ButtonUp(pad int, b keys.GamepadButton) bool {
	return c.pads.Connected(pad) && c.pads.Get(pad).Up(b)
}

func (c *Context) ButtonUpDownConsume(pad int, b keys.GamepadButton, set State) bool {
	return c.pads.Connected(pad) && c.consumeButton(pad, &c.padPress[pad], b, set)
}

func (c *Context) ButtonUpDownConsumeAll(pad int, b keys.GamepadButton, set State) int {
	if !c.pads.Connected(pad) {
		return 0
	}
	return c.consumeButtonAll(pad, &c.padPress[pad], b, set)
}

func (c *Context) ButtonDownUpConsume(pad int, b keys.GamepadButton, set State) bool {
	return c.pads.Connected(pad) && c.consumeButton(pad, &c.padRelease[pad], b, set)
}

func (c *Context) ButtonDownUpConsumeAll(pad int, b keys.GamepadButton, set State) int {
	if !c.pads.Connected(pad) {
		return 0
	}
	return c.consumeButtonAll(pad, &c.padRelease[pad], b, set)
}

// Axis returns the normalized value of a on pad, or 0.
func (c *Context) Axis(pad int, a keys.Axis) float32 {
	if !c.pads.Connected(pad) {
		return 0
	}
	return c.pads.Get(pad).Axis(a)
}

func (c *Context) consumeButton(pad int, s *event.Stack[keys.GamepadButton], b keys.GamepadButton, set State) bool {
	if !s.Consume(b) {
		return false
	}
	c.forceButton(pad, b, set)
	return true
}

func (c *Context) consumeButtonAll(pad int, s *event.Stack[keys.GamepadButton], b keys.GamepadButton, set State) int {
	n := s.ConsumeAll(b)
	if n > 0 {
		c.forceButton(pad, b, set)
	}
	return n
}

func (c *Context) forceButton(pad int, b keys.GamepadButton, set State) {
	if set != StateIgnore {
		c.pads.Get(pad).SetButton(b, set == StateDown)
	}
}
