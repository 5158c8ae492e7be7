package input

import (
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

func (c *Context) keysBlocked(ignorePause bool) bool {
	return c.keysConsumed || (c.paused && !ignorePause)
}

// KeyUpDown reports whether sc went down this frame.
func (c *Context) KeyUpDown(sc keys.Scancode, ignorePause bool) bool {
	return !c.keysBlocked(ignorePause) && c.keyPress.Contains(sc)
}

// KeyDownUp reports whether sc went up this frame.
func (c *Context) KeyDownUp(sc keys.Scancode, ignorePause bool) bool {
	return !c.keysBlocked(ignorePause) && c.keyRelease.Contains(sc)
}

// KeyDown reports whether sc is held.
func (c *Context) KeyDown(sc keys.Scancode, ignorePause bool) bool {
	return !c.keysBlocked(ignorePause) && c.keyboard.Down(sc)
}

// KeyUp reports whether sc is released.
func (c *Context) KeyUp(sc keys.Scancode, ignorePause bool) bool {
	return !c.keysBlocked(ignorePause) && c.keyboard.Up(sc)
}

// KeyUpDownConsume is KeyUpDown, removing one press of sc so later
// queries this frame do not see it. set forces the tracked key state.
func (c *Context) KeyUpDownConsume(sc keys.Scancode, set State) bool {
	return c.consumeKey(&c.keyPress, sc, set)
}

// KeyUpDownConsumeAll removes every press of sc and returns the count.
func (c *Context) KeyUpDownConsumeAll(sc keys.Scancode, set State) int {
	return c.consumeKeyAll(&c.keyPress, sc, set)
}

// KeyDownUpConsume is KeyDownUp, removing one release of sc.
func (c *Context) KeyDownUpConsume(sc keys.Scancode, set State) bool {
	return c.consumeKey(&c.keyRelease, sc, set)
}

// KeyDownUpConsumeAll removes every release of sc and returns the count.
func (c *Context) KeyDownUpConsumeAll(sc keys.Scancode, set State) int {
	return c.consumeKeyAll(&c.keyRelease, sc, set)
}

// ConsumeKeyPress removes the first press for which match returns true.
func (c *Context) ConsumeKeyPress(match func(keys.Scancode) bool) bool {
	if c.keysBlocked(false) {
		return false
	}
	return c.keyPress.ConsumeFunc(match)
}

// KeyPresses returns the keys pressed this frame in event order.
func (c *Context) KeyPresses() []keys.Scancode {
	return c.keyPress.Items()
}

// KeyReleases returns the keys released this frame in event order.
func (c *Context) KeyReleases() []keys.Scancode {
	return c.keyRelease.Items()
}

func (c *Context) consumeKey(s *event.Stack[keys.Scancode], sc keys.Scancode, set State) bool {
	if c.keysBlocked(false) || !s.Consume(sc) {
		return false
	}
	c.forceKey(sc, set)
	return true
}

func (c *Context) consumeKeyAll(s *event.Stack[keys.Scancode], sc keys.Scancode, set State) int {
	if c.keysBlocked(false) {
		return 0
	}
	n := s.ConsumeAll(sc)
	if n > 0 {
		c.forceKey(sc, set)
	}
	return n
}

func (c *Context) forceKey(sc keys.Scancode, set State) {
	if set != StateIgnore {
		c.keyboard.Set(sc, set == StateDown)
	}
}
