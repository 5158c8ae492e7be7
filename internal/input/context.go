// Package input ties the device trackers, the per-frame press and release
// stacks and the event router into one frame-driven Context, and resolves
// actions against it through Actions.
package input

import (
	"github.com/Faultbox/midgard-input/internal/input/device"
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// RecorderPriority is the router priority of the Context's own stack
// recorder. Handlers registered above it see events first and can consume
// them before they are recorded.
const RecorderPriority = 0

// State is the state a consume call forces on the consumed input.
type State int

const (
	StateIgnore State = iota - 1 // leave the tracked state alone
	StateUp
	StateDown
)

// Sampler supplies live device state at the start of a frame. Any method
// may return nil to keep the state built from events. Returned samples are
// only read until the next call on the same Sampler.
type Sampler interface {
	KeyboardState() []uint8
	MouseState() *device.MouseSample
	GamepadState(pad int) *device.GamepadSample
}

// Context is the per-frame input state of one application. Call BeginFrame
// once per frame, then Dispatch every queued event, then query.
type Context struct {
	keyboard *device.Keyboard
	mouse    *device.Mouse
	pads     *device.Gamepads

	router   *event.Router
	recorder event.HandlerID

	keyPress   event.Stack[keys.Scancode]
	keyRelease event.Stack[keys.Scancode]

	mousePress         event.Stack[keys.MouseButton]
	mouseRelease       event.Stack[keys.MouseButton]
	mouseDoublePress   event.Stack[keys.MouseButton]
	mouseDoubleRelease event.Stack[keys.MouseButton]

	padPress   [device.MaxGamepads]event.Stack[keys.GamepadButton]
	padRelease [device.MaxGamepads]event.Stack[keys.GamepadButton]

	// per-frame copies of the sampler's gamepad state
	padSamples [device.MaxGamepads]device.GamepadSample
	padSampled [device.MaxGamepads]*device.GamepadSample

	paused        bool
	keysConsumed  bool
	mouseConsumed bool
}

// NewContext creates a context with its stack recorder registered on a new
// router.
func NewContext() *Context {
	c := &Context{
		keyboard: device.NewKeyboard(),
		mouse:    device.NewMouse(),
		pads:     device.NewGamepads(),
		router:   event.NewRouter(),
	}
	c.recorder = c.router.Register(RecorderPriority, c.record)
	return c
}

// Close unregisters the stack recorder and closes the router.
func (c *Context) Close() {
	c.router.Unregister(c.recorder)
	c.router.Close()
}

// Router returns the router events are dispatched through.
func (c *Context) Router() *event.Router {
	return c.router
}

// Keyboard returns the keyboard tracker.
func (c *Context) Keyboard() *device.Keyboard {
	return c.keyboard
}

// Mouse returns the mouse tracker.
func (c *Context) Mouse() *device.Mouse {
	return c.mouse
}

// Gamepads returns the gamepad table.
func (c *Context) Gamepads() *device.Gamepads {
	return c.pads
}

// BeginFrame clears every stack and advances every tracker. s may be nil.
func (c *Context) BeginFrame(s Sampler) {
	c.keyPress.Clear()
	c.keyRelease.Clear()
	c.clearMouseStacks()
	for i := range c.padPress {
		c.padPress[i].Clear()
		c.padRelease[i].Clear()
	}
	c.keysConsumed = false
	c.mouseConsumed = false

	if s == nil {
		c.keyboard.Tick(nil)
		c.mouse.Tick(nil)
		c.pads.Tick(nil)
		return
	}

	c.keyboard.Tick(s.KeyboardState())
	c.mouse.Tick(s.MouseState())
	for i := range c.padSampled {
		c.padSampled[i] = nil
		if !c.pads.Connected(i) {
			continue
		}
		if sample := s.GamepadState(i); sample != nil {
			c.padSamples[i] = *sample
			c.padSampled[i] = &c.padSamples[i]
		}
	}
	c.pads.Tick(c.padSampled[:])
}

// Dispatch applies ev to the device trackers and routes it. It reports
// whether a handler consumed the event.
func (c *Context) Dispatch(ev *event.Event) bool {
	c.apply(ev)
	return c.router.Dispatch(ev)
}

// DispatchAll dispatches every event in order.
func (c *Context) DispatchAll(evs []event.Event) {
	for i := range evs {
		c.Dispatch(&evs[i])
	}
}

func (c *Context) apply(ev *event.Event) {
	switch ev.Kind {
	case event.KindKeyDown:
		c.keyboard.Set(ev.Key, true)
	case event.KindKeyUp:
		c.keyboard.Set(ev.Key, false)
	case event.KindMouseButtonDown:
		c.mouse.Set(ev.MouseButton, true)
	case event.KindMouseButtonUp:
		c.mouse.Set(ev.MouseButton, false)
	case event.KindMouseMotion:
		c.mouse.Move(ev.X, ev.Y, ev.DeltaX, ev.DeltaY)
	case event.KindMouseWheel:
		c.mouse.Scroll(ev.DeltaX, ev.DeltaY)
	case event.KindMouseEnter:
		c.mouse.SetInside(true)
	case event.KindMouseLeave:
		c.mouse.SetInside(false)
	case event.KindGamepadAdded:
		if c.pads.Add(ev.Pad, ev.Name) {
			c.clearPadStacks(ev.Pad)
		}
	case event.KindGamepadRemoved:
		c.pads.Remove(ev.Pad)
		c.clearPadStacks(ev.Pad)
	case event.KindGamepadButtonDown, event.KindGamepadButtonUp:
		if g := c.pads.Get(ev.Pad); g != nil && c.pads.Tracking() {
			g.SetButton(ev.Button, ev.Kind == event.KindGamepadButtonDown)
		}
	case event.KindGamepadAxis:
		if g := c.pads.Get(ev.Pad); g != nil && c.pads.Tracking() {
			g.SetAxis(ev.Axis, ev.Value)
		}
	}
}

// record is the router handler that fills the stacks. It never consumes.
func (c *Context) record(ev *event.Event) bool {
	switch ev.Kind {
	case event.KindKeyDown:
		if !ev.Repeat {
			c.keyPress.Push(ev.Key)
		}
	case event.KindKeyUp:
		if !ev.Repeat {
			c.keyRelease.Push(ev.Key)
		}
	case event.KindMouseButtonDown:
		if ev.Clicks == 2 {
			c.mouseDoublePress.Push(ev.MouseButton)
		} else if ev.Clicks <= 1 {
			c.mousePress.Push(ev.MouseButton)
		}
	case event.KindMouseButtonUp:
		if ev.Clicks == 2 {
			c.mouseDoubleRelease.Push(ev.MouseButton)
		} else if ev.Clicks <= 1 {
			c.mouseRelease.Push(ev.MouseButton)
		}
	case event.KindGamepadButtonDown:
		if c.pads.Connected(ev.Pad) {
			c.padPress[ev.Pad].Push(ev.Button)
		}
	case event.KindGamepadButtonUp:
		if c.pads.Connected(ev.Pad) {
			c.padRelease[ev.Pad].Push(ev.Button)
		}
	}
	return false
}

func (c *Context) clearMouseStacks() {
	c.mousePress.Clear()
	c.mouseRelease.Clear()
	c.mouseDoublePress.Clear()
	c.mouseDoubleRelease.Clear()
}

func (c *Context) clearPadStacks(pad int) {
	if pad >= 0 && pad < device.MaxGamepads {
		c.padPress[pad].Clear()
		c.padRelease[pad].Clear()
	}
}

// Pause stops keyboard queries from answering until Unpause, except for
// queries that ask to ignore the pause.
func (c *Context) Pause() {
	c.paused = true
}

// Unpause resumes keyboard queries.
func (c *Context) Unpause() {
	c.paused = false
}

// Paused reports whether keyboard input is paused.
func (c *Context) Paused() bool {
	return c.paused
}

// ConsumeKeys hides every keyboard input for the rest of the frame.
func (c *Context) ConsumeKeys() {
	c.keysConsumed = true
	c.keyPress.Clear()
	c.keyRelease.Clear()
}

// ConsumeMouse hides every mouse button for the rest of the frame.
func (c *Context) ConsumeMouse() {
	c.mouseConsumed = true
	c.clearMouseStacks()
}

// SetKeyboardTracking enables or disables keyboard state tracking.
func (c *Context) SetKeyboardTracking(on bool) {
	c.keyboard.SetTracking(on)
}

// SetGamepadTracking enables or disables gamepad state tracking.
func (c *Context) SetGamepadTracking(on bool) {
	c.pads.SetTracking(on)
}
