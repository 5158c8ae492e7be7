package input

import (
	"strconv"

	"github.com/Faultbox/midgard-input/internal/input/action"
	"github.com/Faultbox/midgard-input/internal/input/bindctx"
	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/device"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// Device selects which device an action query looks at: the keyboard, one
// gamepad by slot index, or all of them.
type Device int

const (
	DeviceAny      Device = -2
	DeviceKeyboard Device = -1
)

// DeviceGamepad selects the gamepad in slot i.
func DeviceGamepad(i int) Device {
	if i < 0 {
		return deviceInvalid
	}
	return Device(i)
}

const deviceInvalid Device = -3

func (d Device) String() string {
	switch {
	case d == DeviceAny:
		return "any"
	case d == DeviceKeyboard:
		return "keyboard"
	case d >= 0:
		return "gamepad " + strconv.Itoa(int(d))
	}
	return "invalid"
}

// Actions answers action queries by resolving bindings from a Registry
// against the device state of a Context.
type Actions struct {
	ctx *Context
	reg *action.Registry

	// anyPads is the number of gamepad slots DeviceAny looks at.
	anyPads int
}

// NewActions creates a facade over ctx and reg.
func NewActions(ctx *Context, reg *action.Registry) *Actions {
	return &Actions{ctx: ctx, reg: reg, anyPads: device.MaxGamepads}
}

// SetAnyGamepads limits DeviceAny to the first n gamepad slots.
func (q *Actions) SetAnyGamepads(n int) {
	q.anyPads = max(0, min(n, device.MaxGamepads))
}

// Context returns the input context queries run against.
func (q *Actions) Context() *Context {
	return q.ctx
}

// Registry returns the registry bindings are resolved from.
func (q *Actions) Registry() *action.Registry {
	return q.reg
}

// query is one query kind applied to each device class.
type query struct {
	key    func(sc keys.Scancode) bool
	button func(pad int, b keys.GamepadButton) bool
}

func (q *Actions) run(h action.Handle, a binding.ActionID, dev Device, fn query) bool {
	bc, ok := q.resolve(h, a)
	if !ok {
		return false
	}

	switch {
	case dev == DeviceKeyboard:
		return q.onKeys(bc, a, fn.key)
	case dev == DeviceAny:
		if q.onKeys(bc, a, fn.key) {
			return true
		}
		for pad := 0; pad < q.anyPads; pad++ {
			if q.onButton(bc, a, pad, fn.button) {
				return true
			}
		}
		return false
	case dev >= 0:
		return q.onButton(bc, a, int(dev), fn.button)
	}
	return false
}

func (q *Actions) resolve(h action.Handle, a binding.ActionID) (*bindctx.Context, bool) {
	if !a.Valid() {
		return nil, false
	}
	return q.reg.Context(h)
}

func (q *Actions) onKeys(bc *bindctx.Context, a binding.ActionID, fn func(keys.Scancode) bool) bool {
	k := bc.Keys()
	for s := 0; s < k.Slots(); s++ {
		if sc := k.PhysicalSlot(a, binding.Slot(s)); sc.Valid() && fn(sc) {
			return true
		}
	}
	return false
}

func (q *Actions) onButton(bc *bindctx.Context, a binding.ActionID, pad int, fn func(int, keys.GamepadButton) bool) bool {
	b := bc.Buttons().Physical(a)
	return b.Valid() && q.ctx.Gamepads().Connected(pad) && fn(pad, b)
}

// UpDown reports whether a bound input of a went down this frame.
func (q *Actions) UpDown(h action.Handle, a binding.ActionID, dev Device, ignorePause bool) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyUpDown(sc, ignorePause) },
		button: q.ctx.ButtonUpDown,
	})
}

// DownUp reports whether a bound input of a went up this frame.
func (q *Actions) DownUp(h action.Handle, a binding.ActionID, dev Device, ignorePause bool) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyDownUp(sc, ignorePause) },
		button: q.ctx.ButtonDownUp,
	})
}

// Down reports whether a bound input of a is held.
func (q *Actions) Down(h action.Handle, a binding.ActionID, dev Device, ignorePause bool) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyDown(sc, ignorePause) },
		button: q.ctx.ButtonDown,
	})
}

// Up reports whether a bound input of a is released. Unbound actions
// answer false.
func (q *Actions) Up(h action.Handle, a binding.ActionID, dev Device, ignorePause bool) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyUp(sc, ignorePause) },
		button: q.ctx.ButtonUp,
	})
}

// UpDownConsume is UpDown, removing the press it found so nothing else sees
// it this frame. set forces the tracked state of the consumed input.
func (q *Actions) UpDownConsume(h action.Handle, a binding.ActionID, dev Device, set State) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyUpDownConsume(sc, set) },
		button: func(pad int, b keys.GamepadButton) bool { return q.ctx.ButtonUpDownConsume(pad, b, set) },
	})
}

// DownUpConsume is DownUp, removing the release it found.
func (q *Actions) DownUpConsume(h action.Handle, a binding.ActionID, dev Device, set State) bool {
	return q.run(h, a, dev, query{
		key:    func(sc keys.Scancode) bool { return q.ctx.KeyDownUpConsume(sc, set) },
		button: func(pad int, b keys.GamepadButton) bool { return q.ctx.ButtonDownUpConsume(pad, b, set) },
	})
}

// UpDownConsumeAll removes every press of every input bound to a on the
// selected devices and returns the count.
func (q *Actions) UpDownConsumeAll(h action.Handle, a binding.ActionID, dev Device, set State) int {
	n := 0
	q.run(h, a, dev, query{
		key: func(sc keys.Scancode) bool {
			n += q.ctx.KeyUpDownConsumeAll(sc, set)
			return false
		},
		button: func(pad int, b keys.GamepadButton) bool {
			n += q.ctx.ButtonUpDownConsumeAll(pad, b, set)
			return false
		},
	})
	return n
}

// DownUpConsumeAll removes every release of every input bound to a on the
// selected devices and returns the count.
func (q *Actions) DownUpConsumeAll(h action.Handle, a binding.ActionID, dev Device, set State) int {
	n := 0
	q.run(h, a, dev, query{
		key: func(sc keys.Scancode) bool {
			n += q.ctx.KeyDownUpConsumeAll(sc, set)
			return false
		},
		button: func(pad int, b keys.GamepadButton) bool {
			n += q.ctx.ButtonDownUpConsumeAll(pad, b, set)
			return false
		},
	})
	return n
}

// ConsumeFromPressStack removes the earliest keyboard press of either key
// bound to a and reports whether there was one.
func (q *Actions) ConsumeFromPressStack(h action.Handle, a binding.ActionID) bool {
	bc, ok := q.resolve(h, a)
	if !ok {
		return false
	}
	k := bc.Keys()
	primary := k.PhysicalSlot(a, binding.Primary)
	secondary := k.PhysicalSlot(a, binding.Secondary)
	return q.ctx.ConsumeKeyPress(func(sc keys.Scancode) bool {
		return sc.Valid() && (sc == primary || sc == secondary)
	})
}
