package input

import (
	"testing"

	"github.com/Faultbox/midgard-input/internal/input/device"
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

type fakeSampler struct {
	keyboard []uint8
	mouse    *device.MouseSample
	pads     map[int]*device.GamepadSample
}

func (s *fakeSampler) KeyboardState() []uint8            { return s.keyboard }
func (s *fakeSampler) MouseState() *device.MouseSample { return s.mouse }
func (s *fakeSampler) GamepadState(pad int) *device.GamepadSample {
	return s.pads[pad]
}

func keyDown(sc keys.Scancode) *event.Event {
	return &event.Event{Kind: event.KindKeyDown, Key: sc}
}

func keyUp(sc keys.Scancode) *event.Event {
	return &event.Event{Kind: event.KindKeyUp, Key: sc}
}

func TestKeyEdgesAreFrameScoped(t *testing.T) {
	c := NewContext()
	defer c.Close()

	c.BeginFrame(nil)
	c.Dispatch(keyDown(keys.ScancodeSpace))
	if !c.KeyUpDown(keys.ScancodeSpace, false) || !c.KeyDown(keys.ScancodeSpace, false) {
		t.Fatal("press not visible in its frame")
	}

	c.BeginFrame(nil)
	if c.KeyUpDown(keys.ScancodeSpace, false) {
		t.Error("press must not alias into the next frame")
	}
	if !c.KeyDown(keys.ScancodeSpace, false) {
		t.Error("key is still held")
	}

	c.Dispatch(keyUp(keys.ScancodeSpace))
	if !c.KeyDownUp(keys.ScancodeSpace, false) || !c.KeyUp(keys.ScancodeSpace, false) {
		t.Error("release not visible")
	}
}

func TestKeyRepeatNotRecorded(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	ev := keyDown(keys.ScancodeA)
	ev.Repeat = true
	c.Dispatch(ev)
	if c.KeyUpDown(keys.ScancodeA, false) {
		t.Error("repeats should not count as presses")
	}
	if !c.KeyDown(keys.ScancodeA, false) {
		t.Error("repeat still marks the key down")
	}
}

func TestKeyConsume(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	c.Dispatch(keyDown(keys.ScancodeE))
	c.Dispatch(keyUp(keys.ScancodeE))
	c.Dispatch(keyDown(keys.ScancodeE))

	if !c.KeyUpDownConsume(keys.ScancodeE, StateIgnore) {
		t.Fatal("first consume should succeed")
	}
	if !c.KeyUpDown(keys.ScancodeE, false) {
		t.Error("second press should remain")
	}
	if n := c.KeyUpDownConsumeAll(keys.ScancodeE, StateUp); n != 1 {
		t.Errorf("ConsumeAll = %d, want 1", n)
	}
	if c.KeyUpDown(keys.ScancodeE, false) {
		t.Error("all presses consumed")
	}
	if c.KeyDown(keys.ScancodeE, false) {
		t.Error("StateUp should force the key up")
	}

	if !c.KeyDownUpConsume(keys.ScancodeE, StateIgnore) || c.KeyDownUp(keys.ScancodeE, false) {
		t.Error("release consume failed")
	}
	if c.KeyDownUpConsumeAll(keys.ScancodeE, StateIgnore) != 0 {
		t.Error("nothing left to consume")
	}
}

func TestPause(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)
	c.Dispatch(keyDown(keys.ScancodeW))

	c.Pause()
	if !c.Paused() {
		t.Fatal("Paused() should be true")
	}
	if c.KeyUpDown(keys.ScancodeW, false) || c.KeyDown(keys.ScancodeW, false) || c.KeyUp(keys.ScancodeW, false) {
		t.Error("paused keyboard should answer false")
	}
	if !c.KeyUpDown(keys.ScancodeW, true) || !c.KeyDown(keys.ScancodeW, true) {
		t.Error("ignorePause should see through the pause")
	}
	if c.KeyUpDownConsume(keys.ScancodeW, StateIgnore) {
		t.Error("consume should respect the pause")
	}

	c.Unpause()
	if !c.KeyUpDown(keys.ScancodeW, false) {
		t.Error("press should be visible after unpause")
	}
}

func TestConsumeKeysAndMouse(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)
	c.Dispatch(keyDown(keys.ScancodeQ))
	c.Dispatch(&event.Event{Kind: event.KindMouseButtonDown, MouseButton: keys.MouseLeft, Clicks: 1})

	c.ConsumeKeys()
	if c.KeyUpDown(keys.ScancodeQ, true) || c.KeyDown(keys.ScancodeQ, true) {
		t.Error("consumed keys should be hidden even when ignoring pause")
	}
	c.ConsumeMouse()
	if c.MouseUpDown(keys.MouseLeft) || c.MouseDown(keys.MouseLeft) {
		t.Error("consumed mouse should be hidden")
	}

	c.BeginFrame(nil)
	if !c.KeyDown(keys.ScancodeQ, false) || !c.MouseDown(keys.MouseLeft) {
		t.Error("consumption lasts one frame only")
	}
}

func TestMouseStacks(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	c.Dispatch(&event.Event{Kind: event.KindMouseButtonDown, MouseButton: keys.MouseLeft, Clicks: 1})
	c.Dispatch(&event.Event{Kind: event.KindMouseButtonUp, MouseButton: keys.MouseLeft, Clicks: 1})
	c.Dispatch(&event.Event{Kind: event.KindMouseButtonDown, MouseButton: keys.MouseLeft, Clicks: 2})
	c.Dispatch(&event.Event{Kind: event.KindMouseButtonUp, MouseButton: keys.MouseLeft, Clicks: 2})

	if !c.MouseUpDown(keys.MouseLeft) || !c.MouseDownUp(keys.MouseLeft) {
		t.Error("single click not recorded")
	}
	if !c.MouseDoubleUpDown(keys.MouseLeft) || !c.MouseDoubleDownUp(keys.MouseLeft) {
		t.Error("double click not recorded")
	}
	if c.MouseUpDown(keys.MouseRight) {
		t.Error("right button never clicked")
	}

	if !c.MouseDoubleUpDownConsume(keys.MouseLeft, StateIgnore) || c.MouseDoubleUpDown(keys.MouseLeft) {
		t.Error("double press consume failed")
	}
	if c.MouseUpDownConsumeAll(keys.MouseLeft, StateDown) != 1 {
		t.Error("single press consume all failed")
	}
	if !c.MouseDown(keys.MouseLeft) {
		t.Error("StateDown should force the button down")
	}
	if !c.MouseDownUpConsume(keys.MouseLeft, StateIgnore) {
		t.Error("release consume failed")
	}
	if c.MouseDoubleDownUpConsumeAll(keys.MouseLeft, StateIgnore) != 1 {
		t.Error("double release consume all failed")
	}
	if c.MouseDownUpConsumeAll(keys.MouseLeft, StateIgnore) != 0 || c.MouseDoubleDownUpConsume(keys.MouseLeft, StateIgnore) {
		t.Error("stacks should be empty")
	}
	if c.MouseDoubleUpDownConsumeAll(keys.MouseLeft, StateIgnore) != 0 || c.MouseUpDownConsume(keys.MouseLeft, StateIgnore) {
		t.Error("press stacks should be empty")
	}
}

func TestMouseMotionAndSampler(t *testing.T) {
	c := NewContext()
	s := &fakeSampler{mouse: &device.MouseSample{X: 100, Y: 50, Inside: true}}

	c.BeginFrame(s)
	c.Dispatch(&event.Event{Kind: event.KindMouseMotion, X: 104, Y: 47, DeltaX: 4, DeltaY: -3})
	c.Dispatch(&event.Event{Kind: event.KindMouseWheel, DeltaY: -1})

	if x, y := c.MousePosition(); x != 104 || y != 47 {
		t.Errorf("position = %d,%d", x, y)
	}
	if dx, dy := c.MouseDelta(); dx != 4 || dy != -3 {
		t.Errorf("delta = %d,%d", dx, dy)
	}
	if _, wy := c.MouseWheel(); wy != -1 {
		t.Errorf("wheel = %d", wy)
	}
	if !c.MouseInside() {
		t.Error("pointer inside")
	}
	c.Dispatch(&event.Event{Kind: event.KindMouseLeave})
	if c.MouseInside() {
		t.Error("leave event should clear inside")
	}
}

func TestSamplerDrivesLevelState(t *testing.T) {
	c := NewContext()
	kb := make([]uint8, keys.NumScancodes)
	s := &fakeSampler{keyboard: kb, pads: map[int]*device.GamepadSample{}}

	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 0})
	kb[keys.ScancodeD] = 1
	s.pads[0] = &device.GamepadSample{Buttons: keys.ButtonY.Mask()}
	c.BeginFrame(s)

	if !c.KeyDown(keys.ScancodeD, false) {
		t.Error("sampled key should be down")
	}
	if !c.ButtonDown(0, keys.ButtonY) {
		t.Error("sampled button should be down")
	}
	// edges come from events only
	if c.KeyUpDown(keys.ScancodeD, false) {
		t.Error("samples do not produce press entries")
	}
}

// sharedSampler hands out the same buffer for every pad.
type sharedSampler struct {
	held map[int]keys.GamepadButton
	buf  device.GamepadSample
}

func (s *sharedSampler) KeyboardState() []uint8            { return nil }
func (s *sharedSampler) MouseState() *device.MouseSample { return nil }
func (s *sharedSampler) GamepadState(pad int) *device.GamepadSample {
	s.buf = device.GamepadSample{}
	if b, ok := s.held[pad]; ok {
		s.buf.Buttons = b.Mask()
	}
	return &s.buf
}

func TestSamplerPadsAreIndependent(t *testing.T) {
	c := NewContext()
	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 0})
	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 1})

	s := &sharedSampler{held: map[int]keys.GamepadButton{0: keys.ButtonA, 1: keys.ButtonB}}
	c.BeginFrame(s)

	if !c.ButtonDown(0, keys.ButtonA) || c.ButtonDown(0, keys.ButtonB) {
		t.Error("pad 0 should hold A only")
	}
	if !c.ButtonDown(1, keys.ButtonB) || c.ButtonDown(1, keys.ButtonA) {
		t.Error("pad 1 should hold B only")
	}

	// pad 1 lets go of B while pad 0 keeps A
	delete(s.held, 1)
	c.BeginFrame(s)
	if !c.ButtonDown(0, keys.ButtonA) {
		t.Error("pad 0 lost A")
	}
	if c.ButtonDown(1, keys.ButtonB) {
		t.Error("pad 1 should have released B")
	}
}

func TestGamepadEventsAndRemoval(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 2, Name: "pad"})
	c.Dispatch(&event.Event{Kind: event.KindGamepadButtonDown, Pad: 2, Button: keys.ButtonA})
	c.Dispatch(&event.Event{Kind: event.KindGamepadAxis, Pad: 2, Axis: keys.AxisLeftY, Value: 16384})

	if !c.ButtonUpDown(2, keys.ButtonA) || !c.ButtonDown(2, keys.ButtonA) {
		t.Fatal("gamepad press not visible")
	}
	if c.Axis(2, keys.AxisLeftY) != 0.5 {
		t.Errorf("axis = %v", c.Axis(2, keys.AxisLeftY))
	}

	c.Dispatch(&event.Event{Kind: event.KindGamepadRemoved, Pad: 2})
	for b := keys.ButtonA; b < keys.NumGamepadButtons; b++ {
		if c.ButtonUpDown(2, b) || c.ButtonDownUp(2, b) || c.ButtonDown(2, b) || c.ButtonUp(2, b) {
			t.Errorf("removed pad answered true for %v", b)
		}
	}
	if c.ButtonUpDownConsume(2, keys.ButtonA, StateIgnore) || c.ButtonUpDownConsumeAll(2, keys.ButtonA, StateIgnore) != 0 {
		t.Error("consume on a removed pad should fail")
	}
	if c.Axis(2, keys.AxisLeftY) != 0 {
		t.Error("axis of a removed pad is 0")
	}

	// out of range indices are ignored, not a crash
	c.Dispatch(&event.Event{Kind: event.KindGamepadButtonDown, Pad: 99, Button: keys.ButtonA})
	if c.ButtonDown(99, keys.ButtonA) || c.ButtonUp(-1, keys.ButtonA) {
		t.Error("out of range pad answered true")
	}
}

func TestGamepadConsume(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)
	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 0})
	c.Dispatch(&event.Event{Kind: event.KindGamepadButtonDown, Pad: 0, Button: keys.ButtonB})
	c.Dispatch(&event.Event{Kind: event.KindGamepadButtonUp, Pad: 0, Button: keys.ButtonB})

	if !c.ButtonUpDownConsume(0, keys.ButtonB, StateDown) {
		t.Fatal("consume failed")
	}
	if c.ButtonUpDown(0, keys.ButtonB) {
		t.Error("press should be consumed")
	}
	if !c.ButtonDown(0, keys.ButtonB) {
		t.Error("StateDown should force the button down")
	}
	if c.ButtonDownUpConsumeAll(0, keys.ButtonB, StateIgnore) != 1 || c.ButtonDownUpConsume(0, keys.ButtonB, StateIgnore) {
		t.Error("release consume failed")
	}
}

func TestHigherPriorityHandlerHidesEvents(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	id := c.Router().Register(RecorderPriority+10, func(ev *event.Event) bool {
		return ev.Kind == event.KindKeyDown && ev.Key == keys.ScancodeT
	})

	if !c.Dispatch(keyDown(keys.ScancodeT)) {
		t.Error("handler should consume T")
	}
	if c.KeyUpDown(keys.ScancodeT, false) {
		t.Error("consumed event must not reach the stacks")
	}
	if !c.KeyDown(keys.ScancodeT, false) {
		t.Error("raw state is applied before routing")
	}

	c.Router().Unregister(id)
	c.Dispatch(keyDown(keys.ScancodeY))
	if !c.KeyUpDown(keys.ScancodeY, false) {
		t.Error("other keys still recorded")
	}
}

func TestKeyboardTrackingToggle(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	c.SetKeyboardTracking(false)
	c.Dispatch(keyDown(keys.ScancodeK))
	if c.KeyDown(keys.ScancodeK, false) || c.KeyUp(keys.ScancodeK, false) {
		t.Error("no keyboard state while tracking is off")
	}
	c.SetKeyboardTracking(true)

	c.SetGamepadTracking(false)
	c.Dispatch(&event.Event{Kind: event.KindGamepadAdded, Pad: 0})
	c.Dispatch(&event.Event{Kind: event.KindGamepadButtonDown, Pad: 0, Button: keys.ButtonX})
	if c.ButtonDown(0, keys.ButtonX) {
		t.Error("no gamepad state while tracking is off")
	}
}

func TestDispatchAllAndPresses(t *testing.T) {
	c := NewContext()
	c.BeginFrame(nil)

	c.DispatchAll([]event.Event{
		{Kind: event.KindKeyDown, Key: keys.ScancodeH},
		{Kind: event.KindKeyDown, Key: keys.ScancodeI},
		{Kind: event.KindKeyUp, Key: keys.ScancodeH},
	})
	if got := c.KeyPresses(); len(got) != 2 || got[0] != keys.ScancodeH || got[1] != keys.ScancodeI {
		t.Errorf("KeyPresses = %v", got)
	}
	if got := c.KeyReleases(); len(got) != 1 || got[0] != keys.ScancodeH {
		t.Errorf("KeyReleases = %v", got)
	}
}
