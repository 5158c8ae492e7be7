// Package sdlinput translates SDL2 events and device state into the
// platform-neutral input events.
package sdlinput

import (
	"go.uber.org/zap"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-input/internal/input/device"
	"github.com/Faultbox/midgard-input/internal/input/event"
	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// Adapter polls SDL2 and owns the open game controllers. Controllers are
// assigned to the first free gamepad slot when they are added, and keep it
// until removed.
type Adapter struct {
	events []event.Event
	slots  [device.MaxGamepads]*sdl.GameController
	byID   map[sdl.JoystickID]int

	mouse device.MouseSample
	pads  [device.MaxGamepads]device.GamepadSample
}

// New creates an adapter. SDL must be initialized with
// INIT_GAMECONTROLLER for gamepad events.
func New() *Adapter {
	return &Adapter{
		events: make([]event.Event, 0, 32),
		byID:   make(map[sdl.JoystickID]int),
	}
}

// Close closes every open controller.
func (a *Adapter) Close() {
	for i, gc := range a.slots {
		if gc != nil {
			gc.Close()
			a.slots[i] = nil
		}
	}
	clear(a.byID)
}

// Poll drains the SDL event queue and returns the translated events. The
// slice is reused by the next call.
func (a *Adapter) Poll() []event.Event {
	a.events = a.events[:0]
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		if ev, ok := a.translate(e); ok {
			a.events = append(a.events, ev)
		}
	}
	return a.events
}

func (a *Adapter) translate(e sdl.Event) (event.Event, bool) {
	switch e := e.(type) {
	case *sdl.QuitEvent:
		return event.Event{Kind: event.KindQuit}, true

	case *sdl.WindowEvent:
		switch e.Event {
		case sdl.WINDOWEVENT_RESIZED:
			return event.Event{Kind: event.KindWindowResize, Width: int(e.Data1), Height: int(e.Data2)}, true
		case sdl.WINDOWEVENT_ENTER:
			return event.Event{Kind: event.KindMouseEnter}, true
		case sdl.WINDOWEVENT_LEAVE:
			return event.Event{Kind: event.KindMouseLeave}, true
		}

	case *sdl.KeyboardEvent:
		ev := event.Event{
			Key:    keys.Scancode(e.Keysym.Scancode),
			Mod:    translateMod(e.Keysym.Mod),
			Repeat: e.Repeat != 0,
		}
		if e.Type == sdl.KEYDOWN {
			ev.Kind = event.KindKeyDown
		} else {
			ev.Kind = event.KindKeyUp
		}
		return ev, true

	case *sdl.MouseMotionEvent:
		return event.Event{
			Kind:   event.KindMouseMotion,
			X:      e.X,
			Y:      e.Y,
			DeltaX: e.XRel,
			DeltaY: e.YRel,
		}, true

	case *sdl.MouseButtonEvent:
		ev := event.Event{
			MouseButton: keys.MouseButton(e.Button),
			Clicks:      int(e.Clicks),
			X:           e.X,
			Y:           e.Y,
		}
		if e.Type == sdl.MOUSEBUTTONDOWN {
			ev.Kind = event.KindMouseButtonDown
		} else {
			ev.Kind = event.KindMouseButtonUp
		}
		return ev, true

	case *sdl.MouseWheelEvent:
		return event.Event{Kind: event.KindMouseWheel, DeltaX: e.X, DeltaY: e.Y}, true

	case *sdl.ControllerDeviceEvent:
		switch e.Type {
		case sdl.CONTROLLERDEVICEADDED:
			return a.open(int(e.Which))
		case sdl.CONTROLLERDEVICEREMOVED:
			return a.remove(e.Which)
		}

	case *sdl.ControllerButtonEvent:
		slot, ok := a.byID[e.Which]
		if !ok {
			return event.Event{}, false
		}
		ev := event.Event{Pad: slot, Button: keys.GamepadButton(e.Button)}
		if e.Type == sdl.CONTROLLERBUTTONDOWN {
			ev.Kind = event.KindGamepadButtonDown
		} else {
			ev.Kind = event.KindGamepadButtonUp
		}
		return ev, true

	case *sdl.ControllerAxisEvent:
		slot, ok := a.byID[e.Which]
		if !ok {
			return event.Event{}, false
		}
		return event.Event{
			Kind:  event.KindGamepadAxis,
			Pad:   slot,
			Axis:  keys.Axis(e.Axis),
			Value: e.Value,
		}, true

	case *sdl.TextInputEvent:
		return event.Event{Kind: event.KindTextInput, Text: e.GetText()}, true

	case *sdl.TextEditingEvent:
		return event.Event{
			Kind:   event.KindTextEditing,
			Text:   e.GetText(),
			Start:  int(e.Start),
			Length: int(e.Length),
		}, true
	}

	return event.Event{}, false
}

// open handles a controller added event. SDL reports the device index,
// which is only valid until the next device event.
func (a *Adapter) open(index int) (event.Event, bool) {
	log := logger.Named("sdl")

	gc := sdl.GameControllerOpen(index)
	if gc == nil {
		log.Warn("failed to open game controller", zap.Int("device", index), zap.Error(sdl.GetError()))
		return event.Event{}, false
	}

	id := gc.Joystick().InstanceID()
	if _, ok := a.byID[id]; ok {
		// already open; SDL hands out a new reference each time
		gc.Close()
		return event.Event{}, false
	}

	slot := -1
	for i, s := range a.slots {
		if s == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		log.Warn("no free gamepad slot", zap.String("name", gc.Name()))
		gc.Close()
		return event.Event{}, false
	}

	a.slots[slot] = gc
	a.byID[id] = slot
	log.Debug("game controller opened",
		zap.Int("slot", slot),
		zap.Int32("instance", int32(id)),
		zap.String("name", gc.Name()),
	)
	return event.Event{Kind: event.KindGamepadAdded, Pad: slot, Name: gc.Name()}, true
}

// remove handles a controller removed event, which carries the instance id.
func (a *Adapter) remove(id sdl.JoystickID) (event.Event, bool) {
	slot, ok := a.byID[id]
	if !ok {
		return event.Event{}, false
	}
	a.slots[slot].Close()
	a.slots[slot] = nil
	delete(a.byID, id)
	return event.Event{Kind: event.KindGamepadRemoved, Pad: slot}, true
}

func translateMod(m uint16) event.Mod {
	var mod event.Mod
	if int(m)&int(sdl.KMOD_SHIFT) != 0 {
		mod |= event.ModShift
	}
	if int(m)&int(sdl.KMOD_CTRL) != 0 {
		mod |= event.ModCtrl
	}
	if int(m)&int(sdl.KMOD_ALT) != 0 {
		mod |= event.ModAlt
	}
	if int(m)&int(sdl.KMOD_GUI) != 0 {
		mod |= event.ModGUI
	}
	return mod
}

// KeyboardState returns the live SDL keyboard array.
func (a *Adapter) KeyboardState() []uint8 {
	return sdl.GetKeyboardState()
}

// MouseState returns the live pointer state. Focus follows the window
// enter and leave events, so Inside is true whenever the mouse has focus.
func (a *Adapter) MouseState() *device.MouseSample {
	x, y, buttons := sdl.GetMouseState()
	a.mouse = device.MouseSample{
		Buttons: buttons,
		X:       x,
		Y:       y,
		Inside:  sdl.GetMouseFocus() != nil,
	}
	return &a.mouse
}

// GamepadState returns the live state of the controller in slot pad, or
// nil if the slot is empty.
func (a *Adapter) GamepadState(pad int) *device.GamepadSample {
	if pad < 0 || pad >= device.MaxGamepads || a.slots[pad] == nil {
		return nil
	}
	gc := a.slots[pad]

	sample := &a.pads[pad]
	*sample = device.GamepadSample{}
	for b := keys.ButtonA; b < keys.NumGamepadButtons; b++ {
		if gc.Button(sdl.GameControllerButton(b)) != 0 {
			sample.Buttons |= b.Mask()
		}
	}
	for ax := keys.AxisLeftX; ax < keys.NumAxes; ax++ {
		sample.Axes[ax] = gc.Axis(sdl.GameControllerAxis(ax))
	}
	return sample
}

// StartTextInput enables SDL text events.
func (a *Adapter) StartTextInput() {
	sdl.StartTextInput()
}

// StopTextInput disables SDL text events.
func (a *Adapter) StopTextInput() {
	sdl.StopTextInput()
}
