package device

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// MaxGamepads is the number of gamepad slots.
const MaxGamepads = 16

// axisScale maps raw SDL axis values to [-1, 1].
const axisScale = 1.0 / 32768.0

// GamepadSample is a live controller reading.
type GamepadSample struct {
	Buttons uint32
	Axes    [keys.NumAxes]int16
}

// Gamepad is the double-buffered state of one controller. A disconnected
// gamepad reports every button as neither down nor up.
type Gamepad struct {
	current  uint32
	previous uint32
	axes     [keys.NumAxes]float32

	connected bool
	name      string
}

// Connect marks the pad available and clears both snapshots so the first
// frame after a reconnect cannot report a stale edge.
func (g *Gamepad) Connect(name string) {
	g.current, g.previous = 0, 0
	g.axes = [keys.NumAxes]float32{}
	g.connected = true
	g.name = name
}

// Disconnect clears the current snapshot and marks the pad unavailable.
func (g *Gamepad) Disconnect() {
	g.current = 0
	g.axes = [keys.NumAxes]float32{}
	g.connected = false
}

// Connected reports whether the pad is available.
func (g *Gamepad) Connected() bool {
	return g.connected
}

// Name returns the controller name given on Connect.
func (g *Gamepad) Name() string {
	return g.name
}

// Tick starts a new frame. sample, when non-nil, replaces the current
// snapshot of a connected pad.
func (g *Gamepad) Tick(sample *GamepadSample) {
	g.previous = g.current
	if sample == nil || !g.connected {
		return
	}
	g.current = sample.Buttons
	for i, v := range sample.Axes {
		g.axes[i] = float32(v) * axisScale
	}
}

// SetButton records a button event.
func (g *Gamepad) SetButton(b keys.GamepadButton, down bool) {
	if !g.connected {
		return
	}
	if down {
		g.current |= b.Mask()
	} else {
		g.current &^= b.Mask()
	}
}

// SetAxis records an axis event with a raw SDL value.
func (g *Gamepad) SetAxis(a keys.Axis, value int16) {
	if !g.connected || a < 0 || a >= keys.NumAxes {
		return
	}
	g.axes[a] = float32(value) * axisScale
}

// Axis returns the normalized value of a, or 0.
func (g *Gamepad) Axis(a keys.Axis) float32 {
	if !g.connected || a < 0 || a >= keys.NumAxes {
		return 0
	}
	return g.axes[a]
}

// Down reports whether b is held this frame.
func (g *Gamepad) Down(b keys.GamepadButton) bool {
	return g.usable(b) && g.current&b.Mask() != 0
}

// Up reports whether b is released this frame.
func (g *Gamepad) Up(b keys.GamepadButton) bool {
	return g.usable(b) && g.current&b.Mask() == 0
}

// Pressed reports an up to down transition between the last two frames.
func (g *Gamepad) Pressed(b keys.GamepadButton) bool {
	return g.Down(b) && g.previous&b.Mask() == 0
}

// Released reports a down to up transition between the last two frames.
func (g *Gamepad) Released(b keys.GamepadButton) bool {
	return g.Up(b) && g.previous&b.Mask() != 0
}

func (g *Gamepad) usable(b keys.GamepadButton) bool {
	return g.connected && b.Valid()
}

// Gamepads is a fixed table of gamepad slots addressed by device index.
// Indices may arrive in any order and need not be dense.
type Gamepads struct {
	pads     [MaxGamepads]Gamepad
	tracking bool
}

// NewGamepads creates a table with every slot disconnected.
func NewGamepads() *Gamepads {
	return &Gamepads{tracking: true}
}

// Add connects slot i. Out of range indices are logged and ignored.
func (p *Gamepads) Add(i int, name string) bool {
	if i < 0 || i >= MaxGamepads {
		logger.Named("gamepad").Warn("gamepad index out of range",
			zap.Int("index", i),
			zap.Int("max", MaxGamepads),
		)
		return false
	}
	p.pads[i].Connect(name)
	logger.Named("gamepad").Info("gamepad connected", zap.Int("index", i), zap.String("name", name))
	return true
}

// Remove disconnects slot i.
func (p *Gamepads) Remove(i int) {
	if i < 0 || i >= MaxGamepads {
		logger.Named("gamepad").Warn("gamepad index out of range", zap.Int("index", i))
		return
	}
	p.pads[i].Disconnect()
	logger.Named("gamepad").Info("gamepad disconnected", zap.Int("index", i))
}

// Get returns the pad in slot i, or nil for an out of range index. The pad
// may be disconnected.
func (p *Gamepads) Get(i int) *Gamepad {
	if i < 0 || i >= MaxGamepads {
		return nil
	}
	return &p.pads[i]
}

// Connected reports whether slot i holds an available pad.
func (p *Gamepads) Connected(i int) bool {
	g := p.Get(i)
	return g != nil && g.Connected()
}

// Count returns the number of connected pads.
func (p *Gamepads) Count() int {
	n := 0
	for i := range p.pads {
		if p.pads[i].connected {
			n++
		}
	}
	return n
}

// SetTracking enables or disables state updates for every pad.
func (p *Gamepads) SetTracking(on bool) {
	p.tracking = on
	if !on {
		for i := range p.pads {
			p.pads[i].current = 0
		}
	}
}

// Tracking reports whether state updates are enabled.
func (p *Gamepads) Tracking() bool {
	return p.tracking
}

// Tick advances every pad. samples, when non-nil, is indexed by slot; nil
// entries leave the current snapshot as set by events.
func (p *Gamepads) Tick(samples []*GamepadSample) {
	for i := range p.pads {
		var s *GamepadSample
		if p.tracking && i < len(samples) {
			s = samples[i]
		}
		p.pads[i].Tick(s)
	}
}
