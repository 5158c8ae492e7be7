package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/input"
	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

const (
	moveSpeed     = 200.0 // units per second
	stickDeadZone = 0.25
)

// GameplayState moves a marker around with the gameplay actions.
type GameplayState struct {
	env     *Env
	manager *Manager
	menu    State

	// Player
	PlayerName string
	X, Y       float64
	Jumps      int
	Shots      int

	cells []Indicator
}

// NewGameplayState creates the gameplay state.
func NewGameplayState(env *Env, manager *Manager) *GameplayState {
	return &GameplayState{
		env:        env,
		manager:    manager,
		PlayerName: "Player",
	}
}

// SetMenu sets the state OpenMenu switches to.
func (s *GameplayState) SetMenu(menu State) {
	s.menu = menu
}

// Name implements State.
func (s *GameplayState) Name() string {
	return "gameplay"
}

// Enter is called when entering this state.
func (s *GameplayState) Enter() error {
	logger.Info("entering gameplay", zap.String("player", s.PlayerName))
	return nil
}

// Exit is called when leaving this state.
func (s *GameplayState) Exit() error {
	return nil
}

// Update is called every frame.
func (s *GameplayState) Update(dt float64) error {
	a := s.env.Actions
	c := s.env.Controls.Gameplay

	var dx, dy float64
	if a.Down(c.Handle, c.MoveLeft, input.DeviceAny, false) {
		dx--
	}
	if a.Down(c.Handle, c.MoveRight, input.DeviceAny, false) {
		dx++
	}
	if a.Down(c.Handle, c.MoveUp, input.DeviceAny, false) {
		dy--
	}
	if a.Down(c.Handle, c.MoveDown, input.DeviceAny, false) {
		dy++
	}
	if v := s.env.Input().Axis(0, keys.AxisLeftX); v > stickDeadZone || v < -stickDeadZone {
		dx += float64(v)
	}
	if v := s.env.Input().Axis(0, keys.AxisLeftY); v > stickDeadZone || v < -stickDeadZone {
		dy += float64(v)
	}
	s.X += dx * moveSpeed * dt
	s.Y += dy * moveSpeed * dt

	jumped := a.UpDown(c.Handle, c.Jump, input.DeviceAny, false)
	if jumped {
		s.Jumps++
		logger.Debug("jump", zap.Int("count", s.Jumps))
	}

	// a fire press and a left click are the same shot
	fired := a.UpDownConsume(c.Handle, c.Fire, input.DeviceAny, input.StateIgnore)
	if s.env.Input().MouseUpDownConsume(keys.MouseLeft, input.StateIgnore) {
		fired = true
	}
	if fired {
		s.Shots++
		logger.Debug("fire", zap.Int("count", s.Shots))
	}

	openMenu := a.UpDown(c.Handle, c.OpenMenu, input.DeviceAny, false)
	if openMenu && s.menu != nil {
		s.manager.Change(s.menu)
	}

	s.cells = s.cells[:0]
	for _, id := range []binding.ActionID{c.MoveUp, c.MoveDown, c.MoveLeft, c.MoveRight} {
		s.cells = append(s.cells, s.indicator(id, false))
	}
	s.cells = append(s.cells,
		s.indicator(c.Jump, jumped),
		s.indicator(c.Fire, fired),
		s.indicator(c.OpenMenu, openMenu),
	)
	return nil
}

func (s *GameplayState) indicator(id binding.ActionID, fired bool) Indicator {
	c := s.env.Controls.Gameplay
	a := s.env.Actions
	return Indicator{
		Label:  s.env.Registry().Describe(id),
		Held:   a.Down(c.Handle, id, input.DeviceAny, false),
		Active: fired || a.UpDown(c.Handle, id, input.DeviceAny, false),
	}
}

// Indicators implements State.
func (s *GameplayState) Indicators() []Indicator {
	return s.cells
}
