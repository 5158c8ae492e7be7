// Package states implements game state management. Each state reads its
// own bind context through the action query facade.
package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/game/controls"
	"github.com/Faultbox/midgard-input/internal/input"
	"github.com/Faultbox/midgard-input/internal/input/action"
	"github.com/Faultbox/midgard-input/internal/input/textinput"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// State represents a game state (gameplay, menu).
type State interface {
	// Name identifies the state in logs.
	Name() string

	// Enter is called when entering this state.
	Enter() error

	// Exit is called when leaving this state.
	Exit() error

	// Update is called every frame after input has been dispatched.
	Update(dt float64) error

	// Indicators returns the panel cells to draw this frame.
	Indicators() []Indicator
}

// Indicator is the display state of one action.
type Indicator struct {
	Label  string
	Held   bool
	Active bool
}

// Env bundles the services states share.
type Env struct {
	Actions  *input.Actions
	Text     *textinput.Input
	Controls *controls.Set

	// Quit asks the game loop to stop.
	Quit func()
}

// Input returns the input context behind the action queries.
func (e *Env) Input() *input.Context {
	return e.Actions.Context()
}

// Registry returns the action registry behind the action queries.
func (e *Env) Registry() *action.Registry {
	return e.Actions.Registry()
}

// Manager manages game state transitions.
type Manager struct {
	current State
	next    State
}

// NewManager creates a new state manager.
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the current state.
func (m *Manager) Current() State {
	return m.current
}

// Change schedules a state change for the next Update.
func (m *Manager) Change(next State) {
	m.next = next
}

// Update processes state changes and updates current state.
func (m *Manager) Update(dt float64) error {
	if m.next != nil {
		if m.current != nil {
			if err := m.current.Exit(); err != nil {
				return err
			}
		}
		prev := m.current
		m.current = m.next
		m.next = nil
		if err := m.current.Enter(); err != nil {
			return err
		}
		fields := []zap.Field{zap.String("to", m.current.Name())}
		if prev != nil {
			fields = append(fields, zap.String("from", prev.Name()))
		}
		logger.Named("states").Debug("state changed", fields...)
	}

	if m.current != nil {
		return m.current.Update(dt)
	}
	return nil
}

// Indicators returns the cells of the current state.
func (m *Manager) Indicators() []Indicator {
	if m.current != nil {
		return m.current.Indicators()
	}
	return nil
}
