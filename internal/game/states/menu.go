package states

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/input"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// Menu entries.
const (
	ItemResume = iota
	ItemRename
	ItemSave
	ItemReload
	ItemQuit

	numItems
)

var itemLabels = [numItems]string{
	"Resume",
	"Rename player",
	"Save bindings",
	"Reload bindings",
	"Quit",
}

// renameOwner identifies the menu as the text input owner.
const renameOwner = 1

// MenuState is the pause menu. Keyboard action queries are paused while
// the player name is being edited; Accept and Back still end the edit.
type MenuState struct {
	env      *Env
	manager  *Manager
	gameplay *GameplayState

	Selected int
	Status   string

	cells []Indicator
}

// NewMenuState creates the menu state returning to gameplay.
func NewMenuState(env *Env, manager *Manager, gameplay *GameplayState) *MenuState {
	return &MenuState{
		env:      env,
		manager:  manager,
		gameplay: gameplay,
	}
}

// Name implements State.
func (s *MenuState) Name() string {
	return "menu"
}

// Enter is called when entering this state.
func (s *MenuState) Enter() error {
	s.Selected = ItemResume
	s.Status = ""
	return nil
}

// Exit is called when leaving this state.
func (s *MenuState) Exit() error {
	if s.Renaming() {
		s.env.Text.Stop()
	}
	return nil
}

// Renaming reports whether the player name is being edited.
func (s *MenuState) Renaming() bool {
	return s.env.Text.Active(renameOwner)
}

// Update is called every frame.
func (s *MenuState) Update(dt float64) error {
	a := s.env.Actions
	c := s.env.Controls.Menu
	activated := -1

	switch {
	case s.Renaming():
		if a.UpDown(c.Handle, c.Accept, input.DeviceAny, true) {
			if name := s.env.Text.Stop(); name != "" {
				s.gameplay.PlayerName = name
			}
			logger.Info("player renamed", zap.String("name", s.gameplay.PlayerName))
		} else if a.UpDown(c.Handle, c.Back, input.DeviceAny, true) {
			s.env.Text.Stop()
		}

	case a.UpDown(c.Handle, c.Back, input.DeviceAny, false):
		s.manager.Change(s.gameplay)

	default:
		if a.UpDown(c.Handle, c.Up, input.DeviceAny, false) {
			s.Selected = (s.Selected + numItems - 1) % numItems
		}
		if a.UpDown(c.Handle, c.Down, input.DeviceAny, false) {
			s.Selected = (s.Selected + 1) % numItems
		}
		if a.UpDown(c.Handle, c.Accept, input.DeviceAny, false) {
			activated = s.Selected
			s.activate(activated)
		}
	}

	s.cells = s.cells[:0]
	for i, label := range itemLabels {
		if i == ItemRename && s.Renaming() {
			label = "Name: " + s.env.Text.Text()
		}
		s.cells = append(s.cells, Indicator{
			Label:  label,
			Held:   i == s.Selected,
			Active: i == activated,
		})
	}
	return nil
}

func (s *MenuState) activate(item int) {
	log := logger.Named("states")
	reg := s.env.Registry()

	switch item {
	case ItemResume:
		s.manager.Change(s.gameplay)
	case ItemRename:
		s.env.Text.Start(renameOwner, s.gameplay.PlayerName, -1)
	case ItemSave:
		if err := reg.SaveConfig(""); err != nil {
			log.Error("failed to save keybindings", zap.Error(err))
			s.Status = err.Error()
			return
		}
		s.Status = "Saved to " + reg.ConfigPath()
	case ItemReload:
		if err := reg.ReloadConfig(); err != nil {
			log.Error("failed to reload keybindings", zap.Error(err))
			s.Status = err.Error()
			return
		}
		s.Status = "Reloaded " + reg.ConfigPath()
	case ItemQuit:
		if s.env.Quit != nil {
			s.env.Quit()
		}
	}
}

// Indicators implements State.
func (s *MenuState) Indicators() []Indicator {
	return s.cells
}
