// Package controls declares the actions of the demo and registers them
// with an action registry.
package controls

import (
	"github.com/Faultbox/midgard-input/internal/input/action"
	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/keys"
)

// Bind context names.
const (
	GameplayContext = "gameplay"
	MenuContext     = "menu"
)

// Gameplay holds the actions available while playing.
type Gameplay struct {
	Handle action.Handle

	MoveUp    binding.ActionID
	MoveDown  binding.ActionID
	MoveLeft  binding.ActionID
	MoveRight binding.ActionID
	Jump      binding.ActionID
	Fire      binding.ActionID
	OpenMenu  binding.ActionID
}

// Menu holds the actions available in the pause menu.
type Menu struct {
	Handle action.Handle

	Up     binding.ActionID
	Down   binding.ActionID
	Accept binding.ActionID
	Back   binding.ActionID
}

// Set is every registered demo action.
type Set struct {
	Gameplay Gameplay
	Menu     Menu
}

// Def describes one action and its compiled-in defaults.
type Def struct {
	Context     string
	Title       string
	Description string
	Key         keys.Scancode
	Button      keys.GamepadButton
}

// Defs lists the demo actions in registration order.
var Defs = []Def{
	{GameplayContext, "MoveUp", "Move up", keys.ScancodeW, keys.ButtonDPadUp},
	{GameplayContext, "MoveDown", "Move down", keys.ScancodeS, keys.ButtonDPadDown},
	{GameplayContext, "MoveLeft", "Move left", keys.ScancodeA, keys.ButtonDPadLeft},
	{GameplayContext, "MoveRight", "Move right", keys.ScancodeD, keys.ButtonDPadRight},
	{GameplayContext, "Jump", "Jump", keys.ScancodeSpace, keys.ButtonA},
	{GameplayContext, "Fire", "Fire", keys.ScancodeF, keys.ButtonRightShoulder},
	{GameplayContext, "OpenMenu", "Open the menu", keys.ScancodeEscape, keys.ButtonStart},

	{MenuContext, "Up", "Previous menu entry", keys.ScancodeUp, keys.ButtonDPadUp},
	{MenuContext, "Down", "Next menu entry", keys.ScancodeDown, keys.ButtonDPadDown},
	{MenuContext, "Accept", "Select", keys.ScancodeReturn, keys.ButtonA},
	{MenuContext, "Back", "Go back", keys.ScancodeEscape, keys.ButtonB},
}

// Register allocates the demo bind contexts and creates every action in
// Defs. Bindings are not loaded; call ReadConfig on the registry after.
func Register(reg *action.Registry) *Set {
	s := &Set{
		Gameplay: Gameplay{Handle: reg.AllocateBindContext(GameplayContext)},
		Menu:     Menu{Handle: reg.AllocateBindContext(MenuContext)},
	}

	targets := map[string]*binding.ActionID{
		GameplayContext + ".MoveUp":    &s.Gameplay.MoveUp,
		GameplayContext + ".MoveDown":  &s.Gameplay.MoveDown,
		GameplayContext + ".MoveLeft":  &s.Gameplay.MoveLeft,
		GameplayContext + ".MoveRight": &s.Gameplay.MoveRight,
		GameplayContext + ".Jump":      &s.Gameplay.Jump,
		GameplayContext + ".Fire":      &s.Gameplay.Fire,
		GameplayContext + ".OpenMenu":  &s.Gameplay.OpenMenu,
		MenuContext + ".Up":            &s.Menu.Up,
		MenuContext + ".Down":          &s.Menu.Down,
		MenuContext + ".Accept":        &s.Menu.Accept,
		MenuContext + ".Back":          &s.Menu.Back,
	}

	for _, d := range Defs {
		h := s.Gameplay.Handle
		if d.Context == MenuContext {
			h = s.Menu.Handle
		}
		id := reg.CreateAction(h, d.Title, d.Key, d.Description, d.Button)
		if t, ok := targets[d.Context+"."+d.Title]; ok {
			*t = id
		}
	}
	return s
}
