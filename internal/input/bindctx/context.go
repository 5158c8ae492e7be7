// Package bindctx groups actions under a named context, such as "gameplay"
// or "menu", and persists their bindings to a key/value store.
package bindctx

import (
	"errors"
	"slices"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// Store is the key/value backend bindings are loaded from and saved to.
// *config.Store implements it.
type Store interface {
	// GetString returns the value for key, recording def when absent.
	// A non-empty comment is written next to the key.
	GetString(key, def, comment string) string
	SetString(key, value string)
}

// TitleMapping is the compiled-in description of one action.
type TitleMapping struct {
	Action        binding.ActionID
	DefaultKey    keys.Scancode
	DefaultButton keys.GamepadButton
}

// Context holds the actions of one input mode and their current bindings.
type Context struct {
	name      string
	describer binding.Describer
	titles    map[string]TitleMapping
	keys      *binding.Keys
	buttons   *binding.Buttons
}

// New creates an empty context. The describer is used for conflict
// messages and may be nil.
func New(name string, d binding.Describer) *Context {
	return &Context{
		name:      name,
		describer: d,
		titles:    make(map[string]TitleMapping),
		keys:      binding.NewKeys(d),
		buttons:   binding.NewButtons(d),
	}
}

// Name returns the context name used as the config key prefix.
func (c *Context) Name() string {
	return c.name
}

// AddAction records the title and defaults of action a. No binding is
// created until the context is loaded or defaults are applied.
func (c *Context) AddAction(a binding.ActionID, title string, defaultKey keys.Scancode, defaultButton keys.GamepadButton) {
	c.titles[title] = TitleMapping{
		Action:        a,
		DefaultKey:    defaultKey,
		DefaultButton: defaultButton,
	}
}

// Titles returns the action titles in sorted order.
func (c *Context) Titles() []string {
	titles := make([]string, 0, len(c.titles))
	for t := range c.titles {
		titles = append(titles, t)
	}
	slices.Sort(titles)
	return titles
}

// Title returns the mapping recorded for title.
func (c *Context) Title(title string) (TitleMapping, bool) {
	m, ok := c.titles[title]
	return m, ok
}

// Keys returns the live keyboard bindings.
func (c *Context) Keys() *binding.Keys {
	return c.keys
}

// Buttons returns the live gamepad bindings.
func (c *Context) Buttons() *binding.Buttons {
	return c.buttons
}

// SetKeys replaces the keyboard bindings with a copy of k.
func (c *Context) SetKeys(k *binding.Keys) {
	c.keys = k.Clone()
	c.keys.SetDescriber(c.describer)
}

// SetButtons replaces the gamepad bindings with a copy of b.
func (c *Context) SetButtons(b *binding.Buttons) {
	c.buttons = b.Clone()
	c.buttons.SetDescriber(c.describer)
}

// LoadFromConfig reads every action's bindings from store. Keys are
// <name>.primary.<title>, <name>.secondary.<title> and <name>.gamepad.<title>.
// Missing keys fall back to the compiled defaults (none for the secondary
// slot) and are recorded in the store together with the action description
// taken from descriptions. Names that do not resolve are logged and leave
// the slot unbound.
func (c *Context) LoadFromConfig(store Store, descriptions []string) {
	titles := c.Titles()

	for _, title := range titles {
		m := c.titles[title]
		name := store.GetString(c.key("primary", title), m.DefaultKey.Name(), describe(descriptions, m.Action))
		c.loadKey(binding.Primary, name, m.Action)
	}
	for _, title := range titles {
		m := c.titles[title]
		name := store.GetString(c.key("secondary", title), "", describe(descriptions, m.Action))
		c.loadKey(binding.Secondary, name, m.Action)
	}
	for _, title := range titles {
		m := c.titles[title]
		name := store.GetString(c.key("gamepad", title), m.DefaultButton.Name(), describe(descriptions, m.Action))
		c.loadButton(name, m.Action)
	}
}

// SaveToConfig writes the current bindings of every action to store.
// Unbound slots are written as empty strings.
func (c *Context) SaveToConfig(store Store) {
	titles := c.Titles()

	for _, title := range titles {
		a := c.titles[title].Action
		store.SetString(c.key("primary", title), c.keys.PhysicalSlot(a, binding.Primary).Name())
	}
	for _, title := range titles {
		a := c.titles[title].Action
		store.SetString(c.key("secondary", title), c.keys.PhysicalSlot(a, binding.Secondary).Name())
	}
	for _, title := range titles {
		a := c.titles[title].Action
		store.SetString(c.key("gamepad", title), c.buttons.Physical(a).Name())
	}
}

// ClearBindings unbinds everything but keeps the action titles.
func (c *Context) ClearBindings() {
	c.keys = binding.NewKeys(c.describer)
	c.buttons = binding.NewButtons(c.describer)
}

// ClearActions forgets every action and its bindings.
func (c *Context) ClearActions() {
	c.ClearBindings()
	clear(c.titles)
}

// DefaultKeys builds a keyboard collection from the compiled defaults.
func (c *Context) DefaultKeys() *binding.Keys {
	k := binding.NewKeys(c.describer)
	for _, title := range c.Titles() {
		m := c.titles[title]
		if m.DefaultKey.Valid() {
			_ = k.AddMapping(m.DefaultKey, m.Action, false, false)
		}
	}
	return k
}

// DefaultButtons builds a gamepad collection from the compiled defaults.
func (c *Context) DefaultButtons() *binding.Buttons {
	b := binding.NewButtons(c.describer)
	for _, title := range c.Titles() {
		m := c.titles[title]
		if m.DefaultButton.Valid() {
			_ = b.AddMapping(m.DefaultButton, m.Action, false, false)
		}
	}
	return b
}

func (c *Context) key(kind, title string) string {
	return c.name + "." + kind + "." + title
}

func (c *Context) loadKey(slot binding.Slot, name string, a binding.ActionID) {
	if name == "" {
		return
	}
	log := logger.Named("keybindings")

	sc, err := binding.ParseKey(name)
	if err != nil {
		log.Warn("failed to interpret key name as a scancode",
			zap.String("context", c.name),
			zap.Error(err),
		)
		return
	}
	if err := c.keys.SetSlot(slot, sc, a, false); err != nil && !errors.Is(err, binding.ErrConflict) {
		// conflicts are already logged by the collection
		log.Warn("failed to load key binding", zap.String("context", c.name), zap.Error(err))
	}
}

func (c *Context) loadButton(name string, a binding.ActionID) {
	if name == "" {
		return
	}
	log := logger.Named("keybindings")

	b, err := binding.ParseButton(name)
	if err != nil {
		log.Warn("failed to interpret button name",
			zap.String("context", c.name),
			zap.Error(err),
		)
		return
	}
	if err := c.buttons.SetSlot(binding.Primary, b, a, false); err != nil && !errors.Is(err, binding.ErrConflict) {
		log.Warn("failed to load gamepad binding", zap.String("context", c.name), zap.Error(err))
	}
}

func describe(descriptions []string, a binding.ActionID) string {
	if a.Valid() && int(a) < len(descriptions) {
		return descriptions[a]
	}
	return ""
}
