// Package action assigns identifiers to named actions and owns the bind
// contexts they are registered in.
package action

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/config"
	"github.com/Faultbox/midgard-input/internal/input/bindctx"
	"github.com/Faultbox/midgard-input/internal/input/binding"
	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// Handle refers to a bind context slot in a Registry. Released slots are
// reused, so a handle is only meaningful while its context is alive.
type Handle int

// InvalidHandle never resolves to a context.
const InvalidHandle Handle = -1

// Registry is the central table of actions and bind contexts. Create one at
// startup and pass it to whatever needs to create or query actions.
type Registry struct {
	configPath string

	contexts []*bindctx.Context // nil entries are free slots

	titles       []string
	descriptions []string
	owners       []Handle

	// store is the last store read, kept so saving preserves comments and
	// entries of contexts that are not currently allocated
	store *config.Store
}

// NewRegistry creates an empty registry. An empty configPath selects
// config.DefaultBindingsFile.
func NewRegistry(configPath string) *Registry {
	if configPath == "" {
		configPath = config.DefaultBindingsFile
	}
	return &Registry{configPath: configPath}
}

// ConfigPath returns the default keybindings file.
func (r *Registry) ConfigPath() string {
	return r.configPath
}

// AllocateBindContext creates a context named name in the first free slot,
// appending when none is free.
func (r *Registry) AllocateBindContext(name string) Handle {
	ctx := bindctx.New(name, r)
	for i, c := range r.contexts {
		if c == nil {
			r.contexts[i] = ctx
			return Handle(i)
		}
	}
	r.contexts = append(r.contexts, ctx)
	return Handle(len(r.contexts) - 1)
}

// ReleaseBindContext frees the slot of h. Actions created in it keep their
// identifiers but no longer resolve to bindings.
func (r *Registry) ReleaseBindContext(h Handle) {
	if _, ok := r.Context(h); !ok {
		logger.Named("keybindings").Warn("release of unknown bind context", zap.Int("handle", int(h)))
		return
	}
	r.contexts[h] = nil
}

// Context returns the live context for h.
func (r *Registry) Context(h Handle) (*bindctx.Context, bool) {
	if h < 0 || int(h) >= len(r.contexts) || r.contexts[h] == nil {
		return nil, false
	}
	return r.contexts[h], true
}

// MustContext is like Context but panics on a dead handle.
func (r *Registry) MustContext(h Handle) *bindctx.Context {
	ctx, ok := r.Context(h)
	if !ok {
		panic(fmt.Sprintf("action: bind context handle %d is not allocated", h))
	}
	return ctx
}

// Lookup finds a live context by name.
func (r *Registry) Lookup(name string) (Handle, bool) {
	for i, c := range r.contexts {
		if c != nil && c.Name() == name {
			return Handle(i), true
		}
	}
	return InvalidHandle, false
}

// Handles returns every live context handle in slot order.
func (r *Registry) Handles() []Handle {
	var hs []Handle
	for i, c := range r.contexts {
		if c != nil {
			hs = append(hs, Handle(i))
		}
	}
	return hs
}

// CreateAction registers an action in the context h and returns its
// identifier. Identifiers are assigned sequentially and never reused until
// ClearActions. A dead handle yields binding.InvalidAction.
func (r *Registry) CreateAction(h Handle, title string, defaultKey keys.Scancode, description string, defaultButton keys.GamepadButton) binding.ActionID {
	ctx, ok := r.Context(h)
	if !ok {
		logger.Named("keybindings").Error("can't create action in unknown bind context",
			zap.String("action", title),
			zap.Int("handle", int(h)),
		)
		return binding.InvalidAction
	}

	a := binding.ActionID(len(r.descriptions))
	r.titles = append(r.titles, title)
	r.descriptions = append(r.descriptions, description)
	r.owners = append(r.owners, h)
	ctx.AddAction(a, title, defaultKey, defaultButton)
	return a
}

// Len returns the number of registered actions.
func (r *Registry) Len() int {
	return len(r.descriptions)
}

// Description returns the description of a. It panics if a was not
// created by this registry.
func (r *Registry) Description(a binding.ActionID) string {
	if !a.Valid() || int(a) >= len(r.descriptions) {
		panic(fmt.Sprintf("action: %v out of range (%d registered)", a, len(r.descriptions)))
	}
	return r.descriptions[a]
}

// Describe implements binding.Describer. Unknown actions yield "".
func (r *Registry) Describe(a binding.ActionID) string {
	if !a.Valid() || int(a) >= len(r.descriptions) {
		return ""
	}
	return r.descriptions[a]
}

// Title returns the title a was created with, or "" for unknown actions.
func (r *Registry) Title(a binding.ActionID) string {
	if !a.Valid() || int(a) >= len(r.titles) {
		return ""
	}
	return r.titles[a]
}

// Owner returns the handle of the context a was created in.
func (r *Registry) Owner(a binding.ActionID) Handle {
	if !a.Valid() || int(a) >= len(r.owners) {
		return InvalidHandle
	}
	return r.owners[a]
}

// Descriptions returns the descriptions indexed by action identifier.
func (r *Registry) Descriptions() []string {
	return r.descriptions
}

// ReadConfig loads the bindings of every live context from path, or from
// ConfigPath when path is empty. Entries missing from the file are filled
// with defaults in memory; SaveConfig writes them out.
func (r *Registry) ReadConfig(path string) error {
	if path == "" {
		path = r.configPath
	}
	store, err := config.LoadStore(path)
	if err != nil {
		return fmt.Errorf("reading keybindings: %w", err)
	}
	r.store = store

	for _, c := range r.contexts {
		if c != nil {
			c.LoadFromConfig(store, r.descriptions)
		}
	}
	logger.Named("keybindings").Info("keybindings loaded",
		zap.String("path", path),
		zap.Int("actions", len(r.descriptions)),
	)
	return nil
}

// ReloadConfig clears every binding and reads the default config file
// again.
func (r *Registry) ReloadConfig() error {
	for _, c := range r.contexts {
		if c != nil {
			c.ClearBindings()
		}
	}
	return r.ReadConfig("")
}

// SaveConfig writes the bindings of every live context to path, or to
// ConfigPath when path is empty. Other entries already in the file are
// kept.
func (r *Registry) SaveConfig(path string) error {
	if path == "" {
		path = r.configPath
	}

	store := r.store
	if store == nil || store.Path() != path {
		var err error
		if store, err = config.LoadStore(path); err != nil {
			return fmt.Errorf("saving keybindings: %w", err)
		}
	}

	for _, c := range r.contexts {
		if c != nil {
			c.SaveToConfig(store)
		}
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("saving keybindings: %w", err)
	}
	logger.Named("keybindings").Info("keybindings saved", zap.String("path", path))
	return nil
}

// ClearActions forgets every action and the title table of every context.
// Contexts stay allocated.
func (r *Registry) ClearActions() {
	r.titles = nil
	r.descriptions = nil
	r.owners = nil
	for _, c := range r.contexts {
		if c != nil {
			c.ClearActions()
		}
	}
}
