package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Faultbox/midgard-input/internal/game/controls"
	"github.com/Faultbox/midgard-input/internal/input/action"
	"github.com/Faultbox/midgard-input/internal/input/bindctx"
	"github.com/Faultbox/midgard-input/internal/input/binding"
)

// session is a registry holding the demo actions with bindings read from
// one file.
type session struct {
	reg  *action.Registry
	path string
}

func openSession(path string) (*session, error) {
	reg := action.NewRegistry(path)
	controls.Register(reg)
	if err := reg.ReadConfig(""); err != nil {
		return nil, err
	}
	return &session{reg: reg, path: reg.ConfigPath()}, nil
}

func (s *session) save() error {
	return s.reg.SaveConfig("")
}

// contexts returns the named context, or every context when name is empty.
func (s *session) contexts(name string) ([]*bindctx.Context, error) {
	if name != "" {
		bc, err := s.context(name)
		if err != nil {
			return nil, err
		}
		return []*bindctx.Context{bc}, nil
	}

	var out []*bindctx.Context
	for _, h := range s.reg.Handles() {
		out = append(out, s.reg.MustContext(h))
	}
	return out, nil
}

func (s *session) context(name string) (*bindctx.Context, error) {
	h, ok := s.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown bind context %q", name)
	}
	return s.reg.MustContext(h), nil
}

func (s *session) action(bc *bindctx.Context, title string) (binding.ActionID, error) {
	m, ok := bc.Title(title)
	if !ok {
		return binding.InvalidAction, fmt.Errorf("unknown action %q in context %q", title, bc.Name())
	}
	return m.Action, nil
}

// slotKind names one of the three bindable slots of an action as it is
// written in the bindings file.
type slotKind string

const (
	kindPrimary   slotKind = "primary"
	kindSecondary slotKind = "secondary"
	kindGamepad   slotKind = "gamepad"
	kindAll       slotKind = "all"
)

var allKinds = []slotKind{kindPrimary, kindSecondary, kindGamepad}

func parseSlotKind(s string) (slotKind, error) {
	switch k := slotKind(strings.ToLower(s)); k {
	case kindPrimary, kindSecondary, kindGamepad:
		return k, nil
	}
	return "", fmt.Errorf("unknown slot %q (want primary, secondary or gamepad)", s)
}

// String implements pflag.Value.
func (k *slotKind) String() string {
	return string(*k)
}

// Set implements pflag.Value.
func (k *slotKind) Set(s string) error {
	if strings.EqualFold(s, string(kindAll)) {
		*k = kindAll
		return nil
	}
	parsed, err := parseSlotKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Type implements pflag.Value.
func (k *slotKind) Type() string {
	return "slot"
}

var _ pflag.Value = (*slotKind)(nil)

// get returns the input name bound to kind.
func get(bc *bindctx.Context, a binding.ActionID, kind slotKind) string {
	switch kind {
	case kindPrimary:
		return bc.Keys().PhysicalSlot(a, binding.Primary).Name()
	case kindSecondary:
		return bc.Keys().PhysicalSlot(a, binding.Secondary).Name()
	case kindGamepad:
		return bc.Buttons().Physical(a).Name()
	}
	return ""
}

// bind parses name and binds it to kind. An empty name clears the slot.
func bind(bc *bindctx.Context, a binding.ActionID, kind slotKind, name string, overwrite bool) error {
	if name == "" {
		unbind(bc, a, kind)
		return nil
	}

	switch kind {
	case kindPrimary, kindSecondary:
		sc, err := binding.ParseKey(name)
		if err != nil {
			return err
		}
		slot := binding.Primary
		if kind == kindSecondary {
			slot = binding.Secondary
		}
		return bc.Keys().SetSlot(slot, sc, a, overwrite)
	case kindGamepad:
		b, err := binding.ParseButton(name)
		if err != nil {
			return err
		}
		return bc.Buttons().SetSlot(binding.Primary, b, a, overwrite)
	}
	return fmt.Errorf("unknown slot %q", kind)
}

func unbind(bc *bindctx.Context, a binding.ActionID, kind slotKind) {
	switch kind {
	case kindPrimary:
		bc.Keys().ClearSlot(binding.Primary, a)
	case kindSecondary:
		bc.Keys().ClearSlot(binding.Secondary, a)
	case kindGamepad:
		bc.Buttons().ClearSlot(binding.Primary, a)
	case kindAll:
		bc.Keys().Unbind(a)
		bc.Buttons().Unbind(a)
	}
}
