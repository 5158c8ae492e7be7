package binding

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/input/keys"
	"github.com/Faultbox/midgard-input/internal/logger"
)

// Collection maps actions to physical inputs and back. Each action owns a
// fixed number of slots; each physical input belongs to at most one action.
// The two tables are always updated together.
type Collection[P comparable] struct {
	slots   int
	invalid P
	valid   func(P) bool
	name    func(P) string

	describer Describer

	// toPhysical holds slots entries per action, indexed by action id.
	toPhysical []P
	toAction   map[P]ActionID
}

// Keys binds scancodes with a primary and a secondary slot per action.
type Keys = Collection[keys.Scancode]

// Buttons binds gamepad buttons with a single slot per action.
type Buttons = Collection[keys.GamepadButton]

// NewKeys creates an empty keyboard binding collection.
func NewKeys(d Describer) *Keys {
	return &Keys{
		slots:     2,
		invalid:   keys.ScancodeUnknown,
		valid:     keys.Scancode.Valid,
		name:      keys.Scancode.Name,
		describer: d,
		toAction:  make(map[keys.Scancode]ActionID),
	}
}

// NewButtons creates an empty gamepad binding collection.
func NewButtons(d Describer) *Buttons {
	return &Buttons{
		slots:     1,
		invalid:   keys.ButtonInvalid,
		valid:     keys.GamepadButton.Valid,
		name:      keys.GamepadButton.Name,
		describer: d,
		toAction:  make(map[keys.GamepadButton]ActionID),
	}
}

// Slots returns the number of bind slots per action.
func (c *Collection[P]) Slots() int {
	return c.slots
}

// Len returns the number of action rows. It grows as actions are bound and
// never shrinks.
func (c *Collection[P]) Len() int {
	return len(c.toPhysical) / c.slots
}

// Bound returns the number of physical inputs currently bound.
func (c *Collection[P]) Bound() int {
	return len(c.toAction)
}

// SetDescriber replaces the description source used in messages.
func (c *Collection[P]) SetDescriber(d Describer) {
	c.describer = d
}

// AddMapping binds p to action a.
//
// If p already belongs to another action the call fails with a
// *ConflictError unless overwrite or clearConflicting is set, in which case
// the other action loses p. The action takes its first free slot. When no
// slot is free, overwrite replaces the primary slot and frees the input that
// was there; otherwise ErrNoFreeSlot is returned.
func (c *Collection[P]) AddMapping(p P, a ActionID, overwrite, clearConflicting bool) error {
	if !c.valid(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPhysical, p)
	}
	if !a.Valid() {
		return ErrInvalidAction
	}
	c.grow(a)

	existing, bound := c.toAction[p]
	if bound && existing == a {
		return nil
	}
	if bound && !overwrite && !clearConflicting {
		return c.conflict(p, a, existing)
	}

	slot := c.freeSlot(a)
	if slot < 0 {
		if !overwrite {
			logger.Named("keybindings").Warn("can't bind input",
				zap.String("input", c.name(p)),
				zap.String("action", c.describe(a)),
				zap.Error(ErrNoFreeSlot),
			)
			return fmt.Errorf("binding %q to %q: %w", c.name(p), c.describe(a), ErrNoFreeSlot)
		}
		slot = int(Primary)
	}

	if bound {
		c.clearPhysical(p)
	}
	c.assign(a, slot, p)

	logger.Named("keybindings").Debug("bound input",
		zap.String("input", c.name(p)),
		zap.String("action", c.describe(a)),
		zap.Stringer("slot", Slot(slot)),
	)
	return nil
}

// SetSlot binds p to a specific slot of action a, replacing whatever the
// slot held. If p belongs to another action the call fails with a
// *ConflictError unless overwrite is set. If p is bound to another slot of
// the same action it moves.
func (c *Collection[P]) SetSlot(s Slot, p P, a ActionID, overwrite bool) error {
	if int(s) < 0 || int(s) >= c.slots {
		return fmt.Errorf("%w: %v", ErrInvalidSlot, s)
	}
	if !c.valid(p) {
		return fmt.Errorf("%w: %v", ErrInvalidPhysical, p)
	}
	if !a.Valid() {
		return ErrInvalidAction
	}
	c.grow(a)

	if c.toPhysical[c.index(a, int(s))] == p {
		return nil
	}
	if existing, bound := c.toAction[p]; bound {
		if existing != a && !overwrite {
			return c.conflict(p, a, existing)
		}
		c.clearPhysical(p)
	}
	c.assign(a, int(s), p)
	return nil
}

// ClearSlot unbinds one slot of action a. Slots after it are not moved.
func (c *Collection[P]) ClearSlot(s Slot, a ActionID) {
	if !c.inRange(a) || int(s) < 0 || int(s) >= c.slots {
		return
	}
	i := c.index(a, int(s))
	if old := c.toPhysical[i]; old != c.invalid {
		delete(c.toAction, old)
	}
	c.toPhysical[i] = c.invalid
}

// Unbind frees every slot of action a.
func (c *Collection[P]) Unbind(a ActionID) {
	for s := 0; s < c.slots; s++ {
		c.ClearSlot(Slot(s), a)
	}
}

// UnbindPhysical frees p from whichever action holds it.
func (c *Collection[P]) UnbindPhysical(p P) {
	c.clearPhysical(p)
}

// Physical returns the input in the primary slot of a, or the invalid
// sentinel.
func (c *Collection[P]) Physical(a ActionID) P {
	return c.PhysicalSlot(a, Primary)
}

// PhysicalSlot returns the input in slot s of a, or the invalid sentinel
// for unbound slots and out of range arguments.
func (c *Collection[P]) PhysicalSlot(a ActionID, s Slot) P {
	if !c.inRange(a) || int(s) < 0 || int(s) >= c.slots {
		return c.invalid
	}
	return c.toPhysical[c.index(a, int(s))]
}

// Action returns the action bound to p, or InvalidAction.
func (c *Collection[P]) Action(p P) ActionID {
	if a, ok := c.toAction[p]; ok {
		return a
	}
	return InvalidAction
}

// Each calls fn for every bound slot, in action then slot order.
func (c *Collection[P]) Each(fn func(a ActionID, s Slot, p P)) {
	for i, p := range c.toPhysical {
		if p != c.invalid {
			fn(ActionID(i/c.slots), Slot(i%c.slots), p)
		}
	}
}

// Clone returns an independent copy.
func (c *Collection[P]) Clone() *Collection[P] {
	clone := *c
	clone.toPhysical = append([]P(nil), c.toPhysical...)
	clone.toAction = make(map[P]ActionID, len(c.toAction))
	for p, a := range c.toAction {
		clone.toAction[p] = a
	}
	return &clone
}

// Equal reports whether both collections bind the same inputs to the same
// action slots.
func (c *Collection[P]) Equal(other *Collection[P]) bool {
	if c.slots != other.slots || len(c.toAction) != len(other.toAction) {
		return false
	}
	n := max(c.Len(), other.Len())
	for a := 0; a < n; a++ {
		for s := 0; s < c.slots; s++ {
			if c.PhysicalSlot(ActionID(a), Slot(s)) != other.PhysicalSlot(ActionID(a), Slot(s)) {
				return false
			}
		}
	}
	return true
}

// Reset unbinds everything. Capacity is kept.
func (c *Collection[P]) Reset() {
	for i := range c.toPhysical {
		c.toPhysical[i] = c.invalid
	}
	clear(c.toAction)
}

func (c *Collection[P]) conflict(p P, a, existing ActionID) error {
	err := &ConflictError{
		Physical:            c.name(p),
		Action:              a,
		Description:         c.describe(a),
		Existing:            existing,
		ExistingDescription: c.describe(existing),
	}
	logger.Named("keybindings").Warn(err.Error())
	return err
}

func (c *Collection[P]) assign(a ActionID, slot int, p P) {
	i := c.index(a, slot)
	if old := c.toPhysical[i]; old != c.invalid {
		delete(c.toAction, old)
	}
	c.toPhysical[i] = p
	c.toAction[p] = a
}

func (c *Collection[P]) clearPhysical(p P) {
	a, ok := c.toAction[p]
	if !ok {
		return
	}
	delete(c.toAction, p)
	for s := 0; s < c.slots; s++ {
		if i := c.index(a, s); c.toPhysical[i] == p {
			c.toPhysical[i] = c.invalid
		}
	}
}

func (c *Collection[P]) freeSlot(a ActionID) int {
	for s := 0; s < c.slots; s++ {
		if c.toPhysical[c.index(a, s)] == c.invalid {
			return s
		}
	}
	return -1
}

// grow extends the action table so a has a row, filling the gap with the
// invalid sentinel.
func (c *Collection[P]) grow(a ActionID) {
	need := (int(a) + 1) * c.slots
	for len(c.toPhysical) < need {
		c.toPhysical = append(c.toPhysical, c.invalid)
	}
}

func (c *Collection[P]) inRange(a ActionID) bool {
	return a.Valid() && int(a) < c.Len()
}

func (c *Collection[P]) index(a ActionID, slot int) int {
	return int(a)*c.slots + slot
}

func (c *Collection[P]) describe(a ActionID) string {
	if c.describer != nil {
		if d := c.describer.Describe(a); d != "" {
			return d
		}
	}
	return a.String()
}
