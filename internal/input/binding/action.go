// Package binding maintains the bidirectional mapping between logical
// actions and the physical inputs bound to them.
package binding

import "strconv"

// ActionID is a stable handle for a registered action.
type ActionID int

// InvalidAction is returned for unbound physical inputs and failed
// registrations.
const InvalidAction ActionID = -1

// Valid reports whether a could name a registered action.
func (a ActionID) Valid() bool {
	return a >= 0
}

func (a ActionID) String() string {
	if !a.Valid() {
		return "invalid"
	}
	return "action " + strconv.Itoa(int(a))
}

// Describer supplies human readable action descriptions for log and error
// messages. Implementations must not panic on unknown actions.
type Describer interface {
	Describe(a ActionID) string
}

// DescriberFunc adapts a function to the Describer interface.
type DescriberFunc func(a ActionID) string

// Describe implements Describer.
func (f DescriberFunc) Describe(a ActionID) string {
	return f(a)
}

// Slot selects one of an action's binding slots.
type Slot int

const (
	Primary Slot = iota
	Secondary
)

func (s Slot) String() string {
	switch s {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	}
	return "slot " + strconv.Itoa(int(s))
}
