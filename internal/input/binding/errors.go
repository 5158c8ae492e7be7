package binding

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAction is returned when binding to InvalidAction.
	ErrInvalidAction = errors.New("invalid action")

	// ErrInvalidPhysical is returned when binding an unknown key or button.
	ErrInvalidPhysical = errors.New("invalid physical input")

	// ErrInvalidSlot is returned for a slot the collection does not have.
	ErrInvalidSlot = errors.New("invalid binding slot")

	// ErrNoFreeSlot is returned when every slot of the action is taken and
	// overwrite was not requested.
	ErrNoFreeSlot = errors.New("no free bind slots are available")

	// ErrUnknownName is returned when a key or button name does not resolve.
	ErrUnknownName = errors.New("unknown input name")

	// ErrConflict matches every *ConflictError with errors.Is.
	ErrConflict = errors.New("binding conflict")
)

// ConflictError reports a physical input that is already bound to another
// action.
type ConflictError struct {
	Physical            string
	Action              ActionID
	Description         string
	Existing            ActionID
	ExistingDescription string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("can't bind %q to action %q because it is already bound to action %q",
		e.Physical, e.Description, e.ExistingDescription)
}

// Unwrap lets errors.Is(err, ErrConflict) match.
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}
