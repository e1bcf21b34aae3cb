package invitation

import (
	"fmt"

	"github.com/svera/camposanto/internal/sentinel"
)

// StateError is returned when an operation is not allowed for the current
// invitation status of a burial record
type StateError struct {
	Op     string
	Status Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s invitation with status %s", e.Op, e.Status)
}

func (e *StateError) Unwrap() error {
	return sentinel.ErrInvalidState
}
