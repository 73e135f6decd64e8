package entity

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by Get, Update and Delete when no record in the
// collection carries the requested id.
var ErrNotFound = errors.New("record not found")

// ValidationError reports a rejected field value. The store itself stays
// permissive; services raise these at their boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
