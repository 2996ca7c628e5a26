package tasks

import "errors"

var (
	ErrNotFound = errors.New("task not found")
	ErrNotOwner = errors.New("task belongs to another user")
)

// ValidationError reports a rejected create/update field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}
