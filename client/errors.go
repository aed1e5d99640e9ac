package client

import "fmt"

// FormatError reports a date value the pass number machinery cannot use.
type FormatError struct {
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid gate pass date %q: %v", e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// SequenceResolutionError means the server could not resolve the last issued
// number for the day while allocating.
type SequenceResolutionError struct {
	Err error
}

func (e *SequenceResolutionError) Error() string {
	return fmt.Sprintf("gate pass number allocation failed: %v", e.Err)
}

func (e *SequenceResolutionError) Unwrap() error { return e.Err }

// CreationError wraps any failure of the create flow. The provisional id, if
// one was sent, is abandoned.
type CreationError struct {
	GatePassID string
	Err        error
}

func (e *CreationError) Error() string {
	return fmt.Sprintf("gate pass creation failed: %v", e.Err)
}

func (e *CreationError) Unwrap() error { return e.Err }

// UpdateError wraps any failure of the update flow.
type UpdateError struct {
	GatePassID string
	Err        error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("gate pass update failed (id=%s): %v", e.GatePassID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }
