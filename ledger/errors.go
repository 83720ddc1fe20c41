package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateBillNumber = errors.New("Bill number already exists")
	ErrBillNotFound        = errors.New("bill not found")
	ErrInvalidTransition   = errors.New("bill status transition not allowed")
)

// ValidationError names the field that failed validation. No write has
// happened when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// PartialWriteError reports a bill save that failed after the bill header
// was written. Step names the write that failed; Compensated tells whether
// the rows already written were removed again.
type PartialWriteError struct {
	Step        string
	Compensated bool
	Err         error
}

func (e *PartialWriteError) Error() string {
	state := "not rolled back"
	if e.Compensated {
		state = "rolled back"
	}
	return fmt.Sprintf("bill save failed at %s (%s): %v", e.Step, state, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
