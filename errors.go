package promise

import (
	"errors"
	"fmt"
)

var (
	// ErrChainingCycle is the rejection reason of a promise that was asked
	// to resolve with itself.
	ErrChainingCycle = errors.New("promise chaining cycle detected")
)

const nilExecutorPanicMsg = "promise: the executor must be a non-nil function"

// PanicError wraps a panic recovered from an executor, a handler, or a
// foreign thenable, and carries it as the rejection reason of the promise
// the panicking code was settling.
type PanicError struct {
	v interface{}
}

func newPanicError(v interface{}) *PanicError {
	return &PanicError{v: v}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("promise: recovered panic: %v", e.v)
}

// V returns the original value the panic was raised with.
func (e *PanicError) V() interface{} {
	return e.v
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.v.(error); ok {
		return err
	}

	return nil
}
