package recovery

import (
	"errors"
	"fmt"
)

type recoveredPanic struct {
	error
}

func (r recoveredPanic) Unwrap() error {
	return r.error
}

func IsRecoveredPanic(err error) bool {
	return errors.As(err, &recoveredPanic{})
}

// Catch converts an in-flight panic into an error assigned through err.
// Use as a deferred call on functions with a named error return.
func Catch(err *error) {
	if p := recover(); p != nil {
		switch v := p.(type) {
		case error:
			*err = recoveredPanic{
				error: fmt.Errorf("recovered panic: %w", v),
			}
		default:
			*err = recoveredPanic{
				error: fmt.Errorf("recovered panic: %v", v),
			}
		}
	}
}

// Do runs fn and reports a panic raised by it as an error.
func Do(fn func()) (err error) {
	defer Catch(&err)

	fn()

	return nil
}
