package advanced

import "github.com/pkg/errors"

// Threading errors through every layer of the estimator would clutter the
// numerical code, and precondition violations are programmer errors anyway.
// Instead, we panic, and the public API recovers to convert to an error.

var (
	ErrEmptyPointSet  = errors.New("point set is empty")
	ErrLengthMismatch = errors.New("weights and points differ in length")
	ErrNonPositiveK   = errors.New("k must be positive")
	ErrEmptyIndex     = errors.New("spatial index is empty")
)

// PreconditionError is the only panic value HandleEstimatePanicRecover turns
// into an error. Anything else is a genuine bug and keeps panicking.
type PreconditionError struct {
	cause error
}

func (e PreconditionError) Error() string { return e.cause.Error() }
func (e PreconditionError) Unwrap() error { return e.cause }

// Panic with a PreconditionError wrapping one of the sentinel errors.
func fatalf(cause error, format string, args ...interface{}) {
	panic(PreconditionError{errors.Wrapf(cause, format, args...)})
}

func HandleEstimatePanicRecover(r interface{}) error {
	if r != nil {
		if preconditionError, ok := r.(PreconditionError); ok {
			return preconditionError
		}
		panic(r)
	}
	return nil
}
