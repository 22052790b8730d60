package advanced

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandleEstimatePanicRecover(t *testing.T) {
	testFn := func(shouldThrow bool, shouldPanic bool) (err error) {
		defer func() {
			recoveredErr := HandleEstimatePanicRecover(recover())
			if recoveredErr != nil {
				err = recoveredErr
			}
		}()

		if shouldThrow {
			fatalf(ErrNonPositiveK, "kaboom")
		}

		if shouldPanic {
			panic("true panic")
		}

		return nil
	}

	t.Run("with throw", func(t *testing.T) {
		err := testFn(true, false)
		assert.EqualError(t, err, "kaboom: k must be positive")
		assert.True(t, errors.Is(err, ErrNonPositiveK))
	})

	t.Run("with real panic", func(t *testing.T) {
		assert.Panics(t, func() {
			testFn(false, true)
		})
	})

	t.Run("no error", func(t *testing.T) {
		err := testFn(false, false)
		assert.NoError(t, err)
	})
}

// Helpers

// Run fn and return the precondition error it panicked with, if any.
func catch(fn func()) (err error) {
	defer func() {
		err = HandleEstimatePanicRecover(recover())
	}()
	fn()
	return nil
}
