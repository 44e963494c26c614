package capacity

import (
	"errors"
	"fmt"
)

// ErrInstanceNotFound is returned when the targeted tour instance does
// not exist.
var ErrInstanceNotFound = errors.New("tour instance not found")

// CapacityError means the instance genuinely has too few spots left.
// Retrying the same request will not help.
type CapacityError struct {
	Available int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("insufficient capacity: %d requested, %d available", e.Requested, e.Available)
}

// ContentionError means the conditional write lost to concurrent
// writers on every attempt. The request may be retried from the top.
type ContentionError struct {
	Attempts int
}

func (e *ContentionError) Error() string {
	return fmt.Sprintf("capacity update lost to concurrent writers after %d attempts", e.Attempts)
}

// AsCapacityError unwraps err into a *CapacityError if possible.
func AsCapacityError(err error) (*CapacityError, bool) {
	var capErr *CapacityError
	ok := errors.As(err, &capErr)

	return capErr, ok
}

// AsContentionError unwraps err into a *ContentionError if possible.
func AsContentionError(err error) (*ContentionError, bool) {
	var conErr *ContentionError
	ok := errors.As(err, &conErr)

	return conErr, ok
}
