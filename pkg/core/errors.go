package core

import "errors"

var (
	// ErrSingularMatrix is returned when a transform has no inverse.
	ErrSingularMatrix = errors.New("singular matrix")

	// ErrIndexOutOfRange is returned by every component accessor in this module.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotPoint is returned when a tuple with w != 1 is used where a point is required.
	ErrNotPoint = errors.New("tuple is not a point")

	// ErrNotVector is returned when a tuple with w != 0 is used where a vector is required.
	ErrNotVector = errors.New("tuple is not a vector")
)
