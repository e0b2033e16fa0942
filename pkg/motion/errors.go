package motion

import "errors"

var (
	// ErrUnknownMethod is returned when a corruption method or shift
	// metric name is not one of the recognized values.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrShapeMismatch is returned when a displacement course does not
	// match the length of the signal it is applied to.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParameter is returned when a course parameter combination
	// cannot produce a course of the requested resolution.
	ErrInvalidParameter = errors.New("invalid parameter")
)
