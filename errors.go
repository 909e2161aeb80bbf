package edfsched

import "errors"

var (
	// ErrInvalidWidth is returned when a domain width is outside [1, 63].
	ErrInvalidWidth = errors.New("invalid domain width")

	// ErrUnknownPolicy is returned when a [Policy] is neither signed nor
	// unsigned.
	ErrUnknownPolicy = errors.New("unknown policy")
)
