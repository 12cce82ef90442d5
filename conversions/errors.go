package conversions

import "errors"

var (
	// ErrUnsupportedConverter reports a candidate that is none of the known
	// converter shapes. Construction aborts; no partial registry is usable.
	ErrUnsupportedConverter = errors.New("conversions: unsupported converter")

	// ErrInvalidConverter reports a candidate whose declared types or
	// functions are incomplete.
	ErrInvalidConverter = errors.New("conversions: invalid converter")
)
