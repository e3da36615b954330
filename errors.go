package dim

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	// The wrapped message names the offending field.
	ErrInvalidConfig = errors.New("dim: invalid config")

	// ErrUnknownDirection is returned by ParseDirection for names other
	// than right, left, up and down.
	ErrUnknownDirection = errors.New("dim: unknown direction")

	// ErrDegenerateGeometry is returned by ComputeRangeStrict when the
	// handle track would be unbounded (cos of the incidence angle is zero).
	ErrDegenerateGeometry = errors.New("dim: degenerate geometry")
)
