package atlas

import "errors"

var (
	// ErrEmptyCharset is returned when synthesis is asked to build an
	// atlas for zero codepoints.
	ErrEmptyCharset = errors.New("atlas: charset is empty")

	// ErrNoFit is returned when no admissible point size produces a
	// layout that fits the requested atlas dimensions.
	ErrNoFit = errors.New("atlas: no point size fits the atlas")
)
