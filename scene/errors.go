package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownPrimitive is returned for a record type code the loader does not know.
	ErrUnknownPrimitive = errors.New("unknown record type")
	// ErrUnknownTexture is returned for a texture sub-type the loader does not know.
	ErrUnknownTexture = errors.New("unknown texture type")
	// ErrTooManyPrimitives is returned when a scene exceeds the configured primitive limit.
	ErrTooManyPrimitives = errors.New("too many primitives")
	// ErrTruncated is returned when the input ends before the terminating sentinel.
	ErrTruncated = errors.New("scene description ended early")
	// ErrMalformed is returned for a token that does not parse as the expected number.
	ErrMalformed = errors.New("malformed token")
	// ErrDegenerate is returned for geometry that cannot be intersected.
	ErrDegenerate = errors.New("degenerate geometry")
)

// RecordError identifies the record of a scene description that failed to load.
type RecordError struct {
	// Index of the record in the file, counting from zero
	Index int
	// Type code of the record, or -2 when the code itself could not be read
	Code int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (type %d): %v", e.Index, e.Code, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
