package tracer

import "errors"

var (
	// ErrDegenerateCamera means the view direction is parallel to +Y, so no
	// screen basis exists.
	ErrDegenerateCamera = errors.New("camera direction is parallel to the up vector")
	ErrRowOutOfRange    = errors.New("row out of range")
)
