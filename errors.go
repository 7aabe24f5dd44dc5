package vtterm

import "errors"

// Sentinel errors returned by Terminal lifecycle and sizing operations.
// All are comparable with errors.Is.
var (
	ErrAlreadyOpen        = errors.New("vtterm: terminal already open")
	ErrNotOpen            = errors.New("vtterm: terminal not open")
	ErrDisposed           = errors.New("vtterm: terminal disposed")
	ErrInvalidDimensions  = errors.New("vtterm: rows and cols must be positive")
)
