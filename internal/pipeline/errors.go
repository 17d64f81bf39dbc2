package pipeline

import "errors"

// Error kinds. Callers wrap these with fmt.Errorf and match with errors.Is.
var (
	ErrFileNotFound       = errors.New("file not found")
	ErrDecode             = errors.New("unable to decode image")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrConfiguration      = errors.New("invalid configuration")
)
