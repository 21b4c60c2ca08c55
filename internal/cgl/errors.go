package cgl

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a field with NaN or Inf values.
	ErrInvalidState = errors.New("cgl: invalid field (NaN or Inf detected)")

	// ErrGridMismatch indicates a field whose shape does not match the system.
	ErrGridMismatch = errors.New("cgl: field grid size does not match system")

	// ErrInvalidConfig indicates run parameters outside their valid range.
	ErrInvalidConfig = errors.New("cgl: invalid run configuration")
)
