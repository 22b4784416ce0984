package generator

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrPoolTooSmall     = errors.New("account pool too small")
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInvalidOptions   = errors.New("invalid sampler options")
)

// GenerationError describes a rejected generation request.
type GenerationError struct {
	Op    string // Operation that failed (e.g., "Generate", "New")
	Param string // Offending parameter (e.g., "pool", "fraud_ratio")
	Value any    // Value that was rejected
	Cause error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s %s (%v): %v", e.Op, e.Param, e.Value, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Param, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GenerationError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

func paramError(op, param string, value any, cause error) *GenerationError {
	return &GenerationError{Op: op, Param: param, Value: value, Cause: cause}
}

// IsPoolTooSmall checks whether err reports a degenerate account pool.
func IsPoolTooSmall(err error) bool {
	return errors.Is(err, ErrPoolTooSmall)
}
