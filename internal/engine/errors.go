package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/cctxy/internal/input"
)

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeInvalidRequest indicates the request failed bounds validation.
	ErrCodeInvalidRequest RuntimeErrorCode = "INVALID_REQUEST"

	// ErrCodeNonFinite indicates the computation produced NaN or Inf.
	ErrCodeNonFinite RuntimeErrorCode = "NON_FINITE_RESULT"

	// ErrCodeDegenerate indicates a numeric guard fired in strict mode.
	ErrCodeDegenerate RuntimeErrorCode = "DEGENERATE"
)

// RuntimeError represents a computation the engine refused to return.
type RuntimeError struct {
	Code      RuntimeErrorCode
	Message   string
	FlowToken string
	Err       error
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.FlowToken != "" {
		msg = fmt.Sprintf("%s (flow=%s)", msg, e.FlowToken)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// CodeOf returns the RuntimeErrorCode carried by err, or "" if err is not
// a RuntimeError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsDegenerateError reports whether err is a strict-mode degeneracy error.
func IsDegenerateError(err error) bool {
	return CodeOf(err) == ErrCodeDegenerate
}

// IsNonFiniteError reports whether err is a non-finite result error.
func IsNonFiniteError(err error) bool {
	return CodeOf(err) == ErrCodeNonFinite
}

// CLI-facing error codes for computation failures. Input validation codes
// (E1xx) are defined by package input.
const (
	CodeGeneric    = "E001"
	CodeNonFinite  = "E201"
	CodeDegenerate = "E202"
)

// ErrorCode maps err onto the short code reported by the CLI and recorded
// in harness traces.
func ErrorCode(err error) string {
	if ve, ok := input.IsValidationError(err); ok {
		return ve.Code
	}
	switch CodeOf(err) {
	case ErrCodeNonFinite:
		return CodeNonFinite
	case ErrCodeDegenerate:
		return CodeDegenerate
	default:
		return CodeGeneric
	}
}
