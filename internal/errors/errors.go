package errors

import "fmt"

// ErrorCode represents a Blend error code.
type ErrorCode string

const (
	ErrInsufficientSample    ErrorCode = "INSUFFICIENT_SAMPLE"    // 422
	ErrInvalidRequest        ErrorCode = "INVALID_REQUEST"        // 400
	ErrNotFound              ErrorCode = "NOT_FOUND"              // 404
	ErrPatternImmutable      ErrorCode = "PATTERN_IMMUTABLE"      // 409
	ErrGenerationUnavailable ErrorCode = "GENERATION_UNAVAILABLE" // 502
	ErrInternal              ErrorCode = "INTERNAL"               // 500
)

// BlendError represents a structured error with code, status, and details.
type BlendError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *BlendError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInsufficientSample creates a 422 error for undersized aggregation batches.
// This is the only fatal condition in the analysis pipeline: no profile is
// written and any prior profile is left untouched.
func NewInsufficientSample(community string, got, want int) *BlendError {
	return &BlendError{
		Code:    ErrInsufficientSample,
		Status:  422,
		Message: fmt.Sprintf("community %q has %d scored posts, need at least %d", community, got, want),
		Details: map[string]any{"community": community, "sample_size": got, "min_sample_size": want},
	}
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *BlendError {
	return &BlendError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing record.
func NewNotFound(kind, identifier string) *BlendError {
	return &BlendError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"kind": kind, "identifier": identifier},
	}
}

// NewPatternImmutable creates a 409 error for attempts to delete
// system-derived blacklist patterns.
func NewPatternImmutable(community, pattern string) *BlendError {
	return &BlendError{
		Code:    ErrPatternImmutable,
		Status:  409,
		Message: fmt.Sprintf("pattern %q in community %q is system-derived and cannot be removed", pattern, community),
		Details: map[string]any{"community": community, "pattern": pattern},
	}
}

// NewGenerationUnavailable creates a 502 error when the external generation
// engine returns no output. The core takes no retry action itself.
func NewGenerationUnavailable(err error) *BlendError {
	msg := "generation engine returned no output"
	if err != nil {
		msg = err.Error()
	}
	return &BlendError{
		Code:    ErrGenerationUnavailable,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *BlendError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &BlendError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a BlendError with the given code.
func Is(err error, code ErrorCode) bool {
	if bErr, ok := err.(*BlendError); ok {
		return bErr.Code == code
	}
	return false
}
