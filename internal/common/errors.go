package common

import (
	"errors"
	"fmt"
)

// Error codes for the pipeline failure taxonomy.
const (
	CodeExtraction = "EXTRACTION_ERROR"
	CodeGeneration = "GENERATION_ERROR"
	CodeConfig     = "CONFIG_ERROR"
	CodeInput      = "INVALID_INPUT"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Common application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal error")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewExtractionError wraps a failure to read or parse the source document.
// The cause text stays visible through Error().
func NewExtractionError(message string, cause error) *AppError {
	return &AppError{Code: CodeExtraction, Message: message, Cause: cause}
}

// NewGenerationError wraps a failed model call. Fatal for the run; no retry.
func NewGenerationError(message string, cause error) *AppError {
	return &AppError{Code: CodeGeneration, Message: message, Cause: cause}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// HasCode reports whether err (or anything it wraps) is an AppError with the given code.
func HasCode(err error, code string) bool {
	var ae *AppError
	for errors.As(err, &ae) {
		if ae.Code == code {
			return true
		}
		err = ae.Cause
		ae = nil
	}
	return false
}

// IsExtractionError reports whether err carries the EXTRACTION_ERROR code.
func IsExtractionError(err error) bool { return HasCode(err, CodeExtraction) }

// IsGenerationError reports whether err carries the GENERATION_ERROR code.
func IsGenerationError(err error) bool { return HasCode(err, CodeGeneration) }
