package errors

import (
	"fmt"
)

// ParseError represents a pipeline definition that could not be decoded.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures definition or parameter validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecutionError represents a failure raised by a preparator while running a
// step, as opposed to record-level failures that are reported to the error log.
type ExecutionError struct {
	Step string
	Err  error
}

// NewExecutionError constructs an ExecutionError.
func NewExecutionError(step string, err error) error {
	return &ExecutionError{Step: step, Err: err}
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	if e.Step != "" {
		return fmt.Sprintf("execution error in step %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("execution error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *ExecutionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// PreparatorError indicates issues with preparator registration or construction.
type PreparatorError struct {
	Preparator string
	Message    string
	Err        error
}

// NewPreparatorError constructs a PreparatorError for the given preparator name.
func NewPreparatorError(name string, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &PreparatorError{Preparator: name, Message: message, Err: err}
}

func (e *PreparatorError) Error() string {
	if e == nil {
		return ""
	}
	if e.Preparator != "" {
		return fmt.Sprintf("preparator error [%s]: %s", e.Preparator, e.Message)
	}
	return fmt.Sprintf("preparator error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *PreparatorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
