package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the kind of error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryUpstream Category = "upstream"
	CategoryProtocol Category = "protocol"
	CategoryCLI      Category = "cli"
)

// RecipesError is a structured error with a code, an explanation and a
// suggested fix.
type RecipesError struct {
	// Code is a unique error identifier (e.g., "E201").
	Code string

	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *RecipesError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *RecipesError) Unwrap() error {
	return e.Wrapped
}

// Is matches another RecipesError with the same code.
func (e *RecipesError) Is(target error) bool {
	t, ok := target.(*RecipesError)
	return ok && t.Code != "" && t.Code == e.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *RecipesError) WithSuggestion(s string) *RecipesError {
	e.Suggestion = s
	return e
}

// WithDetail replaces the registered explanation.
func (e *RecipesError) WithDetail(d string) *RecipesError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with a format string.
func (e *RecipesError) WithDetailf(format string, args ...any) *RecipesError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// Wrap wraps another error.
func (e *RecipesError) Wrap(err error) *RecipesError {
	e.Wrapped = err
	return e
}

// New creates a RecipesError from a registered error code.
func New(code string) *RecipesError {
	template, ok := registry[code]
	if !ok {
		return &RecipesError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &RecipesError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a RecipesError with a formatted message and no code.
func Newf(category Category, format string, args ...any) *RecipesError {
	return &RecipesError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError returns err as a RecipesError, wrapping it under code unless it
// already is one.
func FromError(err error, code string) *RecipesError {
	if err == nil {
		return nil
	}
	var re *RecipesError
	if stderrors.As(err, &re) {
		return re
	}
	return New(code).Wrap(err)
}

// CodeOf returns the code of the first RecipesError in err's chain, or "".
func CodeOf(err error) string {
	var re *RecipesError
	if stderrors.As(err, &re) {
		return re.Code
	}
	return ""
}
