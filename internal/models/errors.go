package models

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindUnsupportedFormat ErrorKind = "unsupported_format"
	KindMissingInput      ErrorKind = "missing_input"
	KindGenerationFailure ErrorKind = "generation_failure"
	KindSchemaViolation   ErrorKind = "schema_violation"
	KindSessionNotFound   ErrorKind = "session_not_found"
)

// WorkflowError tags a failure with its kind so callers can branch on the
// category instead of string-matching the message.
type WorkflowError struct {
	Kind ErrorKind
	Err  error
}

func (e *WorkflowError) Error() string {
	return e.Err.Error()
}

func (e *WorkflowError) Unwrap() error {
	return e.Err
}

// Errf builds a WorkflowError from a format string. %w works as usual.
func Errf(kind ErrorKind, format string, args ...interface{}) error {
	return &WorkflowError{
		Kind: kind,
		Err:  fmt.Errorf(format, args...),
	}
}

// KindOf returns the kind of the first WorkflowError in err's chain,
// or the empty string when there is none.
func KindOf(err error) ErrorKind {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Kind
	}
	return ""
}
