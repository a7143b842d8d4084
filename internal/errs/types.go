package errs

import (
	"errors"
	"strings"
)

// Kind is a string-based enum describing which class of failure occurred.
type Kind string

const (
	// KindSchema means tables or columns are missing or could not be created.
	// It is fatal at startup: no report can run without the schema.
	KindSchema Kind = "schema"

	// KindQuery means a statement is malformed or its result cannot be
	// mapped onto entities. Fatal for the report that issued it.
	KindQuery Kind = "query"

	// KindConstraint means the database rejected a write (seed data).
	KindConstraint Kind = "constraint"

	// KindAggregation means a joined row carried no root entity.
	KindAggregation Kind = "aggregation"

	// KindConfig means the configuration failed to load or validate.
	KindConfig Kind = "config"

	// KindNotFound means a requested report or record does not exist.
	KindNotFound Kind = "not_found"

	// KindInternal is everything else.
	KindInternal Kind = "internal"
)

// Error is the main custom error type.
//
// Fields:
//   - Kind: failure class, drives fatal vs. per-report handling.
//   - Code: machine-friendly code (e.g. "STUDENT_NOT_FOUND").
//   - Message: human-friendly message.
//   - Err: the underlying cause, reachable through errors.Unwrap.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

// Error makes *Error satisfy the built-in `error` interface.
//
// The cause is appended so logs keep the driver's own wording.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap exposes the cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is customizes how errors.Is(...) treats Error.
//
// Two *Error values match when their Kind matches, so callers can test
// errors.Is(err, &errs.Error{Kind: errs.KindSchema}) without caring
// about code or message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMessage returns a *copy* of this Error with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	return &Error{
		Kind:    e.Kind,
		Code:    e.Code,
		Message: message,
		Err:     e.Err,
	}
}

// KindOf reports the Kind of the first *Error in err's chain,
// or KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsFatal reports whether err must abort the whole run rather than a
// single report.
func IsFatal(err error) bool {
	switch KindOf(err) {
	case KindSchema, KindConfig:
		return true
	}
	return false
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"not found" -> "NOT_FOUND"
//
// Used to create stable machine-readable error codes from kinds.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
