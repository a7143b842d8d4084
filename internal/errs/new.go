package errs

import (
	"strings"
)

// codeFor returns code when set, otherwise the kind formatted as a code.
func codeFor(kind Kind, code *string) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(strings.ReplaceAll(string(kind), "_", " "))
}

// NewSchemaError creates a SCHEMA error.
//
// Raised when the create-if-not-exists bootstrap fails or a query refers
// to a table or column that does not exist.
func NewSchemaError(message string, err error) *Error {
	return &Error{
		Kind:    KindSchema,
		Code:    codeFor(KindSchema, nil),
		Message: message,
		Err:     err,
	}
}

// NewQueryError creates a QUERY error.
//
// These indicate a programming error (bad SQL, column-count mismatch)
// and are never retried.
func NewQueryError(message string, err error) *Error {
	return &Error{
		Kind:    KindQuery,
		Code:    codeFor(KindQuery, nil),
		Message: message,
		Err:     err,
	}
}

// NewConstraintError creates a CONSTRAINT error.
//
// Supports an optional custom code (if nil, defaults to "CONSTRAINT"),
// typically generated from the table and the violation, e.g.
// "STUDENT_ALREADY_EXISTS".
func NewConstraintError(message string, code *string, err error) *Error {
	return &Error{
		Kind:    KindConstraint,
		Code:    codeFor(KindConstraint, code),
		Message: message,
		Err:     err,
	}
}

// NewAggregationError creates an AGGREGATION error for the named report.
func NewAggregationError(report string, err error) *Error {
	return &Error{
		Kind:    KindAggregation,
		Code:    codeFor(KindAggregation, nil),
		Message: "aggregating " + report,
		Err:     err,
	}
}

// NewConfigError creates a CONFIG error.
func NewConfigError(message string, err error) *Error {
	return &Error{
		Kind:    KindConfig,
		Code:    codeFor(KindConfig, nil),
		Message: message,
		Err:     err,
	}
}

// NewNotFoundError creates a NOT_FOUND error.
//
// Supports optional custom code override similar to NewConstraintError.
func NewNotFoundError(message string, code *string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    codeFor(KindNotFound, code),
		Message: message,
	}
}

// NewInternalError wraps an unclassified failure.
func NewInternalError(err error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    codeFor(KindInternal, nil),
		Message: "internal error",
		Err:     err,
	}
}
