package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/deppfellow/classroom/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// Behavior:
//   - If err can be unwrapped into *sqlerr.Error, return its Code.
//   - Otherwise convert a raw driver error on the fly.
//   - Otherwise return sqlerr.Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	if converted := Convert(err); converted != nil {
		return converted.Code
	}
	return Other
}

// Convert normalizes a Postgres or SQLite driver error found in err's chain.
// It returns nil when err carries no driver error.
func Convert(err error) *Error {
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return ConvertPgError(pgerr)
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return ConvertSQLiteError(liteErr)
	}
	return nil
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
//
// pgconn.PgError contains Postgres-specific fields like:
//   - Code (SQLSTATE)
//   - Severity
//   - TableName/ColumnName/ConstraintName etc.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// sqliteTarget captures "Table.Column" from messages such as
// "UNIQUE constraint failed: Student.Id".
var sqliteTarget = regexp.MustCompile(`failed: ([A-Za-z_][A-Za-z0-9_]*)\.([A-Za-z_][A-Za-z0-9_]*)`)

// sqliteMissing captures the object of "no such table: X" / "no such column: X".
var sqliteMissing = regexp.MustCompile(`no such (table|column): ([A-Za-z0-9_.]+)`)

// ConvertSQLiteError converts a modernc sqlite.Error into our custom sqlerr.Error.
//
// SQLite reports only a result code and a message, so table and column
// names are recovered from the message text.
func ConvertSQLiteError(src *sqlite.Error) *Error {
	msg := src.Error()
	out := &Error{
		Code:         Other,
		Severity:     SeverityError,
		DatabaseCode: strconv.Itoa(src.Code()),
		Message:      msg,
		driverErr:    src,
	}

	switch src.Code() {
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		out.Code = NotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		out.Code = ForeignKeyViolation
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		out.Code = UniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		out.Code = CheckViolation
	default:
		// Without extended result codes only the message tells them apart.
		switch {
		case strings.Contains(msg, "NOT NULL constraint failed"):
			out.Code = NotNullViolation
		case strings.Contains(msg, "FOREIGN KEY constraint failed"):
			out.Code = ForeignKeyViolation
		case strings.Contains(msg, "UNIQUE constraint failed"):
			out.Code = UniqueViolation
		case strings.Contains(msg, "CHECK constraint failed"):
			out.Code = CheckViolation
		case strings.Contains(msg, "no such table"):
			out.Code = UndefinedTable
		case strings.Contains(msg, "no such column"):
			out.Code = UndefinedColumn
		case strings.Contains(msg, "syntax error"):
			out.Code = SyntaxError
		}
	}

	if m := sqliteTarget.FindStringSubmatch(msg); len(m) == 3 {
		out.TableName, out.ColumnName = m[1], m[2]
	}
	if m := sqliteMissing.FindStringSubmatch(msg); len(m) == 3 {
		if m[1] == "table" {
			out.TableName = m[2]
		} else {
			out.ColumnName = m[2]
		}
	}
	return out
}

// generateErrorCode creates consistent "application error codes" from DB errors.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	StudentExercise + ForeignKeyViolation => STUDENTEXERCISE_NOT_FOUND
//
// These codes are meant for machines (logs, tests), not humans.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "USERS" -> "USER". The classroom tables are
	// already singular, so this only matters for foreign schemas.
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces a readable message from table/column info.
func formatUserFriendlyMessage(sqlErr *Error) string {
	entityName := getEntityName(sqlErr.TableName, sqlErr.ColumnName)

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", entityName)

	case UniqueViolation:
		// "identifier" is replaced below when the column is known.
		return fmt.Sprintf("A %s with this identifier already exists", entityName)

	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case UndefinedTable:
		return fmt.Sprintf("Table %s does not exist", sqlErr.TableName)

	case UndefinedColumn:
		return fmt.Sprintf("Column %s does not exist", sqlErr.ColumnName)

	default:
		return "The database rejected the statement"
	}
}

// getEntityName tries to infer an entity name from table/column data.
//
// Priority rules:
//  1. If column ends with "Id" or "_id", use that base name (foreign keys).
//     e.g. "CohortId" -> "Cohort"
//  2. Otherwise use the table name.
//  3. Otherwise fallback to "record".
func getEntityName(tableName, columnName string) string {
	lower := strings.ToLower(columnName)
	if columnName != "" && lower != "id" {
		switch {
		case strings.HasSuffix(lower, "_id"):
			return humanizeText(strings.TrimSuffix(lower, "_id"))
		case strings.HasSuffix(columnName, "Id"):
			return humanizeText(strings.TrimSuffix(columnName, "Id"))
		}
	}

	if tableName != "" {
		return humanizeText(tableName)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case.
//
// Example:
//
//	"first_name" -> "First Name"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English, cases.NoLower).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation tries to infer the column name from a unique constraint name.
//
// It supports two conventions:
//
//  1. "unique_<table>_<column>"
//     Example: unique_student_slackhandle -> "slackhandle"
//
//  2. "<table>_<column>_(key|ukey|pkey)"
//     Example: student_slackhandle_key -> "slackhandle"
func extractColumnForUniqueViolation(constraintName string) string {
	if constraintName == "" {
		return ""
	}

	if strings.HasPrefix(constraintName, "unique_") {
		parts := strings.Split(constraintName, "_")
		if len(parts) >= 3 {
			return parts[len(parts)-1]
		}
	}

	re := regexp.MustCompile(`_([^_]+)_(?:key|ukey)$`)
	matches := re.FindStringSubmatch(constraintName)
	if len(matches) > 1 {
		return matches[1]
	}

	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
// Output:
//   - If already *errs.Error: returned unchanged
//   - Driver constraint errors: errs.NewConstraintError with a generated code
//   - Missing table/column: errs.NewSchemaError
//   - Syntax and other driver errors: errs.NewQueryError
//   - ErrNoRows: errs.NewNotFoundError
//   - Otherwise: errs.NewQueryError wrapping err
//
// Called by the repository and database layers right after a failed call.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	// Don't re-wrap: preserves the exact classification of inner layers.
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	if sqlErr := Convert(err); sqlErr != nil {
		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation, CheckViolation:
			return errs.NewConstraintError(userMessage, &errorCode, sqlErr)

		case UniqueViolation:
			if columnName := extractColumnForUniqueViolation(sqlErr.ConstraintName); columnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(columnName))
			} else if sqlErr.ColumnName != "" {
				userMessage = strings.ReplaceAll(userMessage, "identifier", humanizeText(sqlErr.ColumnName))
			}
			return errs.NewConstraintError(userMessage, &errorCode, sqlErr)

		case NotNullViolation:
			return errs.NewConstraintError(userMessage, &errorCode, sqlErr)

		case UndefinedTable, UndefinedColumn:
			return errs.NewSchemaError(userMessage, sqlErr)

		default:
			return errs.NewQueryError(userMessage, sqlErr)
		}
	}

	// Both pgx and database/sql define ErrNoRows.
	switch {
	case errors.Is(err, pgx.ErrNoRows), errors.Is(err, sql.ErrNoRows):
		return errs.NewNotFoundError("Resource not found", nil)
	}

	return errs.NewQueryError("query failed", err)
}
