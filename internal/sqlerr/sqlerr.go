// Package sqlerr specifically handles database driver errors.
//
// It parses cryptic error codes from the database drivers (pgx for
// PostgreSQL, modernc for SQLite) and converts them into application
// errors (e.g., converting a "no such table" into a schema error, or a
// "foreign key violation" into a constraint error with a readable message).
package sqlerr
