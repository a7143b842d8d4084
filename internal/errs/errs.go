// Package errs define custom error types and utilities.
//
// Its purpose is to classify every failure of a report run into one of
// a small set of kinds (schema, query, constraint, aggregation, config,
// not found) so the caller can decide whether to abort the whole run or
// just the current report, and print a consistent message either way.
package errs
