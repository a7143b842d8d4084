// Package rowsource runs a join query and hands back one tuple per result row.
//
// A query's SELECT list is grouped by entity in a fixed order. The caller
// describes those groups with scan destinations; Each checks that the
// destinations line up with the result columns and maps them positionally,
// in the order the driver returns the rows.
package rowsource

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/deppfellow/classroom/internal/errs"
	"github.com/deppfellow/classroom/internal/sqlerr"
)

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Group is the set of columns that belong to one entity of the join.
type Group interface {
	// Dest returns the scan destinations in SELECT order.
	Dest() []any
}

// Tuple is one result row being scanned.
type Tuple[R any] interface {
	// Groups lists the column groups in SELECT order.
	Groups() []Group
	// Row builds the value handed to the callback once the scan is done.
	// Groups for outer-joined entities report a nil entity when absent.
	Row() R
}

// dest concatenates the scan destinations of every group of t.
func dest[R any](t Tuple[R]) []any {
	var out []any
	for _, g := range t.Groups() {
		out = append(out, g.Dest()...)
	}
	return out
}

// Each runs query and calls fn for every row, in driver order.
//
// newTuple is called once per row so every callback gets fresh entities.
// When the column count differs from the destinations of the groups a
// query error is returned before any row is delivered. An error from fn
// stops the iteration and is returned as is.
func Each[R any](ctx context.Context, q Querier, query string, newTuple func() Tuple[R], fn func(R) error, args ...any) error {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return sqlerr.HandleError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return sqlerr.HandleError(err)
	}

	tuple := newTuple()
	targets := dest(tuple)
	if len(columns) != len(targets) {
		return errs.NewQueryError(
			fmt.Sprintf("query returns %d columns but the row maps %d", len(columns), len(targets)), nil)
	}

	for rows.Next() {
		if tuple == nil {
			tuple = newTuple()
			targets = dest(tuple)
		}

		if err := rows.Scan(targets...); err != nil {
			return errs.NewQueryError("scanning row", err)
		}

		if err := fn(tuple.Row()); err != nil {
			return err
		}
		tuple = nil
	}

	if err := rows.Err(); err != nil {
		return sqlerr.HandleError(err)
	}
	return nil
}

// Collect runs query and returns every row in driver order.
func Collect[R any](ctx context.Context, q Querier, query string, newTuple func() Tuple[R], args ...any) ([]R, error) {
	var out []R
	err := Each(ctx, q, query, newTuple, func(r R) error {
		out = append(out, r)
		return nil
	}, args...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
