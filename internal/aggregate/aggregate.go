// Package aggregate folds flat joined rows into trees of deduplicated entities.
//
// A join returns one row per combination of parent and child, so the same
// parent shows up many times. An Aggregator keeps one instance per root
// identity key, in first-seen order, and lets a merge function attach the
// row's children to it. AppendUnique gives those merge functions an
// identity-keyed presence check for child collections.
package aggregate

import (
	"errors"
)

// ErrMissingRootKey is returned when a row carries no root entity at all.
// Reports guarantee a non-null root through inner joins, so this signals a
// broken query rather than bad data.
var ErrMissingRootKey = errors.New("aggregate: row has no root entity key")

// Aggregator groups rows of type R by a root key K into entities E.
//
// E is usually a pointer so merge can mutate the stored instance.
type Aggregator[R any, K comparable, E any] struct {
	key   func(R) (K, bool)
	build func(R) E
	merge func(E, R)

	index map[K]E
	order []E
}

// New returns an empty Aggregator.
//
//   - key extracts the root identity; ok is false when the row has no root.
//   - build creates the root entity the first time its key is seen. Scalar
//     fields therefore come from the first row.
//   - merge attaches the row's children to the resolved root. It runs for
//     every row, including the first one. It may be nil.
func New[R any, K comparable, E any](key func(R) (K, bool), build func(R) E, merge func(E, R)) *Aggregator[R, K, E] {
	return &Aggregator[R, K, E]{
		key:   key,
		build: build,
		merge: merge,
		index: make(map[K]E),
	}
}

// Add folds one row into the aggregate.
func (a *Aggregator[R, K, E]) Add(row R) error {
	k, ok := a.key(row)
	if !ok {
		return ErrMissingRootKey
	}

	root, seen := a.index[k]
	if !seen {
		root = a.build(row)
		a.index[k] = root
		a.order = append(a.order, root)
	}

	if a.merge != nil {
		a.merge(root, row)
	}
	return nil
}

// Len reports the number of distinct roots seen so far.
func (a *Aggregator[R, K, E]) Len() int { return len(a.order) }

// Get returns the root stored under k.
func (a *Aggregator[R, K, E]) Get(k K) (E, bool) {
	e, ok := a.index[k]
	return e, ok
}

// Results returns the roots in first-insertion order.
// The slice is a copy; the entities are shared with the aggregator.
func (a *Aggregator[R, K, E]) Results() []E {
	out := make([]E, len(a.order))
	copy(out, a.order)
	return out
}

// Fold adds every row in order and stops at the first error.
func (a *Aggregator[R, K, E]) Fold(rows []R) error {
	for _, row := range rows {
		if err := a.Add(row); err != nil {
			return err
		}
	}
	return nil
}

// AppendUnique appends child to list unless an element with the same key
// is already present. It returns the updated list and the element that now
// represents child: the existing one when found, child itself otherwise.
//
// A nil child is absent (an outer join found no match) and is never
// inserted; the list is returned unchanged with a nil element.
func AppendUnique[T any, K comparable](list []*T, child *T, key func(*T) K) ([]*T, *T) {
	if child == nil {
		return list, nil
	}
	k := key(child)
	for _, existing := range list {
		if key(existing) == k {
			return list, existing
		}
	}
	return append(list, child), child
}
