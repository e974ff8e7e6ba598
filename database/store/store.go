// Package store is the gateway every job uses to reach the document store:
// range/equality queries, point lookups, single inserts and bounded batch deletes
// against named collections.
package store

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"
)

var (
	// ErrNotFound is returned by Get when no document carries the requested id.
	ErrNotFound = errors.New("store: document not found")
	// ErrUnavailable marks transport or connectivity failures. Callers do not
	// retry within the same invocation.
	ErrUnavailable = errors.New("store: unavailable")
	// ErrBatchTooLarge is returned when a delete exceeds MaxBatchSize.
	ErrBatchTooLarge = errors.New("store: batch exceeds maximum size")
)

// UnavailableError wraps the driver error behind an ErrUnavailable.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %s: %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() []error { return []error{ErrUnavailable, e.Err} }

func unavailable(op string, err error) error {
	return &UnavailableError{Op: op, Err: err}
}

// Gateway abstracts the document store. Documents are keyed by their "id" field.
type Gateway interface {
	Find(ctx context.Context, q Query) (Cursor, error)
	Get(ctx context.Context, collection, id string, out any) error
	Insert(ctx context.Context, collection string, doc any) error
	DeleteMany(ctx context.Context, collection string, ids []string) (int64, error)
	MaxBatchSize() int
	Ping(ctx context.Context) error
}

// Cursor is a lazy sequence of matched documents in store-defined order.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode(v any) error
	Err() error
	Close(ctx context.Context) error
}

// Bound is one end of a time range.
type Bound struct {
	At        time.Time
	Inclusive bool
}

// Range restricts a named instant field. A nil bound leaves that side open.
type Range struct {
	Field string
	Lower *Bound
	Upper *Bound
}

type Op int

const (
	OpEq Op = iota
	OpIn
)

// Predicate is an equality or membership test on a field.
type Predicate struct {
	Field  string
	Op     Op
	Values []any
}

func Eq(field string, value any) Predicate {
	return Predicate{Field: field, Op: OpEq, Values: []any{value}}
}

func In(field string, values ...any) Predicate {
	return Predicate{Field: field, Op: OpIn, Values: values}
}

// Query selects documents of one collection.
type Query struct {
	Collection string
	Range      *Range
	Where      []Predicate
}

// Each adapts a cursor into a typed lazy sequence. The cursor is closed when the
// loop ends; a decode or cursor error is yielded once and stops the sequence.
func Each[T any](ctx context.Context, cur Cursor) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var v T
			if err := cur.Decode(&v); err != nil {
				yield(v, fmt.Errorf("decode document: %w", err))
				return
			}
			if !yield(v, nil) {
				return
			}
		}
		if err := cur.Err(); err != nil {
			var zero T
			yield(zero, err)
		}
	}
}

// Collect drains a sequence into a slice.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Chunk splits ids into consecutive slices of at most size elements.
func Chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := min(start+size, len(ids))
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
