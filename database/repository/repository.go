// Package repository exposes typed, collection-specific access on top of the
// store gateway.
package repository

import (
	"context"
	"iter"

	"rentwatch/database/store"
	"rentwatch/services/window"
)

// Collection names.
const (
	Contracts     = "contracts"
	Guests        = "guests"
	Apartments    = "apartments"
	Rooms         = "rooms"
	Users         = "users"
	Transactions  = "transactions"
	Notifications = "notifications"
)

// find runs q lazily: the query is issued on the first iteration and a query
// failure is yielded as the sequence's only element.
func find[T any](ctx context.Context, gw store.Gateway, q store.Query) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		cur, err := gw.Find(ctx, q)
		if err != nil {
			var zero T
			yield(zero, err)
			return
		}
		for v, err := range store.Each[T](ctx, cur) {
			if !yield(v, err) {
				return
			}
		}
	}
}

// get fetches one document by id; store.ErrNotFound passes through.
func get[T any](ctx context.Context, gw store.Gateway, collection, id string) (*T, error) {
	var v T
	if err := gw.Get(ctx, collection, id, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// rangeOf converts a window into a range on field.
func rangeOf(field string, w window.Window) *store.Range {
	r := &store.Range{Field: field}
	if w.Lower != nil {
		r.Lower = &store.Bound{At: w.Lower.At, Inclusive: w.Lower.Inclusive}
	}
	if w.Upper != nil {
		r.Upper = &store.Bound{At: w.Upper.At, Inclusive: w.Upper.Inclusive}
	}
	return r
}
