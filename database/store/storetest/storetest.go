// Package storetest provides fixtures for code built on store.Gateway.
package storetest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"rentwatch/database/store"

	"github.com/stretchr/testify/require"
)

// ErrInjected is the cause behind every failure a Faulty gateway injects.
var ErrInjected = fmt.Errorf("injected failure: %w", store.ErrUnavailable)

// Faulty wraps a Gateway and fails the calls its hooks select. A nil hook
// never fails.
type Faulty struct {
	store.Gateway

	FailFind   func(q store.Query) bool
	FailGet    func(collection, id string) bool
	FailInsert func(collection string, doc any) bool
	// FailDelete receives the 1-based index of the DeleteMany call.
	FailDelete func(call int) bool

	mu      sync.Mutex
	deletes int
}

func (f *Faulty) Find(ctx context.Context, q store.Query) (store.Cursor, error) {
	if f.FailFind != nil && f.FailFind(q) {
		return nil, ErrInjected
	}
	return f.Gateway.Find(ctx, q)
}

func (f *Faulty) Get(ctx context.Context, collection, id string, out any) error {
	if f.FailGet != nil && f.FailGet(collection, id) {
		return ErrInjected
	}
	return f.Gateway.Get(ctx, collection, id, out)
}

func (f *Faulty) Insert(ctx context.Context, collection string, doc any) error {
	if f.FailInsert != nil && f.FailInsert(collection, doc) {
		return ErrInjected
	}
	return f.Gateway.Insert(ctx, collection, doc)
}

func (f *Faulty) DeleteMany(ctx context.Context, collection string, ids []string) (int64, error) {
	f.mu.Lock()
	f.deletes++
	call := f.deletes
	f.mu.Unlock()
	if f.FailDelete != nil && f.FailDelete(call) {
		return 0, ErrInjected
	}
	return f.Gateway.DeleteMany(ctx, collection, ids)
}

// Seed inserts docs into collection, failing the test on the first error.
func Seed[T any](t testing.TB, gw store.Gateway, collection string, docs ...T) {
	t.Helper()
	for _, doc := range docs {
		require.NoError(t, gw.Insert(context.Background(), collection, doc))
	}
}
