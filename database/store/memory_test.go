package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"rentwatch/database/store"
	"rentwatch/database/store/storetest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID     string    `bson:"id"`
	Kind   string    `bson:"kind"`
	Active bool      `bson:"active"`
	Rank   int       `bson:"rank"`
	At     time.Time `bson:"at"`
}

var base = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *store.Memory {
	mem := store.NewMemory(2)
	storetest.Seed(t, mem, "items",
		item{ID: "a", Kind: "x", Active: true, Rank: 1, At: base},
		item{ID: "b", Kind: "y", Active: true, Rank: 2, At: base.Add(time.Hour)},
		item{ID: "c", Kind: "x", Active: false, Rank: 3, At: base.Add(2 * time.Hour)},
		item{ID: "d", Kind: "z", Active: true, Rank: 4, At: base.Add(3 * time.Hour)},
	)
	return mem
}

func ids(t *testing.T, mem store.Gateway, q store.Query) []string {
	t.Helper()
	cur, err := mem.Find(context.Background(), q)
	require.NoError(t, err)
	items, err := store.Collect(store.Each[item](context.Background(), cur))
	require.NoError(t, err)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestMemory_RangeBounds(t *testing.T) {
	mem := seeded(t)

	inclusive := ids(t, mem, store.Query{Collection: "items", Range: &store.Range{
		Field: "at",
		Lower: &store.Bound{At: base.Add(time.Hour), Inclusive: true},
		Upper: &store.Bound{At: base.Add(2 * time.Hour), Inclusive: true},
	}})
	assert.ElementsMatch(t, []string{"b", "c"}, inclusive)

	exclusive := ids(t, mem, store.Query{Collection: "items", Range: &store.Range{
		Field: "at",
		Upper: &store.Bound{At: base.Add(2 * time.Hour)},
	}})
	assert.ElementsMatch(t, []string{"a", "b"}, exclusive)
}

func TestMemory_RangeComparesAtMillisecondPrecision(t *testing.T) {
	mem := seeded(t)

	got := ids(t, mem, store.Query{Collection: "items", Range: &store.Range{
		Field: "at",
		Lower: &store.Bound{At: base.Add(3*time.Hour + 500*time.Microsecond), Inclusive: true},
	}})
	assert.Equal(t, []string{"d"}, got)
}

func TestMemory_Predicates(t *testing.T) {
	mem := seeded(t)

	assert.ElementsMatch(t, []string{"a", "c"}, ids(t, mem, store.Query{
		Collection: "items",
		Where:      []store.Predicate{store.Eq("kind", "x")},
	}))
	assert.ElementsMatch(t, []string{"a", "b", "d"}, ids(t, mem, store.Query{
		Collection: "items",
		Where:      []store.Predicate{store.In("kind", "x", "y", "z"), store.Eq("active", true)},
	}))
	assert.Equal(t, []string{"d"}, ids(t, mem, store.Query{
		Collection: "items",
		Where:      []store.Predicate{store.Eq("rank", int64(4))},
	}))
	assert.Empty(t, ids(t, mem, store.Query{
		Collection: "items",
		Where:      []store.Predicate{store.Eq("missing", "x")},
	}))
}

func TestMemory_GetAndInsert(t *testing.T) {
	mem := seeded(t)
	ctx := context.Background()

	var got item
	require.NoError(t, mem.Get(ctx, "items", "b", &got))
	assert.Equal(t, "y", got.Kind)
	assert.True(t, got.At.Equal(base.Add(time.Hour)))

	err := mem.Get(ctx, "items", "nope", &got)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.Error(t, mem.Insert(ctx, "items", item{ID: "a"}))
	assert.Error(t, mem.Insert(ctx, "items", item{}))
	assert.Equal(t, 4, mem.Count("items"))
}

func TestMemory_DeleteManyHonoursBatchLimit(t *testing.T) {
	mem := seeded(t)
	ctx := context.Background()

	_, err := mem.DeleteMany(ctx, "items", []string{"a", "b", "c"})
	assert.ErrorIs(t, err, store.ErrBatchTooLarge)
	assert.Equal(t, 4, mem.Count("items"))

	n, err := mem.DeleteMany(ctx, "items", []string{"a", "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, 3, mem.Count("items"))
}

func TestMemory_CancelledContextIsUnavailable(t *testing.T) {
	mem := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := mem.Find(ctx, store.Query{Collection: "items"})
	assert.True(t, errors.Is(err, store.ErrUnavailable))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestEach_YieldsCursorError(t *testing.T) {
	mem := seeded(t)
	ctx, cancel := context.WithCancel(context.Background())

	cur, err := mem.Find(ctx, store.Query{Collection: "items"})
	require.NoError(t, err)
	cancel()

	_, err = store.Collect(store.Each[item](ctx, cur))
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestChunk(t *testing.T) {
	chunks := store.Chunk([]string{"1", "2", "3", "4", "5"}, 2)
	assert.Equal(t, [][]string{{"1", "2"}, {"3", "4"}, {"5"}}, chunks)
	assert.Nil(t, store.Chunk(nil, 2))
}
