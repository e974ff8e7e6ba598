package store

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Memory is an in-process Gateway for tests and local runs. Documents are kept
// BSON-encoded so they round-trip through the same tags as the Mongo gateway.
type Memory struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
	batchSize   int
}

func NewMemory(batchSize int) *Memory {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Memory{
		collections: make(map[string][]bson.Raw),
		batchSize:   batchSize,
	}
}

func (m *Memory) Find(ctx context.Context, q Query) (Cursor, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("find "+q.Collection, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []bson.Raw
	for _, doc := range m.collections[q.Collection] {
		if matches(doc, q) {
			matched = append(matched, doc)
		}
	}
	return &memoryCursor{docs: matched, pos: -1}, nil
}

func (m *Memory) Get(ctx context.Context, collection, id string, out any) error {
	if err := ctx.Err(); err != nil {
		return unavailable("get "+collection, err)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, doc := range m.collections[collection] {
		if docID(doc) == id {
			return bson.Unmarshal(doc, out)
		}
	}
	return ErrNotFound
}

func (m *Memory) Insert(ctx context.Context, collection string, doc any) error {
	if err := ctx.Err(); err != nil {
		return unavailable("insert "+collection, err)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	id := docID(raw)
	if id == "" {
		return fmt.Errorf("insert into %s: document has no id", collection)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.collections[collection] {
		if docID(existing) == id {
			return fmt.Errorf("insert into %s: duplicate id %s", collection, id)
		}
	}
	m.collections[collection] = append(m.collections[collection], raw)
	return nil
}

func (m *Memory) DeleteMany(ctx context.Context, collection string, ids []string) (int64, error) {
	if len(ids) > m.batchSize {
		return 0, fmt.Errorf("delete %d ids from %s: %w", len(ids), collection, ErrBatchTooLarge)
	}
	if err := ctx.Err(); err != nil {
		return 0, unavailable("delete "+collection, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	docs := m.collections[collection]
	before := len(docs)
	docs = slices.DeleteFunc(docs, func(doc bson.Raw) bool {
		return slices.Contains(ids, docID(doc))
	})
	m.collections[collection] = docs
	return int64(before - len(docs)), nil
}

func (m *Memory) MaxBatchSize() int { return m.batchSize }

func (m *Memory) Ping(ctx context.Context) error { return ctx.Err() }

// Count returns the number of documents held in collection.
func (m *Memory) Count(collection string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.collections[collection])
}

func docID(doc bson.Raw) string {
	v, err := doc.LookupErr("id")
	if err != nil {
		return ""
	}
	s, _ := v.StringValueOK()
	return s
}

func matches(doc bson.Raw, q Query) bool {
	if r := q.Range; r != nil && (r.Lower != nil || r.Upper != nil) {
		v, err := doc.LookupErr(strings.Split(r.Field, ".")...)
		if err != nil {
			return false
		}
		ms, ok := v.DateTimeOK()
		if !ok {
			return false
		}
		if !within(time.UnixMilli(ms), r) {
			return false
		}
	}
	for _, p := range q.Where {
		v, err := doc.LookupErr(strings.Split(p.Field, ".")...)
		if err != nil {
			return false
		}
		if !slices.ContainsFunc(p.Values, func(want any) bool { return equalValue(v, want) }) {
			return false
		}
	}
	return true
}

// within compares at millisecond precision, the resolution BSON dates keep.
func within(t time.Time, r *Range) bool {
	if r.Lower != nil {
		lower := time.UnixMilli(r.Lower.At.UnixMilli())
		if t.Before(lower) || (!r.Lower.Inclusive && t.Equal(lower)) {
			return false
		}
	}
	if r.Upper != nil {
		upper := time.UnixMilli(r.Upper.At.UnixMilli())
		if t.After(upper) || (!r.Upper.Inclusive && t.Equal(upper)) {
			return false
		}
	}
	return true
}

func equalValue(v bson.RawValue, want any) bool {
	t, data, err := bson.MarshalValue(want)
	if err != nil {
		return false
	}
	if v.Type != t {
		// Numbers may be stored with a different width than the predicate value.
		if isNumeric(v.Type) && isNumeric(t) {
			return v.AsInt64() == bson.RawValue{Type: t, Value: data}.AsInt64()
		}
		return false
	}
	return bytes.Equal(v.Value, data)
}

func isNumeric(t bsontype.Type) bool {
	return t == bsontype.Int32 || t == bsontype.Int64
}

type memoryCursor struct {
	docs []bson.Raw
	pos  int
	err  error
}

func (c *memoryCursor) Next(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		c.err = unavailable("iterate", err)
		return false
	}
	c.pos++
	return c.pos < len(c.docs)
}

func (c *memoryCursor) Decode(v any) error {
	if c.pos < 0 || c.pos >= len(c.docs) {
		return fmt.Errorf("cursor is not positioned on a document")
	}
	return bson.Unmarshal(c.docs[c.pos], v)
}

func (c *memoryCursor) Err() error { return c.err }

func (c *memoryCursor) Close(context.Context) error { return nil }
