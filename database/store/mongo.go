package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo implements Gateway on a MongoDB database.
type Mongo struct {
	db        *mongo.Database
	batchSize int
	opTimeout time.Duration
}

// NewMongo wraps db. batchSize caps the ids accepted by one DeleteMany.
func NewMongo(db *mongo.Database, batchSize int) *Mongo {
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Mongo{db: db, batchSize: batchSize, opTimeout: 5 * time.Second}
}

// newContext bounds a single-document operation.
func (s *Mongo) newContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *Mongo) Find(ctx context.Context, q Query) (Cursor, error) {
	cur, err := s.db.Collection(q.Collection).Find(ctx, filterOf(q))
	if err != nil {
		return nil, unavailable("find "+q.Collection, err)
	}
	return &mongoCursor{cur: cur, op: "iterate " + q.Collection}, nil
}

func (s *Mongo) Get(ctx context.Context, collection, id string, out any) error {
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	err := s.db.Collection(collection).FindOne(ctx, bson.M{"id": id}).Decode(out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return unavailable(fmt.Sprintf("get %s/%s", collection, id), err)
	}
	return nil
}

func (s *Mongo) Insert(ctx context.Context, collection string, doc any) error {
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert into %s: %w", collection, err)
		}
		return unavailable("insert "+collection, err)
	}
	return nil
}

// DeleteMany removes the given ids in one DeleteMany call.
func (s *Mongo) DeleteMany(ctx context.Context, collection string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	if len(ids) > s.batchSize {
		return 0, fmt.Errorf("delete %d ids from %s: %w", len(ids), collection, ErrBatchTooLarge)
	}

	ctx, cancel := s.newContext(ctx)
	defer cancel()

	res, err := s.db.Collection(collection).DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, unavailable("delete "+collection, err)
	}
	return res.DeletedCount, nil
}

func (s *Mongo) MaxBatchSize() int { return s.batchSize }

func (s *Mongo) Ping(ctx context.Context) error {
	if err := s.db.Client().Ping(ctx, readpref.Primary()); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// filterOf translates a Query into a Mongo filter document.
func filterOf(q Query) bson.M {
	filter := bson.M{}
	if r := q.Range; r != nil && (r.Lower != nil || r.Upper != nil) {
		cond := bson.M{}
		if r.Lower != nil {
			op := "$gt"
			if r.Lower.Inclusive {
				op = "$gte"
			}
			cond[op] = r.Lower.At
		}
		if r.Upper != nil {
			op := "$lt"
			if r.Upper.Inclusive {
				op = "$lte"
			}
			cond[op] = r.Upper.At
		}
		filter[r.Field] = cond
	}
	for _, p := range q.Where {
		switch p.Op {
		case OpIn:
			filter[p.Field] = bson.M{"$in": p.Values}
		default:
			filter[p.Field] = p.Values[0]
		}
	}
	return filter
}

type mongoCursor struct {
	cur *mongo.Cursor
	op  string
}

func (c *mongoCursor) Next(ctx context.Context) bool { return c.cur.Next(ctx) }

func (c *mongoCursor) Decode(v any) error { return c.cur.Decode(v) }

func (c *mongoCursor) Err() error {
	if err := c.cur.Err(); err != nil {
		return unavailable(c.op, err)
	}
	return nil
}

func (c *mongoCursor) Close(ctx context.Context) error { return c.cur.Close(ctx) }
