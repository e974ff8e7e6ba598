package repository

import (
	"context"
	"iter"

	"rentwatch/database/store"
	"rentwatch/models"
	"rentwatch/services/window"
)

// NotificationRepository is the only writer of the notifications collection.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	// IDsCreatedIn streams the ids of notifications whose createdAt falls in w.
	IDsCreatedIn(ctx context.Context, w window.Window) iter.Seq2[string, error]
	// DeleteBatch removes at most MaxBatchSize ids in one atomic call.
	DeleteBatch(ctx context.Context, ids []string) (int64, error)
	MaxBatchSize() int
}

type notificationRepo struct {
	gw store.Gateway
}

func NewNotificationRepo(gw store.Gateway) NotificationRepository {
	return &notificationRepo{gw: gw}
}

func (r *notificationRepo) Create(ctx context.Context, n *models.Notification) error {
	return r.gw.Insert(ctx, Notifications, n)
}

type idOnly struct {
	ID string `bson:"id"`
}

func (r *notificationRepo) IDsCreatedIn(ctx context.Context, w window.Window) iter.Seq2[string, error] {
	docs := find[idOnly](ctx, r.gw, store.Query{
		Collection: Notifications,
		Range:      rangeOf("createdAt", w),
	})
	return func(yield func(string, error) bool) {
		for doc, err := range docs {
			if !yield(doc.ID, err) {
				return
			}
		}
	}
}

func (r *notificationRepo) DeleteBatch(ctx context.Context, ids []string) (int64, error) {
	return r.gw.DeleteMany(ctx, Notifications, ids)
}

func (r *notificationRepo) MaxBatchSize() int { return r.gw.MaxBatchSize() }
