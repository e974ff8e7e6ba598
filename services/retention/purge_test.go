package retention_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/database/store/storetest"
	"rentwatch/models"
	"rentwatch/services/retention"
	"rentwatch/services/window"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.March, 31, 6, 0, 0, 0, time.UTC)

// seedNotifications stores five notifications older than the cutoff, one
// exactly at it and one newer.
func seedNotifications(t *testing.T, mem *store.Memory) {
	cutoff := now.Add(-30 * window.Day)
	var docs []models.Notification
	for i := range 5 {
		docs = append(docs, models.Notification{
			ID:        fmt.Sprintf("old%d", i),
			UserID:    "u1",
			CreatedAt: cutoff.Add(-time.Duration(i+1) * time.Hour),
		})
	}
	docs = append(docs,
		models.Notification{ID: "boundary", UserID: "u1", CreatedAt: cutoff},
		models.Notification{ID: "fresh", UserID: "u1", CreatedAt: now.Add(-time.Hour)},
	)
	storetest.Seed(t, mem, repository.Notifications, docs...)
}

func remaining(t *testing.T, mem *store.Memory) []string {
	cur, err := mem.Find(context.Background(), store.Query{Collection: repository.Notifications})
	require.NoError(t, err)
	docs, err := store.Collect(store.Each[models.Notification](context.Background(), cur))
	require.NoError(t, err)
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

func TestPurge_DeletesInBatchesAndKeepsBoundary(t *testing.T) {
	mem := store.NewMemory(2)
	seedNotifications(t, mem)

	res, err := retention.NewPurger(repository.NewNotificationRepo(mem), 30).Run(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, int64(5), res.NotificationsDeleted)
	assert.Equal(t, 3, res.Batches)
	assert.Equal(t, now.Add(-30*window.Day), res.Cutoff)
	assert.ElementsMatch(t, []string{"boundary", "fresh"}, remaining(t, mem))
}

func TestPurge_NothingToDelete(t *testing.T) {
	mem := store.NewMemory(2)

	res, err := retention.NewPurger(repository.NewNotificationRepo(mem), 0).Run(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Zero(t, res.NotificationsDeleted)
	assert.Zero(t, res.Batches)
	assert.Equal(t, now.Add(-retention.DefaultRetentionDays*window.Day), res.Cutoff)
}

func TestPurge_FailedBatchReportsPartialProgress(t *testing.T) {
	mem := store.NewMemory(2)
	seedNotifications(t, mem)
	gw := &storetest.Faulty{
		Gateway:    mem,
		FailDelete: func(call int) bool { return call == 2 },
	}

	res, err := retention.NewPurger(repository.NewNotificationRepo(gw), 30).Run(context.Background(), now)
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrUnavailable)

	assert.False(t, res.Success)
	assert.Equal(t, int64(2), res.NotificationsDeleted)
	assert.Equal(t, 1, res.Batches)
	assert.Len(t, remaining(t, mem), 5)
}

func TestPurge_ScanFailureDeletesNothing(t *testing.T) {
	mem := store.NewMemory(2)
	seedNotifications(t, mem)
	gw := &storetest.Faulty{Gateway: mem, FailFind: func(store.Query) bool { return true }}

	res, err := retention.NewPurger(repository.NewNotificationRepo(gw), 30).Run(context.Background(), now)
	require.Error(t, err)
	assert.False(t, res.Success)
	assert.Len(t, remaining(t, mem), 7)
}
