// Package retention deletes notifications that have aged past the retention period.
package retention

import (
	"context"
	"fmt"
	"time"

	"rentwatch/database/repository"
	"rentwatch/database/store"
	"rentwatch/services/window"
	"rentwatch/utils"

	"go.uber.org/zap"
)

const DefaultRetentionDays = 30

type PurgeResult struct {
	Success              bool      `json:"success"`
	NotificationsDeleted int64     `json:"notificationsDeleted"`
	Batches              int       `json:"batches"`
	Cutoff               time.Time `json:"cutoff"`
}

// Purger removes notifications created strictly before now minus RetentionDays.
type Purger struct {
	Notifications repository.NotificationRepository
	RetentionDays int
}

func NewPurger(notifications repository.NotificationRepository, retentionDays int) *Purger {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	return &Purger{Notifications: notifications, RetentionDays: retentionDays}
}

// Run deletes in sequential chunks no larger than the store's batch limit. Each
// chunk commits on its own; an error stops the run and reports what was deleted
// so far. The next run re-scans, so leftovers are picked up then.
func (p *Purger) Run(ctx context.Context, now time.Time) (PurgeResult, error) {
	w := window.Compute(now, p.RetentionDays, window.Backward)
	result := PurgeResult{Cutoff: w.Upper.At}
	logger := utils.GetLogger().With(zap.Time("cutoff", result.Cutoff))

	var ids []string
	for id, err := range p.Notifications.IDsCreatedIn(ctx, w) {
		if err != nil {
			logger.Error("Error scanning old notifications", zap.Error(err))
			return result, fmt.Errorf("scan old notifications: %w", err)
		}
		ids = append(ids, id)
	}

	for _, chunk := range store.Chunk(ids, p.Notifications.MaxBatchSize()) {
		deleted, err := p.Notifications.DeleteBatch(ctx, chunk)
		if err != nil {
			logger.Error("Error deleting notification batch",
				zap.Int("batch", result.Batches+1),
				zap.Int64("deletedSoFar", result.NotificationsDeleted),
				zap.Error(err),
			)
			return result, fmt.Errorf("delete notification batch %d: %w", result.Batches+1, err)
		}
		result.Batches++
		result.NotificationsDeleted += deleted
	}

	result.Success = true
	logger.Info("Deleted old notifications",
		zap.Int64("notificationsDeleted", result.NotificationsDeleted),
		zap.Int("batches", result.Batches),
	)
	return result, nil
}
