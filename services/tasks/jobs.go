// Package tasks names the scheduled jobs and runs them under a wall-clock budget.
package tasks

import (
	"context"
	"fmt"
	"time"

	"rentwatch/services/expiry"
	"rentwatch/services/retention"

	"github.com/hibiken/asynq"
)

const (
	TypeExpiryScan     = "contracts:expiry_scan"
	TypeRetentionPurge = "notifications:purge"
	defaultBudget      = 9 * time.Minute
	scheduledQueue     = "default"
	uniqueTTL          = time.Hour
)

// ExpiryJob and PurgeJob are the two scheduled jobs.
type ExpiryJob interface {
	Run(ctx context.Context, now time.Time) (expiry.ScanResult, error)
}

type PurgeJob interface {
	Run(ctx context.Context, now time.Time) (retention.PurgeResult, error)
}

// Runner invokes jobs by name. Each invocation gets its own deadline; work
// still in flight when it expires is abandoned without rollback.
type Runner struct {
	Expiry  ExpiryJob
	Purge   PurgeJob
	Timeout time.Duration
	Now     func() time.Time
}

func (r *Runner) budget(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = defaultBudget
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func (r *Runner) RunExpiryScan(ctx context.Context) (expiry.ScanResult, error) {
	ctx, cancel := r.budget(ctx)
	defer cancel()
	return r.Expiry.Run(ctx, r.now())
}

func (r *Runner) RunPurge(ctx context.Context) (retention.PurgeResult, error) {
	ctx, cancel := r.budget(ctx)
	defer cancel()
	return r.Purge.Run(ctx, r.now())
}

// Run dispatches on the task type name.
func (r *Runner) Run(ctx context.Context, name string) (any, error) {
	switch name {
	case TypeExpiryScan:
		return r.RunExpiryScan(ctx)
	case TypeRetentionPurge:
		return r.RunPurge(ctx)
	default:
		return nil, fmt.Errorf("unknown job %q", name)
	}
}

// NewJobTask builds the queue task for a scheduled job. Tasks are never
// retried: the next scheduled run re-scans the store instead.
func NewJobTask(name string, timeout time.Duration) *asynq.Task {
	if timeout <= 0 {
		timeout = defaultBudget
	}
	return asynq.NewTask(name, nil,
		asynq.Queue(scheduledQueue),
		asynq.MaxRetry(0),
		asynq.Timeout(timeout),
		asynq.Unique(uniqueTTL),
	)
}
