// Package cron schedules the daily jobs on the asynq queue and executes them.
package cron

import (
	"context"
	"fmt"

	"rentwatch/config"
	"rentwatch/services/tasks"
	"rentwatch/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// JobRunner executes a scheduled job by task type.
type JobRunner interface {
	Run(ctx context.Context, name string) (any, error)
}

// Worker owns the scheduler that enqueues the jobs and the server that runs them.
type Worker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	mux       *asynq.ServeMux
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewWorker registers both jobs on JOB_SCHEDULE, in REPORT_TIMEZONE.
func NewWorker(runner JobRunner) (*Worker, error) {
	logger := utils.GetLogger().Sugar()
	opt := redisOpt()

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		Logger:   logger,
		Location: config.ReportLocation(),
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				logger.Warnw("Failed to enqueue scheduled job", "error", err)
				return
			}
			logger.Debugw("Enqueued scheduled job", "type", info.Type, "id", info.ID)
		},
	})
	for _, name := range []string{tasks.TypeExpiryScan, tasks.TypeRetentionPurge} {
		entryID, err := scheduler.Register(config.AppConfig.JobSchedule, tasks.NewJobTask(name, config.AppConfig.JobTimeout))
		if err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
		logger.Infow("Registered scheduled job", "type", name, "entry", entryID, "schedule", config.AppConfig.JobSchedule)
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 2,
		Queues: map[string]int{
			"default": 1,
		},
		Logger: logger,
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeExpiryScan, handleJob(runner))
	mux.HandleFunc(tasks.TypeRetentionPurge, handleJob(runner))

	return &Worker{scheduler: scheduler, server: server, mux: mux}, nil
}

// Start runs the scheduler and the server in the background.
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start job server: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start scheduler: %w", err)
	}
	return nil
}

func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

// handleJob runs one job. A failed run is logged and never retried; the next
// scheduled run starts from a fresh scan.
func handleJob(runner JobRunner) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger().With(zap.String("job", task.Type()))
		res, err := runner.Run(ctx, task.Type())
		if err != nil {
			logger.Error("Scheduled job failed", zap.Bool("success", false), zap.Any("result", res), zap.Error(err))
			return fmt.Errorf("%s: %v: %w", task.Type(), err, asynq.SkipRetry)
		}
		logger.Info("Scheduled job finished", zap.Any("result", res))
		return nil
	}
}
