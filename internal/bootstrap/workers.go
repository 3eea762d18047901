package bootstrap

import (
	"log/slog"

	"github.com/osse101/Huanyu_Go/internal/config"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/scheduler"
	"github.com/osse101/Huanyu_Go/internal/worker"
)

// StartBackgroundJobs starts the worker pool and schedules the recovery journal
// cleanup on it. Both are stopped by GracefulShutdown.
func StartBackgroundJobs(cfg *config.Config, journal eventlog.Service) (*worker.Pool, *scheduler.Scheduler) {
	pool := worker.NewPool(cfg.WorkerCount, WorkerQueueSize, 0)
	pool.Start()

	sched := scheduler.New(pool)
	sched.Schedule(cfg.EventLogCleanupInterval, eventlog.NewCleanupJob(journal, cfg.EventLogRetention))
	sched.Start()

	slog.Info(LogMsgBackgroundJobsStarted,
		"workers", cfg.WorkerCount,
		"cleanup_interval", cfg.EventLogCleanupInterval,
		"retention", cfg.EventLogRetention)
	return pool, sched
}
