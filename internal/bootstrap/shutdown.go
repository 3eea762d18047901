package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/Huanyu_Go/internal/scheduler"
	"github.com/osse101/Huanyu_Go/internal/server"
	"github.com/osse101/Huanyu_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server       *server.Server
	Coordinator  shutdownableService
	Scheduler    *scheduler.Scheduler
	Workers      *worker.Pool
	Repositories *Repositories
}

// GracefulShutdown stops the components in dependency order:
// 1. HTTP server (stop accepting new requests)
// 2. Transaction coordinator (wait for in-flight flows)
// 3. Scheduler and worker pool (let a running cleanup finish)
// 4. Store (close the pool once nothing can use it)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Coordinator != nil {
		shutdownService(ctx, ServiceNameCoordinator, components.Coordinator)
	}

	if components.Scheduler != nil || components.Workers != nil {
		slog.Info(LogMsgStoppingBackgroundJobs)
	}
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Workers != nil {
		components.Workers.Stop()
	}

	if components.Repositories != nil {
		components.Repositories.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

// shutdownService shuts down a service and logs any error
func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
