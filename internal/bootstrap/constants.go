package bootstrap

import "time"

// =============================================================================
// File System Permissions
// =============================================================================

const (
	// DirPermission is the standard permission for creating directories
	DirPermission = 0755

	// LogFilePermission is the permission for log files (read/write for owner, read for group/others)
	LogFilePermission = 0666
)

// =============================================================================
// Logger Configuration
// =============================================================================

const (
	// LogFileTimestampFormat is the timestamp format for log filenames (YYYY-MM-DD_HH-MM-SS)
	LogFileTimestampFormat = "2006-01-02_15-04-05"

	// LogFileNamePattern is the format string for log filenames
	LogFileNamePattern = "session_%s.log"

	// LogFileExtension is the file extension for log files
	LogFileExtension = ".log"

	// LogFileRetentionCount is the number of older log files kept next to the new one
	LogFileRetentionCount = 9
)

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStartingHuanyu      = "Starting Huanyu economy service"
	LogMsgFailedCreateLogsDir = "failed to create logs directory"
	LogMsgFailedOpenLogFile   = "failed to open log file"
	LogMsgFailedDeleteOldLog  = "Failed to delete old log file"
)

// =============================================================================
// Store Initialization
// =============================================================================

const (
	LogMsgStoreReady        = "Store ready"
	LogMsgMigrationsApplied = "Database migrations applied"
	ErrMsgFailedOpenPool    = "failed to open database pool"
	ErrMsgFailedMigrate     = "failed to apply database migrations"
	ErrMsgUnknownDriver     = "unknown store driver %q"
)

// =============================================================================
// Event System
// =============================================================================

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	ErrMsgFailedRegisterMetrics      = "failed to register metrics collector"
	LogMsgJournalSubscribed          = "Recovery journal subscribed"
	ErrMsgFailedSubscribeJournal     = "failed to subscribe recovery journal"
)

// =============================================================================
// Background Jobs
// =============================================================================

const (
	// WorkerQueueSize bounds jobs waiting for a free worker
	WorkerQueueSize              = 16
	LogMsgBackgroundJobsStarted  = "Background jobs started"
	LogMsgStoppingBackgroundJobs = "Stopping background jobs"
)

// =============================================================================
// Catalog Sync Messages
// =============================================================================

const (
	LogMsgSyncingCatalog    = "Syncing items and recipes from JSON config..."
	LogMsgCatalogSynced     = "Catalog synced successfully"
	LogMsgCatalogUnchanged  = "Catalog config unchanged"
	ErrMsgFailedSyncCatalog = "failed to sync catalog"
)

// =============================================================================
// Shutdown
// =============================================================================

const (
	// ShutdownTimeout bounds the whole graceful shutdown sequence
	ShutdownTimeout = 15 * time.Second

	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerStopped        = "Server stopped"
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgClosingStore         = "Closing store"

	// Service names for shutdown logging
	ServiceNameCoordinator = "transaction coordinator"
)

// Shutdown log message format (service name will be prepended)
const (
	LogMsgServiceShutdownFailed = " shutdown failed"
)
