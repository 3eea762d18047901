package worker

import "time"

// Log messages for the worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgWorkerQueueFull = "Worker queue full, job dropped"
)

const (
	// DefaultJobTimeout bounds a single job run
	DefaultJobTimeout = time.Minute
	// UnnamedJob labels jobs that do not implement Named
	UnnamedJob = "unnamed"
)
