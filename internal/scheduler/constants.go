package scheduler

// LogMsgTickSkipped is logged when the pool refuses a scheduled run
const LogMsgTickSkipped = "Scheduled job skipped, worker pool busy"
