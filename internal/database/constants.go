package database

import "time"

// Pool sizing
const (
	// DefaultMinConnections is the minimum number of connections kept open
	DefaultMinConnections = 2

	// PingTimeout bounds the startup connectivity check
	PingTimeout = 5 * time.Second
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
)

// Log messages
const (
	LogMsgConnectedToDatabase = "Connected to the database"
)
