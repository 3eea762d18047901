package postgres

import "time"

// PostgreSQL error codes
const (
	PgErrorCodeUniqueViolation      = "23505"
	PgErrorCodeForeignKeyViolation  = "23503"
	PgErrorCodeCheckViolation       = "23514"
	PgErrorCodeSerializationFailure = "40001"
	PgErrorCodeDeadlockDetected     = "40P01"
)

// Retry policy for serializable transactions
const (
	DefaultMaxAttempts = 8
	InitialRetryDelay  = 75 * time.Millisecond
	MaxRetryDelay      = 1200 * time.Millisecond
)

// Error messages
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction: %w"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction: %w"
	ErrMsgInvalidAccountID          = "invalid account id %q: %w"
	ErrMsgFailedToGetAccount        = "failed to get account: %w"
	ErrMsgFailedToCreateAccount     = "failed to create account: %w"
	ErrMsgFailedToUpdateBalance     = "failed to update balance: %w"
	ErrMsgFailedToUpdateInventory   = "failed to update inventory: %w"
	ErrMsgFailedToReadInventory     = "failed to read inventory: %w"
	ErrMsgFailedToQueryListings     = "failed to query listings: %w"
	ErrMsgFailedToWriteListing      = "failed to write listing: %w"
	ErrMsgFailedToQueryItems        = "failed to query items: %w"
	ErrMsgFailedToWriteItem         = "failed to write item: %w"
	ErrMsgFailedToQueryRecipes      = "failed to query recipes: %w"
	ErrMsgFailedToWriteRecipe       = "failed to write recipe: %w"
	ErrMsgFailedToQueryAdmins       = "failed to query admins: %w"
	ErrMsgFailedToWriteAdmin        = "failed to write admin grant: %w"
	ErrMsgFailedToWriteEvent        = "failed to write event log: %w"
	ErrMsgFailedToQueryEvents       = "failed to query event log: %w"
)

// Log messages
const (
	LogMsgRollbackFailed        = "Failed to rollback transaction"
	LogMsgSerializationConflict = "Serialization conflict, retrying transaction"
	LogMsgRetriesExhausted      = "Transaction retries exhausted"
)
