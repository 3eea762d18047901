package ledger

// Error messages
const (
	ErrMsgDebitFailed   = "debit of %d from %s failed: %w"
	ErrMsgCreditFailed  = "credit of %d to %s failed: %w"
	ErrMsgBalanceFailed = "failed to read balance of %s: %w"
)

// Log messages
const (
	LogMsgDebited  = "Balance debited"
	LogMsgCredited = "Balance credited"
)
