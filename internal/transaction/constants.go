package transaction

// Isolation selects how a flow's steps are grouped against the store
type Isolation string

const (
	// IsolationTransaction runs every flow in one store transaction
	IsolationTransaction Isolation = "transaction"
	// IsolationSequential applies each step on its own. A failure after the
	// first mutation leaves the earlier steps applied.
	IsolationSequential Isolation = "sequential"
)

// Error messages
const (
	ErrMsgLoadAccountFailed   = "failed to load account %s: %w"
	ErrMsgAccountBannedFmt    = "%w: %w: account %s"
	ErrMsgQuantityFmt         = "%w: quantity %d must be between 1 and %d"
	ErrMsgOfferFailed         = "failed to resolve offer %s/%d: %w"
	ErrMsgNotSystemOfferFmt   = "%w: item %d is not sold by the system"
	ErrMsgStockShortFmt       = "%w: %d requested, %d left"
	ErrMsgTotalFmt            = "%w: %d x %d overflows"
	ErrMsgDebitFailed         = "failed to charge buyer: %w"
	ErrMsgAddItemFailed       = "failed to deliver goods: %w"
	ErrMsgDecrementFailed     = "failed to decrement stock: %w"
	ErrMsgCreditSellerFailed  = "failed to pay seller %s: %w"
	ErrMsgItemLookupFailed    = "failed to look up item %d: %w"
	ErrMsgRemoveItemFailed    = "failed to take goods for listing: %w"
	ErrMsgCreateListingFailed = "failed to create listing: %w"
	ErrMsgSystemListingFmt    = "%w: listing %d is a system offer"
	ErrMsgDeactivateFailed    = "failed to take down listing %d: %w"
	ErrMsgRefundFailed        = "failed to refund %d of item %d to %s: %w"
	ErrMsgCraftFailed         = "failed to craft recipe %d: %w"
	ErrMsgRestockFailed       = "failed to restock item %d: %w"
	ErrMsgShutdownTimeout     = "shutdown timed out: %w"
)

// Log messages
const (
	LogMsgFlowCompleted     = "Flow completed"
	LogMsgFlowRejected      = "Flow rejected"
	LogMsgFlowFailed        = "Flow failed"
	LogMsgFlowUncompensated = "Flow failed after earlier steps were applied; they were not undone"
	LogMsgPublishFailed     = "Failed to publish event"
	LogMsgShuttingDown      = "Transaction coordinator shutting down, waiting for in-flight flows..."
)
