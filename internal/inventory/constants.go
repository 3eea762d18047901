package inventory

// Error messages
const (
	ErrMsgAddFailed     = "failed to add %d of item %d: %w"
	ErrMsgRemoveFailed  = "failed to remove %d of item %d: %w"
	ErrMsgReadFailed    = "failed to read inventory: %w"
	ErrMsgDiscardFailed = "failed to discard item %d: %w"
)

// Log messages
const (
	LogMsgItemsAdded     = "Items added to inventory"
	LogMsgItemsRemoved   = "Items removed from inventory"
	LogMsgItemsDiscarded = "Inventory entry discarded"
)
