package market

// DefaultPageSize is used when the configured page size is not positive
const DefaultPageSize = 50

// Error messages
const (
	ErrMsgSystemOffersFailed = "failed to page system offers after item %d: %w"
	ErrMsgPlayerOffersFailed = "failed to list player offers: %w"
	ErrMsgCreateFailed       = "failed to create listing: %w"
	ErrMsgDeactivateFailed   = "failed to deactivate listing %d: %w"
	ErrMsgDecrementFailed    = "failed to decrement listing %d: %w"
	ErrMsgSystemStockFailed  = "failed to update stock of item %d: %w"
	ErrMsgGetListingFailed   = "failed to get listing %d: %w"
)

// Log messages
const (
	LogMsgListingCreated     = "Listing created"
	LogMsgListingDeactivated = "Listing deactivated"
	LogMsgListingSoldOut     = "Listing sold out"
	LogMsgSystemRestocked    = "System item restocked"
)
