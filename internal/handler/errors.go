package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgInvalidPathParam      = "Invalid %s"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgUnknownError          = "Unknown error"
)

// Operation names, used in logs when a service call fails
const (
	OpRegister       = "Register account"
	OpGetAccount     = "Get account"
	OpBackpack       = "List backpack"
	OpDiscard        = "Discard item"
	OpCatalogItems   = "List catalog items"
	OpSystemOffers   = "List system offers"
	OpPlayerOffers   = "List player offers"
	OpPurchase       = "Purchase"
	OpCreateListing  = "Create listing"
	OpWithdraw       = "Withdraw listing"
	OpForfeit        = "Forfeit listing"
	OpRecipes        = "List recipes"
	OpCraft          = "Craft"
	OpBan            = "Ban account"
	OpUnban          = "Unban account"
	OpPromote        = "Promote admin"
	OpDemote         = "Demote admin"
	OpListAdmins     = "List admins"
	OpRestock        = "Restock system item"
	OpJournal        = "Read recovery journal"
	LogMsgOpFailed   = "%s failed"
	LogMsgOpRejected = "%s rejected"
)

// Success messages for API responses
const (
	MsgAccountBanned   = "Account banned"
	MsgAccountUnbanned = "Account unbanned"
	MsgAdminPromoted   = "Account promoted to admin"
	MsgAdminDemoted    = "Admin rights revoked"
	MsgRestocked       = "System stock updated"
	MsgDiscardedFmt    = "Discarded %d"
)

// Query and path parameter names
const (
	ParamAccountID = "accountID"
	ParamItemID    = "itemID"
	ParamListingID = "listingID"

	QueryAccountID = "account_id"
	QueryActorID   = "actor_id"
	QuerySellerID  = "seller_id"
	QueryCategory  = "category"
	QueryItemID    = "item_id"
	QueryKind      = "kind"
	QueryLimit     = "limit"
	QueryEventType = "type"
	QuerySince     = "since"
)
