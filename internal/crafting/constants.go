package crafting

// ==================== Error Messages ====================

const (
	ErrMsgGetRecipeFailed     = "failed to get recipe %d: %w"
	ErrMsgGetOutputFailed     = "failed to get output item for recipe %d: %w"
	ErrMsgListRecipesFailed   = "failed to list recipes: %w"
	ErrMsgCheckMaterialFailed = "failed to check materials: %w"
	ErrMsgCheckFundsFailed    = "failed to check funds: %w"
	ErrMsgNeedMaterialsFmt    = "%w: recipe %q"
	ErrMsgNeedFundsFmt        = "%w: recipe %q costs %d, balance %d"
	ErrMsgPayCostFailed       = "failed to pay crafting cost: %w"
	ErrMsgReadBalanceFailed   = "failed to read balance: %w"
	ErrMsgConsumeFailed       = "failed to consume material %d: %w"
	ErrMsgGrantOutputFailed   = "failed to grant output: %w"
)

// ==================== Result Messages ====================

// Shown to the player. The first verb argument comes from the recipe kind.
const (
	MsgSuccessFmt = "%s succeeded: received %d x %s."
	MsgFailureFmt = "%s failed: the materials and %d spirit stones were consumed."
)

const (
	VerbAlchemy = "Pill refining"
	VerbForge   = "Forging"
)

// ==================== Log Messages ====================

const (
	LogMsgCraftStarted  = "Craft started"
	LogMsgCraftFinished = "Craft finished"
	LogMsgCraftRejected = "Craft rejected"
)
