package admin

// Error messages
const (
	ErrMsgResolveRoleFailed = "failed to resolve role of %s: %w"
	ErrMsgLoadAccountFailed = "failed to load account %s: %w"
	ErrMsgActorBannedFmt    = "%w: %w: actor %s"
	ErrMsgNotAllowedFmt     = "%w: %s may not %s %s"
	ErrMsgSetBannedFailed   = "failed to update ban flag of %s: %w"
	ErrMsgGrantFailed       = "failed to grant admin to %s: %w"
	ErrMsgRevokeFailed      = "failed to revoke admin from %s: %w"
	ErrMsgListAdminsFailed  = "failed to list admins: %w"
	ErrMsgSelfActionFmt     = "%w: cannot %s yourself"
	ErrMsgAlreadyAdminFmt   = "%w: %s is already an admin"
	ErrMsgNotAdminFmt       = "%w: %s is not an admin"
)

// Actions, used in error text and logs
const (
	ActionBan      = "ban"
	ActionUnban    = "unban"
	ActionPromote  = "promote"
	ActionDemote   = "demote"
	ActionWithdraw = "withdraw"
	ActionForfeit  = "forfeit"
	ActionRestock  = "restock"
	ActionList     = "list admins"
	ActionJournal  = "read"
)

// Log messages
const (
	LogMsgAccountBanned   = "Account banned"
	LogMsgAccountUnbanned = "Account unbanned"
	LogMsgAdminGranted    = "Admin granted"
	LogMsgAdminRevoked    = "Admin revoked"
	LogMsgNoSuperAdmin    = "No super-admin configured; forced delisting and promotions are disabled"
)
