package memory

import "math"

const maxInt64 = math.MaxInt64

// Operation names accepted by FailNext
const (
	OpGetAccount           = "GetAccount"
	OpCreateAccount        = "CreateAccount"
	OpDebitBalance         = "DebitBalance"
	OpCreditBalance        = "CreditBalance"
	OpSetBanned            = "SetBanned"
	OpAddQuantity          = "AddQuantity"
	OpRemoveQuantity       = "RemoveQuantity"
	OpDeleteEntry          = "DeleteEntry"
	OpInsertListing        = "InsertListing"
	OpDeactivateListing    = "DeactivateListing"
	OpDecrementListing     = "DecrementListing"
	OpDecrementSystemStock = "DecrementSystemStock"
	OpSetSystemStock       = "SetSystemStock"
	OpUpsertItem           = "UpsertItem"
	OpUpsertRecipe         = "UpsertRecipe"
	OpGrantAdmin           = "GrantAdmin"
	OpRevokeAdmin          = "RevokeAdmin"
)

// Error messages
const (
	ErrMsgUsernameTakenFmt = "username %q is already taken: %w"
	ErrMsgNegativeStockFmt = "stock %d below unlimited sentinel: %w"
)
