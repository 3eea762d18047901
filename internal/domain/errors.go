package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Amount and quantity errors
	ErrMsgInvalidAmount         = "invalid amount"
	ErrMsgInsufficientFunds     = "insufficient funds"
	ErrMsgInsufficientQuantity  = "insufficient quantity"
	ErrMsgInsufficientInventory = "insufficient inventory"
	ErrMsgMissingMaterials      = "missing materials"
	ErrMsgInsufficientStock     = "not enough stock left on the offer"

	// Not-found errors
	ErrMsgAccountNotFound = "account not found"
	ErrMsgItemNotFound    = "item not found"
	ErrMsgListingNotFound = "listing not found"
	ErrMsgRecipeNotFound  = "recipe not found"

	// Listing errors
	ErrMsgListingInactive = "listing is no longer active"
	ErrMsgOwnListing      = "cannot buy your own listing"

	// Permission errors
	ErrMsgPermissionDenied = "permission denied"
	ErrMsgAccountBanned    = "account is banned"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgTxConflict = "transaction conflict, retries exhausted"
	ErrMsgTxClosed   = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrInvalidAmount         = errors.New(ErrMsgInvalidAmount)
	ErrInsufficientFunds     = errors.New(ErrMsgInsufficientFunds)
	ErrInsufficientQuantity  = errors.New(ErrMsgInsufficientQuantity)
	ErrInsufficientInventory = errors.New(ErrMsgInsufficientInventory)
	ErrMissingMaterials      = errors.New(ErrMsgMissingMaterials)
	ErrInsufficientStock     = errors.New(ErrMsgInsufficientStock)

	ErrAccountNotFound = errors.New(ErrMsgAccountNotFound)
	ErrItemNotFound    = errors.New(ErrMsgItemNotFound)
	ErrListingNotFound = errors.New(ErrMsgListingNotFound)
	ErrRecipeNotFound  = errors.New(ErrMsgRecipeNotFound)

	ErrListingInactive = errors.New(ErrMsgListingInactive)
	ErrOwnListing      = errors.New(ErrMsgOwnListing)

	ErrPermissionDenied = errors.New(ErrMsgPermissionDenied)
	ErrAccountBanned    = errors.New(ErrMsgAccountBanned)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrTxConflict = errors.New(ErrMsgTxConflict)
)

// User-facing reasons returned alongside a failed flow
const (
	ReasonInvalidAmount         = "The amount must be a positive whole number."
	ReasonInsufficientFunds     = "Not enough spirit stones."
	ReasonInsufficientQuantity  = "You do not hold enough of that item."
	ReasonInsufficientInventory = "You do not hold enough of that item to list it."
	ReasonMissingMaterials      = "Missing crafting materials."
	ReasonInsufficientStock     = "The offer does not have that many left."
	ReasonAccountNotFound       = "Account not found."
	ReasonItemNotFound          = "Item not found."
	ReasonListingNotFound       = "Listing not found."
	ReasonRecipeNotFound        = "Recipe not found."
	ReasonListingInactive       = "That listing has already been taken down or sold out."
	ReasonOwnListing            = "You cannot buy your own listing."
	ReasonPermissionDenied      = "You are not allowed to do that."
	ReasonAccountBanned         = "This account is banned."
	ReasonInvalidInput          = "Invalid request. Please check your inputs."
	ReasonTxConflict            = "The market is busy. Please try again."
	ReasonInternal              = "Something went wrong. Please try again later."
)

// businessReasons is ordered: wrapped errors can match more than one sentinel
// and the more specific one must win.
var businessReasons = []struct {
	err    error
	reason string
}{
	{ErrAccountBanned, ReasonAccountBanned},
	{ErrInsufficientInventory, ReasonInsufficientInventory},
	{ErrMissingMaterials, ReasonMissingMaterials},
	{ErrInsufficientStock, ReasonInsufficientStock},
	{ErrInsufficientFunds, ReasonInsufficientFunds},
	{ErrInsufficientQuantity, ReasonInsufficientQuantity},
	{ErrInvalidAmount, ReasonInvalidAmount},
	{ErrAccountNotFound, ReasonAccountNotFound},
	{ErrItemNotFound, ReasonItemNotFound},
	{ErrListingNotFound, ReasonListingNotFound},
	{ErrRecipeNotFound, ReasonRecipeNotFound},
	{ErrListingInactive, ReasonListingInactive},
	{ErrOwnListing, ReasonOwnListing},
	{ErrPermissionDenied, ReasonPermissionDenied},
	{ErrInvalidInput, ReasonInvalidInput},
}

// IsBusinessError reports whether err is an expected business condition
// rather than a storage or connectivity failure.
func IsBusinessError(err error) bool {
	if err == nil {
		return false
	}
	for _, br := range businessReasons {
		if errors.Is(err, br.err) {
			return true
		}
	}
	return false
}

// Reason returns a short human-readable explanation for err.
func Reason(err error) string {
	if err == nil {
		return ""
	}
	for _, br := range businessReasons {
		if errors.Is(err, br.err) {
			return br.reason
		}
	}
	if errors.Is(err, ErrTxConflict) {
		return ReasonTxConflict
	}
	return ReasonInternal
}
