package domain

import (
	"fmt"
	"time"
)

// InventoryEntry is one (account, item) holding. Quantity is always positive;
// an entry that would drop to zero is deleted instead.
type InventoryEntry struct {
	AccountID  string    `json:"account_id"`
	ItemID     int       `json:"item_id"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at,omitempty"`
}

// NewInventoryEntry validates the positive-quantity invariant
func NewInventoryEntry(accountID string, itemID, quantity int) (InventoryEntry, error) {
	if quantity <= 0 {
		return InventoryEntry{}, fmt.Errorf("%w: quantity %d", ErrInvalidAmount, quantity)
	}
	return InventoryEntry{AccountID: accountID, ItemID: itemID, Quantity: quantity}, nil
}

// Holding is an inventory entry joined with its item definition (backpack view)
type Holding struct {
	Item       Item      `json:"item"`
	Quantity   int       `json:"quantity"`
	AcquiredAt time.Time `json:"acquired_at,omitempty"`
}
