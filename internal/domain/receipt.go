package domain

// Receipt summarises a completed coordinator flow
type Receipt struct {
	Flow      string       `json:"flow"`
	AccountID string       `json:"account_id"`
	ItemID    int          `json:"item_id,omitempty"`
	Quantity  int64        `json:"quantity,omitempty"`
	Total     int64        `json:"total,omitempty"`
	Balance   int64        `json:"balance"`
	ListingID int64        `json:"listing_id,omitempty"`
	Refunded  int64        `json:"refunded,omitempty"`
	Craft     *CraftResult `json:"craft,omitempty"`
}
