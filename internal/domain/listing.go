package domain

import (
	"fmt"
	"time"
)

// OfferSource distinguishes system goods from player listings
type OfferSource string

// Listing is a marketplace row. SellerID is empty for system-owned listings.
// A finite listing with zero remaining is never active.
type Listing struct {
	ID            int64      `json:"listing_id"`
	ItemID        int        `json:"item_id"`
	SellerID      string     `json:"seller_id,omitempty"`
	Price         int64      `json:"price"`
	Remaining     int64      `json:"remaining"`
	IsActive      bool       `json:"is_active"`
	Forfeited     bool       `json:"forfeited,omitempty"`
	CreatedAt     time.Time  `json:"created_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
}

// NewPlayerListing validates price and quantity for a player-supplied offer.
// Players can never list an unlimited quantity.
func NewPlayerListing(sellerID string, itemID int, price, quantity int64) (*Listing, error) {
	if sellerID == "" {
		return nil, fmt.Errorf("%w: seller is required", ErrInvalidInput)
	}
	if price <= 0 {
		return nil, fmt.Errorf("%w: price %d", ErrInvalidAmount, price)
	}
	if quantity <= 0 || quantity > MaxTradeQuantity {
		return nil, fmt.Errorf("%w: quantity %d", ErrInvalidAmount, quantity)
	}
	return &Listing{
		ItemID:    itemID,
		SellerID:  sellerID,
		Price:     price,
		Remaining: quantity,
		IsActive:  true,
	}, nil
}

// IsSystem reports whether the listing has no owning account
func (l Listing) IsSystem() bool {
	return l.SellerID == ""
}

// IsUnlimited reports whether the listing uses the unlimited sentinel
func (l Listing) IsUnlimited() bool {
	return l.Remaining == UnlimitedQuantity
}

// Offer is what a buyer sees: either a system item or an active player listing,
// joined with the item definition.
type Offer struct {
	Source     OfferSource `json:"source"`
	ListingID  int64       `json:"listing_id,omitempty"`
	Item       Item        `json:"item"`
	SellerID   string      `json:"seller_id,omitempty"`
	SellerName string      `json:"seller_name,omitempty"`
	Price      int64       `json:"price"`
	Remaining  int64       `json:"remaining"`
	CreatedAt  time.Time   `json:"created_at,omitempty"`
}

// Ref returns the reference a buyer passes back to purchase this offer
func (o Offer) Ref() OfferRef {
	if o.Source == OfferSourcePlayer {
		return OfferRef{Source: OfferSourcePlayer, ID: o.ListingID}
	}
	return OfferRef{Source: OfferSourceSystem, ID: int64(o.Item.ID)}
}

// OfferRef points at a purchasable offer. For system offers ID is the item ID,
// for player offers it is the listing ID.
type OfferRef struct {
	Source OfferSource `json:"source"`
	ID     int64       `json:"id"`
}

// Validate checks the reference shape
func (r OfferRef) Validate() error {
	if r.Source != OfferSourceSystem && r.Source != OfferSourcePlayer {
		return fmt.Errorf("%w: offer source %q", ErrInvalidInput, r.Source)
	}
	if r.ID <= 0 {
		return fmt.Errorf("%w: offer id %d", ErrInvalidInput, r.ID)
	}
	return nil
}

// ListingFilter narrows the player offer query. Zero values match everything.
type ListingFilter struct {
	SellerID string
	Category string
	ItemID   int
}
