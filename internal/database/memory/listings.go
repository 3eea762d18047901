package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

// ListSystemItems pages through system goods by item ID, skipping sold-out stock
func (v *view) ListSystemItems(ctx context.Context, afterItemID, limit int) ([]domain.Item, error) {
	defer v.lock()()
	var out []domain.Item
	for _, item := range v.state().items {
		if !item.IsSystem || item.SoldOut() || item.ID <= afterItemID {
			continue
		}
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (v *view) ListPlayerListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Offer, error) {
	defer v.lock()()
	st := v.state()
	var out []domain.Offer
	for _, l := range st.listings {
		if !l.IsActive || l.IsSystem() {
			continue
		}
		if filter.SellerID != "" && l.SellerID != filter.SellerID {
			continue
		}
		if filter.ItemID != 0 && l.ItemID != filter.ItemID {
			continue
		}
		item := st.items[l.ItemID]
		if filter.Category != "" && item.Category != filter.Category {
			continue
		}
		offer := domain.Offer{
			Source:    domain.OfferSourcePlayer,
			ListingID: l.ID,
			Item:      *item,
			SellerID:  l.SellerID,
			Price:     l.Price,
			Remaining: l.Remaining,
			CreatedAt: l.CreatedAt,
		}
		if seller, ok := st.accounts[l.SellerID]; ok {
			offer.SellerName = seller.Username
		}
		out = append(out, offer)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ListingID < out[j].ListingID })
	return out, nil
}

func (v *view) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	defer v.lock()()
	l, ok := v.state().listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	cp := *l
	return &cp, nil
}

// InsertListing assigns listing.ID and CreatedAt
func (v *view) InsertListing(ctx context.Context, listing *domain.Listing) error {
	defer v.lock()()
	if err := v.fault(OpInsertListing); err != nil {
		return err
	}
	st := v.state()
	if _, ok := st.items[listing.ItemID]; !ok {
		return domain.ErrItemNotFound
	}
	if listing.SellerID != "" {
		if _, ok := st.accounts[listing.SellerID]; !ok {
			return domain.ErrAccountNotFound
		}
	}
	if listing.Price <= 0 || listing.Remaining < domain.UnlimitedQuantity {
		return domain.ErrInvalidAmount
	}
	if listing.Remaining == 0 && listing.IsActive {
		return fmt.Errorf("%w: active listing with nothing remaining", domain.ErrInvalidAmount)
	}

	st.nextListingID++
	listing.ID = st.nextListingID
	listing.CreatedAt = v.s.now()
	cp := *listing
	st.listings[listing.ID] = &cp
	return nil
}

// DeactivateListing keeps Remaining so the caller can refund it
func (v *view) DeactivateListing(ctx context.Context, listingID int64, forfeited bool) (*domain.Listing, error) {
	defer v.lock()()
	if err := v.fault(OpDeactivateListing); err != nil {
		return nil, err
	}
	l, ok := v.state().listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	if !l.IsActive {
		return nil, domain.ErrListingInactive
	}
	now := v.s.now()
	l.IsActive = false
	l.Forfeited = forfeited
	l.DeactivatedAt = &now
	cp := *l
	return &cp, nil
}

// DecrementListing leaves unlimited listings untouched and deactivates a
// finite one when it reaches zero.
func (v *view) DecrementListing(ctx context.Context, listingID int64, qty int64) (*domain.Listing, error) {
	defer v.lock()()
	if err := v.fault(OpDecrementListing); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	l, ok := v.state().listings[listingID]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	if !l.IsActive {
		return nil, domain.ErrListingInactive
	}
	if !l.IsUnlimited() {
		if l.Remaining < qty {
			return nil, domain.ErrInsufficientQuantity
		}
		l.Remaining -= qty
		if l.Remaining == 0 {
			now := v.s.now()
			l.IsActive = false
			l.DeactivatedAt = &now
		}
	}
	cp := *l
	return &cp, nil
}

// DecrementSystemStock returns the remaining stock, or the unlimited sentinel
func (v *view) DecrementSystemStock(ctx context.Context, itemID int, qty int64) (int64, error) {
	defer v.lock()()
	if err := v.fault(OpDecrementSystemStock); err != nil {
		return 0, err
	}
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	item, ok := v.state().items[itemID]
	if !ok || !item.IsSystem {
		return 0, domain.ErrItemNotFound
	}
	if item.HasUnlimitedStock() {
		return domain.UnlimitedQuantity, nil
	}
	if item.Stock < qty {
		return 0, domain.ErrInsufficientQuantity
	}
	item.Stock -= qty
	return item.Stock, nil
}

func (v *view) SetSystemStock(ctx context.Context, itemID int, stock int64) error {
	defer v.lock()()
	if err := v.fault(OpSetSystemStock); err != nil {
		return err
	}
	if stock < domain.UnlimitedQuantity {
		return fmt.Errorf(ErrMsgNegativeStockFmt, stock, domain.ErrInvalidAmount)
	}
	item, ok := v.state().items[itemID]
	if !ok || !item.IsSystem {
		return domain.ErrItemNotFound
	}
	item.Stock = stock
	return nil
}
