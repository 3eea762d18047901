// Package market is the listing board: system goods sold without limit (or
// from an admin-set stock) and player listings. The board never moves goods
// or money; callers pair it with the ledger and inventory.
package market

import (
	"context"
	"fmt"
	"iter"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines listing board operations
type Service interface {
	SystemOffers(ctx context.Context) iter.Seq2[domain.Offer, error]
	PlayerOffers(ctx context.Context, filter domain.ListingFilter) ([]domain.Offer, error)
	GetListing(ctx context.Context, listingID int64) (*domain.Listing, error)
	CreateListing(ctx context.Context, sellerID string, itemID int, price, qty int64) (*domain.Listing, error)
	Deactivate(ctx context.Context, listingID int64, refundToSeller bool) (*domain.Listing, error)
	DecrementStock(ctx context.Context, listingID int64, qty int64) (*domain.Listing, error)
	DecrementSystemStock(ctx context.Context, itemID int, qty int64) (int64, error)
	RestockSystemItem(ctx context.Context, itemID int, stock int64) error
}

type service struct {
	repo     repository.Listings
	pageSize int
}

// NewService creates a listing board. pageSize bounds each system offer query.
func NewService(repo repository.Listings, pageSize int) Service {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &service{repo: repo, pageSize: pageSize}
}

// SystemOffers yields system goods one page at a time, keyed on item ID. A
// query error is yielded once and ends the sequence.
func (s *service) SystemOffers(ctx context.Context) iter.Seq2[domain.Offer, error] {
	return func(yield func(domain.Offer, error) bool) {
		after := 0
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.Offer{}, err)
				return
			}
			page, err := s.repo.ListSystemItems(ctx, after, s.pageSize)
			if err != nil {
				yield(domain.Offer{}, fmt.Errorf(ErrMsgSystemOffersFailed, after, err))
				return
			}
			for _, item := range page {
				if !yield(systemOffer(item), nil) {
					return
				}
				after = item.ID
			}
			if len(page) < s.pageSize {
				return
			}
		}
	}
}

func systemOffer(item domain.Item) domain.Offer {
	return domain.Offer{
		Source:    domain.OfferSourceSystem,
		Item:      item,
		Price:     item.Price,
		Remaining: item.Stock,
	}
}

func (s *service) PlayerOffers(ctx context.Context, filter domain.ListingFilter) ([]domain.Offer, error) {
	offers, err := s.repo.ListPlayerListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgPlayerOffersFailed, err)
	}
	return offers, nil
}

func (s *service) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	l, err := s.repo.GetListing(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetListingFailed, listingID, err)
	}
	return l, nil
}

// CreateListing rejects unlimited or non-positive quantities from players
func (s *service) CreateListing(ctx context.Context, sellerID string, itemID int, price, qty int64) (*domain.Listing, error) {
	listing, err := domain.NewPlayerListing(sellerID, itemID, price, qty)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCreateFailed, err)
	}
	if err := s.repo.InsertListing(ctx, listing); err != nil {
		return nil, fmt.Errorf(ErrMsgCreateFailed, err)
	}
	logger.FromContext(ctx).Info(LogMsgListingCreated,
		"listing_id", listing.ID, "seller_id", sellerID, "item_id", itemID, "price", price, "qty", qty)
	return listing, nil
}

// Deactivate returns the listing as it was when taken down, so the caller
// knows how much to refund. A listing taken down without refund is marked forfeited.
func (s *service) Deactivate(ctx context.Context, listingID int64, refundToSeller bool) (*domain.Listing, error) {
	l, err := s.repo.DeactivateListing(ctx, listingID, !refundToSeller)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDeactivateFailed, listingID, err)
	}
	logger.FromContext(ctx).Info(LogMsgListingDeactivated,
		"listing_id", listingID, "remaining", l.Remaining, "refund", refundToSeller)
	return l, nil
}

// DecrementStock leaves unlimited listings untouched
func (s *service) DecrementStock(ctx context.Context, listingID int64, qty int64) (*domain.Listing, error) {
	if qty <= 0 {
		return nil, fmt.Errorf(ErrMsgDecrementFailed, listingID, domain.ErrInvalidAmount)
	}
	l, err := s.repo.DecrementListing(ctx, listingID, qty)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgDecrementFailed, listingID, err)
	}
	if !l.IsActive {
		logger.FromContext(ctx).Info(LogMsgListingSoldOut, "listing_id", listingID)
	}
	return l, nil
}

// DecrementSystemStock returns UnlimitedQuantity for ordinary system goods
func (s *service) DecrementSystemStock(ctx context.Context, itemID int, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, fmt.Errorf(ErrMsgSystemStockFailed, itemID, domain.ErrInvalidAmount)
	}
	left, err := s.repo.DecrementSystemStock(ctx, itemID, qty)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgSystemStockFailed, itemID, err)
	}
	return left, nil
}

// RestockSystemItem sets a finite stock, or UnlimitedQuantity to lift the limit
func (s *service) RestockSystemItem(ctx context.Context, itemID int, stock int64) error {
	if stock < domain.UnlimitedQuantity {
		return fmt.Errorf(ErrMsgSystemStockFailed, itemID, domain.ErrInvalidAmount)
	}
	if err := s.repo.SetSystemStock(ctx, itemID, stock); err != nil {
		return fmt.Errorf(ErrMsgSystemStockFailed, itemID, err)
	}
	logger.FromContext(ctx).Info(LogMsgSystemRestocked, "item_id", itemID, "stock", stock)
	return nil
}
