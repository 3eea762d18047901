package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/event"
)

// CreateListing takes the goods out of the seller's inventory before the
// listing exists.
func (s *service) CreateListing(ctx context.Context, sellerID string, itemID int, price, qty int64) (*domain.Receipt, error) {
	var (
		receipt *domain.Receipt
		created *domain.Listing
	)
	err := s.run(ctx, domain.FlowCreateListing, sellerID, func(c *components) error {
		receipt, created = nil, nil
		seller, err := c.activeAccount(ctx, sellerID)
		if err != nil {
			return err
		}
		if _, err := domain.NewPlayerListing(sellerID, itemID, price, qty); err != nil {
			return err
		}
		if _, err := c.items.GetItem(ctx, itemID); err != nil {
			return fmt.Errorf(ErrMsgItemLookupFailed, itemID, err)
		}

		if _, err := c.inventory.Remove(ctx, sellerID, itemID, int(qty)); err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				err = fmt.Errorf("%w: %w", domain.ErrInsufficientInventory, err)
			}
			return fmt.Errorf(ErrMsgRemoveItemFailed, err)
		}
		listing, err := c.market.CreateListing(ctx, sellerID, itemID, price, qty)
		if err != nil {
			return domain.NewStepError(domain.StepCreateListing, fmt.Errorf(ErrMsgCreateListingFailed, err))
		}

		created = listing
		receipt = &domain.Receipt{
			Flow:      domain.FlowCreateListing,
			AccountID: sellerID,
			ItemID:    itemID,
			Quantity:  qty,
			Balance:   seller.Balance,
			ListingID: listing.ID,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewListingEvent(event.ListingCreated, sellerID, *created))
	return receipt, nil
}

// WithdrawListing takes a listing down. A seller's own withdrawal refunds the
// remaining goods; an admin-forced one forfeits them.
func (s *service) WithdrawListing(ctx context.Context, actorID string, listingID int64, adminForced bool) (*domain.Receipt, error) {
	flow, eventType := domain.FlowWithdrawListing, event.ListingWithdrawn
	if adminForced {
		flow, eventType = domain.FlowForfeitListing, event.ListingForfeited
	}

	var (
		receipt *domain.Receipt
		closed  *domain.Listing
	)
	err := s.run(ctx, flow, actorID, func(c *components) error {
		receipt, closed = nil, nil
		actor, err := c.activeAccount(ctx, actorID)
		if err != nil {
			return err
		}
		listing, err := c.market.GetListing(ctx, listingID)
		if err != nil {
			return err
		}
		if listing.IsSystem() {
			return fmt.Errorf(ErrMsgSystemListingFmt, domain.ErrInvalidInput, listingID)
		}
		if !listing.IsActive {
			return domain.ErrListingInactive
		}
		if adminForced {
			err = c.gate.CanForfeit(ctx, actorID, listing)
		} else {
			err = c.gate.CanWithdraw(ctx, actorID, listing)
		}
		if err != nil {
			return err
		}

		refund := !adminForced
		closed, err = c.market.Deactivate(ctx, listingID, refund)
		if err != nil {
			return fmt.Errorf(ErrMsgDeactivateFailed, listingID, err)
		}

		receipt = &domain.Receipt{
			Flow:      flow,
			AccountID: actorID,
			ItemID:    closed.ItemID,
			Quantity:  closed.Remaining,
			Balance:   actor.Balance,
			ListingID: closed.ID,
		}
		if refund && closed.Remaining > 0 {
			if _, err := c.inventory.Add(ctx, closed.SellerID, closed.ItemID, int(closed.Remaining)); err != nil {
				return domain.NewStepError(domain.StepRefund,
					fmt.Errorf(ErrMsgRefundFailed, closed.Remaining, closed.ItemID, closed.SellerID, err))
			}
			receipt.Refunded = closed.Remaining
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewListingEvent(eventType, actorID, *closed))
	return receipt, nil
}
