package transaction

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/event"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

// offer is a purchase target resolved to what the flow needs
type offer struct {
	itemID  int
	price   int64
	listing *domain.Listing // nil for system goods
	finite  bool
}

// Purchase charges price x qty, delivers the goods, decrements the stock
// and finally pays the seller of a player listing.
func (s *service) Purchase(ctx context.Context, buyerID string, ref domain.OfferRef, qty int64) (*domain.Receipt, error) {
	var (
		receipt *domain.Receipt
		target  offer
	)
	err := s.run(ctx, domain.FlowPurchase, buyerID, func(c *components) error {
		receipt = nil
		if err := validQuantity(qty); err != nil {
			return err
		}
		if err := ref.Validate(); err != nil {
			return err
		}
		if _, err := c.activeAccount(ctx, buyerID); err != nil {
			return err
		}

		var err error
		target, err = c.resolveOffer(ctx, buyerID, ref, qty)
		if err != nil {
			return fmt.Errorf(ErrMsgOfferFailed, ref.Source, ref.ID, err)
		}
		total, err := utils.MulInt64(target.price, qty)
		if err != nil {
			return fmt.Errorf(ErrMsgTotalFmt, domain.ErrInvalidAmount, target.price, qty)
		}

		balance, err := c.ledger.Debit(ctx, buyerID, total)
		if err != nil {
			return fmt.Errorf(ErrMsgDebitFailed, err)
		}
		if _, err := c.inventory.Add(ctx, buyerID, target.itemID, int(qty)); err != nil {
			return domain.NewStepError(domain.StepAddItem, fmt.Errorf(ErrMsgAddItemFailed, err))
		}
		if err := c.decrementStock(ctx, target, qty); err != nil {
			return domain.NewStepError(domain.StepDecrementStock, fmt.Errorf(ErrMsgDecrementFailed, err))
		}
		if target.listing != nil {
			if _, err := c.ledger.Credit(ctx, target.listing.SellerID, total); err != nil {
				return domain.NewStepError(domain.StepCreditSeller,
					fmt.Errorf(ErrMsgCreditSellerFailed, target.listing.SellerID, err))
			}
		}

		receipt = &domain.Receipt{
			Flow:      domain.FlowPurchase,
			AccountID: buyerID,
			ItemID:    target.itemID,
			Quantity:  qty,
			Total:     total,
			Balance:   balance,
		}
		if target.listing != nil {
			receipt.ListingID = target.listing.ID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sellerID := ""
	if target.listing != nil {
		sellerID = target.listing.SellerID
	} else if target.finite && s.catalog != nil {
		s.catalog.InvalidateItem(ctx, target.itemID)
	}
	s.publish(ctx, event.NewPurchaseCompletedEvent(*receipt, ref.Source, sellerID))
	return receipt, nil
}

// resolveOffer checks everything that can be checked before money moves
func (c *components) resolveOffer(ctx context.Context, buyerID string, ref domain.OfferRef, qty int64) (offer, error) {
	if ref.Source == domain.OfferSourceSystem {
		item, err := c.items.GetItem(ctx, int(ref.ID))
		if err != nil {
			return offer{}, err
		}
		if !item.IsSystem {
			return offer{}, fmt.Errorf(ErrMsgNotSystemOfferFmt, domain.ErrListingNotFound, item.ID)
		}
		o := offer{itemID: item.ID, price: item.Price, finite: !item.HasUnlimitedStock()}
		if o.finite && item.Stock < qty {
			return offer{}, fmt.Errorf(ErrMsgStockShortFmt, domain.ErrInsufficientStock, qty, item.Stock)
		}
		return o, nil
	}

	listing, err := c.market.GetListing(ctx, ref.ID)
	if err != nil {
		return offer{}, err
	}
	if !listing.IsActive {
		return offer{}, domain.ErrListingInactive
	}
	if listing.SellerID == buyerID {
		return offer{}, domain.ErrOwnListing
	}
	o := offer{itemID: listing.ItemID, price: listing.Price, listing: listing, finite: !listing.IsUnlimited()}
	if o.finite && listing.Remaining < qty {
		return offer{}, fmt.Errorf(ErrMsgStockShortFmt, domain.ErrInsufficientStock, qty, listing.Remaining)
	}
	return o, nil
}

// decrementStock leaves unlimited offers untouched. A stock that ran short
// since resolveOffer reports ErrInsufficientStock.
func (c *components) decrementStock(ctx context.Context, o offer, qty int64) error {
	if !o.finite {
		return nil
	}
	var err error
	if o.listing != nil {
		_, err = c.market.DecrementStock(ctx, o.listing.ID, qty)
	} else {
		_, err = c.market.DecrementSystemStock(ctx, o.itemID, qty)
	}
	if errors.Is(err, domain.ErrInsufficientQuantity) {
		err = fmt.Errorf("%w: %w", domain.ErrInsufficientStock, err)
	}
	return err
}
