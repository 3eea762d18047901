package transaction

import (
	"context"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/event"
)

// Craft runs one crafting attempt. A failed roll is a successful flow.
func (s *service) Craft(ctx context.Context, accountID string, recipeID int) (*domain.Receipt, error) {
	var receipt *domain.Receipt
	err := s.run(ctx, domain.FlowCraft, accountID, func(c *components) error {
		receipt = nil
		if _, err := c.activeAccount(ctx, accountID); err != nil {
			return err
		}
		result, err := c.crafting.Craft(ctx, accountID, recipeID)
		if err != nil {
			return fmt.Errorf(ErrMsgCraftFailed, recipeID, err)
		}
		receipt = &domain.Receipt{
			Flow:      domain.FlowCraft,
			AccountID: accountID,
			ItemID:    result.OutputItemID,
			Quantity:  int64(result.OutputQty),
			Total:     result.CostPaid,
			Balance:   result.Balance,
			Craft:     result,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, event.NewCraftCompletedEvent(accountID, *receipt.Craft))
	return receipt, nil
}

// Restock sets a system item's stock; UnlimitedQuantity lifts the limit
func (s *service) Restock(ctx context.Context, actorID string, itemID int, stock int64) error {
	err := s.run(ctx, domain.FlowRestock, actorID, func(c *components) error {
		if err := c.gate.CanRestock(ctx, actorID); err != nil {
			return err
		}
		item, err := c.items.GetItem(ctx, itemID)
		if err != nil {
			return fmt.Errorf(ErrMsgItemLookupFailed, itemID, err)
		}
		if !item.IsSystem {
			return fmt.Errorf(ErrMsgNotSystemOfferFmt, domain.ErrInvalidInput, itemID)
		}
		if err := c.market.RestockSystemItem(ctx, itemID, stock); err != nil {
			return fmt.Errorf(ErrMsgRestockFailed, itemID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.catalog != nil {
		s.catalog.InvalidateItem(ctx, itemID)
	}
	s.publish(ctx, event.NewSystemRestockedEvent(actorID, itemID, stock))
	return nil
}
