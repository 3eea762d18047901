// Package inventory tracks per-account item holdings. An entry exists only
// while its quantity is positive.
package inventory

import (
	"context"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines holding operations
type Service interface {
	Add(ctx context.Context, accountID string, itemID, qty int) (int, error)
	Remove(ctx context.Context, accountID string, itemID, qty int) (int, error)
	QuantityOf(ctx context.Context, accountID string, itemID int) (int, error)
	HasAll(ctx context.Context, accountID string, requirements map[int]int) (bool, error)
	List(ctx context.Context, accountID string) ([]domain.Holding, error)
	Discard(ctx context.Context, accountID string, itemID int) (int, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates an inventory service over the given store
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

// Add returns the new held quantity
func (s *service) Add(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf(ErrMsgAddFailed, qty, itemID, domain.ErrInvalidAmount)
	}
	total, err := s.repo.AddQuantity(ctx, accountID, itemID, qty)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgAddFailed, qty, itemID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgItemsAdded, "account_id", accountID, "item_id", itemID, "qty", qty, "held", total)
	return total, nil
}

// Remove returns the quantity left; zero means the entry was deleted
func (s *service) Remove(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	if qty <= 0 {
		return 0, fmt.Errorf(ErrMsgRemoveFailed, qty, itemID, domain.ErrInvalidAmount)
	}
	left, err := s.repo.RemoveQuantity(ctx, accountID, itemID, qty)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgRemoveFailed, qty, itemID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgItemsRemoved, "account_id", accountID, "item_id", itemID, "qty", qty, "held", left)
	return left, nil
}

// QuantityOf is zero for items never held
func (s *service) QuantityOf(ctx context.Context, accountID string, itemID int) (int, error) {
	qty, err := s.repo.GetQuantity(ctx, accountID, itemID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgReadFailed, err)
	}
	return qty, nil
}

// HasAll is advisory. A later Remove can still fail and that failure wins.
func (s *service) HasAll(ctx context.Context, accountID string, requirements map[int]int) (bool, error) {
	if len(requirements) == 0 {
		return true, nil
	}
	ids := make([]int, 0, len(requirements))
	for id := range requirements {
		ids = append(ids, id)
	}
	held, err := s.repo.GetQuantities(ctx, accountID, ids)
	if err != nil {
		return false, fmt.Errorf(ErrMsgReadFailed, err)
	}
	for id, need := range requirements {
		if held[id] < need {
			return false, nil
		}
	}
	return true, nil
}

// List is the backpack view, ordered by item ID
func (s *service) List(ctx context.Context, accountID string) ([]domain.Holding, error) {
	holdings, err := s.repo.ListHoldings(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgReadFailed, err)
	}
	return holdings, nil
}

// Discard drops the whole entry and returns how many were thrown away
func (s *service) Discard(ctx context.Context, accountID string, itemID int) (int, error) {
	qty, err := s.repo.DeleteEntry(ctx, accountID, itemID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDiscardFailed, itemID, err)
	}
	logger.FromContext(ctx).Info(LogMsgItemsDiscarded, "account_id", accountID, "item_id", itemID, "qty", qty)
	return qty, nil
}
