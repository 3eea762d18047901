package memory

import (
	"context"
	"sort"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

func (v *view) AddQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	defer v.lock()()
	if err := v.fault(OpAddQuantity); err != nil {
		return 0, err
	}
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	st := v.state()
	if _, ok := st.accounts[accountID]; !ok {
		return 0, domain.ErrAccountNotFound
	}
	if _, ok := st.items[itemID]; !ok {
		return 0, domain.ErrItemNotFound
	}

	entries, ok := st.inventory[accountID]
	if !ok {
		entries = make(map[int]*domain.InventoryEntry)
		st.inventory[accountID] = entries
	}
	e, ok := entries[itemID]
	if !ok {
		entry, err := domain.NewInventoryEntry(accountID, itemID, qty)
		if err != nil {
			return 0, err
		}
		entry.AcquiredAt = v.s.now()
		entries[itemID] = &entry
		return qty, nil
	}
	e.Quantity += qty
	return e.Quantity, nil
}

// RemoveQuantity deletes the entry when it reaches zero
func (v *view) RemoveQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	defer v.lock()()
	if err := v.fault(OpRemoveQuantity); err != nil {
		return 0, err
	}
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	entries := v.state().inventory[accountID]
	e, ok := entries[itemID]
	if !ok || e.Quantity < qty {
		return 0, domain.ErrInsufficientQuantity
	}
	e.Quantity -= qty
	if e.Quantity == 0 {
		delete(entries, itemID)
		return 0, nil
	}
	return e.Quantity, nil
}

func (v *view) GetQuantity(ctx context.Context, accountID string, itemID int) (int, error) {
	defer v.lock()()
	if e, ok := v.state().inventory[accountID][itemID]; ok {
		return e.Quantity, nil
	}
	return 0, nil
}

func (v *view) GetQuantities(ctx context.Context, accountID string, itemIDs []int) (map[int]int, error) {
	defer v.lock()()
	out := make(map[int]int, len(itemIDs))
	entries := v.state().inventory[accountID]
	for _, id := range itemIDs {
		if e, ok := entries[id]; ok {
			out[id] = e.Quantity
		} else {
			out[id] = 0
		}
	}
	return out, nil
}

// ListHoldings returns holdings ordered by item ID
func (v *view) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	defer v.lock()()
	st := v.state()
	if _, ok := st.accounts[accountID]; !ok {
		return nil, domain.ErrAccountNotFound
	}
	holdings := make([]domain.Holding, 0, len(st.inventory[accountID]))
	for id, e := range st.inventory[accountID] {
		item := st.items[id]
		holdings = append(holdings, domain.Holding{Item: *item, Quantity: e.Quantity, AcquiredAt: e.AcquiredAt})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Item.ID < holdings[j].Item.ID })
	return holdings, nil
}

func (v *view) DeleteEntry(ctx context.Context, accountID string, itemID int) (int, error) {
	defer v.lock()()
	if err := v.fault(OpDeleteEntry); err != nil {
		return 0, err
	}
	entries := v.state().inventory[accountID]
	e, ok := entries[itemID]
	if !ok {
		return 0, domain.ErrInsufficientQuantity
	}
	delete(entries, itemID)
	return e.Quantity, nil
}
