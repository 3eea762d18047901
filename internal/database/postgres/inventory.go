package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

func (c *conn) AddQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}
	var total int
	err = c.q.QueryRow(ctx, `
		INSERT INTO inventory_entries (account_id, item_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, item_id)
		DO UPDATE SET quantity = inventory_entries.quantity + EXCLUDED.quantity
		RETURNING quantity
	`, id, itemID, qty).Scan(&total)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return 0, missingReference(err)
		}
		return 0, fmt.Errorf(ErrMsgFailedToUpdateInventory, err)
	}
	return total, nil
}

// RemoveQuantity decrements and deletes a zeroed row in one statement
func (c *conn) RemoveQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}

	var left int
	err = c.q.QueryRow(ctx, `
		WITH dec AS (
			UPDATE inventory_entries SET quantity = quantity - $3
			WHERE account_id = $1 AND item_id = $2 AND quantity > $3
			RETURNING quantity
		), del AS (
			DELETE FROM inventory_entries
			WHERE account_id = $1 AND item_id = $2 AND quantity = $3
			RETURNING 0 AS quantity
		)
		SELECT quantity FROM dec
		UNION ALL
		SELECT quantity FROM del
	`, id, itemID, qty).Scan(&left)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrInsufficientQuantity
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToUpdateInventory, err)
	}
	return left, nil
}

func (c *conn) GetQuantity(ctx context.Context, accountID string, itemID int) (int, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}
	var qty int
	err = c.q.QueryRow(ctx, `
		SELECT quantity FROM inventory_entries WHERE account_id = $1 AND item_id = $2
	`, id, itemID).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToReadInventory, err)
	}
	return qty, nil
}

func (c *conn) GetQuantities(ctx context.Context, accountID string, itemIDs []int) (map[int]int, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}
	out := make(map[int]int, len(itemIDs))
	for _, itemID := range itemIDs {
		out[itemID] = 0
	}
	ids := make([]int32, 0, len(itemIDs))
	for _, itemID := range itemIDs {
		ids = append(ids, int32(itemID))
	}

	rows, err := c.q.Query(ctx, `
		SELECT item_id, quantity FROM inventory_entries
		WHERE account_id = $1 AND item_id = ANY($2)
	`, id, ids)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToReadInventory, err)
	}
	defer rows.Close()
	for rows.Next() {
		var itemID, qty int
		if err := rows.Scan(&itemID, &qty); err != nil {
			return nil, fmt.Errorf(ErrMsgFailedToReadInventory, err)
		}
		out[itemID] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToReadInventory, err)
	}
	return out, nil
}

func (c *conn) ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error) {
	if _, err := c.GetAccount(ctx, accountID); err != nil {
		return nil, err
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}
	rows, err := c.q.Query(ctx, `
		SELECT `+itemColumnsPrefixed+`, e.quantity, e.acquired_at
		FROM inventory_entries e
		JOIN items i ON i.id = e.item_id
		WHERE e.account_id = $1
		ORDER BY i.id
	`, id)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToReadInventory, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Holding, error) {
		var h domain.Holding
		dest := append(itemDest(&h.Item), &h.Quantity, &h.AcquiredAt)
		err := row.Scan(dest...)
		return h, err
	})
}

func (c *conn) DeleteEntry(ctx context.Context, accountID string, itemID int) (int, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}
	var qty int
	err = c.q.QueryRow(ctx, `
		DELETE FROM inventory_entries WHERE account_id = $1 AND item_id = $2
		RETURNING quantity
	`, id, itemID).Scan(&qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrInsufficientQuantity
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToUpdateInventory, err)
	}
	return qty, nil
}
