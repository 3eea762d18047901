package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

const listingColumns = `id, item_id, COALESCE(seller_id::text, ''), price, remaining, is_active, forfeited, created_at, deactivated_at`

func scanListing(row pgx.Row) (*domain.Listing, error) {
	var l domain.Listing
	err := row.Scan(&l.ID, &l.ItemID, &l.SellerID, &l.Price, &l.Remaining, &l.IsActive, &l.Forfeited,
		&l.CreatedAt, &l.DeactivatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// ListSystemItems pages through system goods by item ID, skipping sold-out stock
func (c *conn) ListSystemItems(ctx context.Context, afterItemID, limit int) ([]domain.Item, error) {
	rows, err := c.q.Query(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE is_system AND stock <> 0 AND id > $1
		ORDER BY id
		LIMIT $2
	`, afterItemID, limit)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryItems, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Item, error) {
		var item domain.Item
		err := row.Scan(itemDest(&item)...)
		return item, err
	})
}

func (c *conn) ListPlayerListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Offer, error) {
	var seller any
	if filter.SellerID != "" {
		id, err := parseAccountID(filter.SellerID)
		if err != nil {
			return nil, nil
		}
		seller = id
	}
	rows, err := c.q.Query(ctx, `
		SELECT l.id, l.seller_id::text, a.username, l.price, l.remaining, l.created_at, `+itemColumnsPrefixed+`
		FROM listings l
		JOIN items i ON i.id = l.item_id
		JOIN accounts a ON a.id = l.seller_id
		WHERE l.is_active
		  AND ($1::uuid IS NULL OR l.seller_id = $1)
		  AND ($2 = '' OR i.category = $2)
		  AND ($3 = 0 OR l.item_id = $3)
		ORDER BY l.id
	`, seller, filter.Category, filter.ItemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryListings, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Offer, error) {
		o := domain.Offer{Source: domain.OfferSourcePlayer}
		dest := append([]any{&o.ListingID, &o.SellerID, &o.SellerName, &o.Price, &o.Remaining, &o.CreatedAt},
			itemDest(&o.Item)...)
		err := row.Scan(dest...)
		return o, err
	})
}

func (c *conn) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	l, err := scanListing(c.q.QueryRow(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, listingID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryListings, err)
	}
	return l, nil
}

// InsertListing assigns listing.ID and CreatedAt
func (c *conn) InsertListing(ctx context.Context, listing *domain.Listing) error {
	var seller any
	if listing.SellerID != "" {
		id, err := parseAccountID(listing.SellerID)
		if err != nil {
			return err
		}
		seller = id
	}
	err := c.q.QueryRow(ctx, `
		INSERT INTO listings (item_id, seller_id, price, remaining, is_active)
		VALUES ($1, $2::uuid, $3, $4, $5)
		RETURNING id, created_at
	`, listing.ItemID, seller, listing.Price, listing.Remaining, listing.IsActive,
	).Scan(&listing.ID, &listing.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case PgErrorCodeForeignKeyViolation:
			return missingReference(err)
		case PgErrorCodeCheckViolation:
			return domain.ErrInvalidAmount
		}
		return fmt.Errorf(ErrMsgFailedToWriteListing, err)
	}
	return nil
}

// DeactivateListing flips is_active only while it is still set, and returns
// the remaining quantity at that moment.
func (c *conn) DeactivateListing(ctx context.Context, listingID int64, forfeited bool) (*domain.Listing, error) {
	l, err := scanListing(c.q.QueryRow(ctx, `
		UPDATE listings SET is_active = FALSE, forfeited = $2, deactivated_at = NOW()
		WHERE id = $1 AND is_active
		RETURNING `+listingColumns,
		listingID, forfeited))
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := c.GetListing(ctx, listingID); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrListingInactive
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToWriteListing, err)
	}
	return l, nil
}

// DecrementListing guards remaining >= qty and deactivates at zero in the
// same statement. Unlimited listings are returned unchanged.
func (c *conn) DecrementListing(ctx context.Context, listingID int64, qty int64) (*domain.Listing, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidAmount
	}
	l, err := scanListing(c.q.QueryRow(ctx, `
		UPDATE listings SET
			remaining = CASE WHEN remaining = -1 THEN -1 ELSE remaining - $2 END,
			is_active = (remaining = -1 OR remaining - $2 > 0),
			deactivated_at = CASE WHEN remaining <> -1 AND remaining - $2 = 0 THEN NOW() ELSE deactivated_at END
		WHERE id = $1 AND is_active AND (remaining = -1 OR remaining >= $2)
		RETURNING `+listingColumns,
		listingID, qty))
	if errors.Is(err, pgx.ErrNoRows) {
		current, getErr := c.GetListing(ctx, listingID)
		if getErr != nil {
			return nil, getErr
		}
		if !current.IsActive {
			return nil, domain.ErrListingInactive
		}
		return nil, domain.ErrInsufficientQuantity
	}
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToWriteListing, err)
	}
	return l, nil
}

// DecrementSystemStock returns the remaining stock, or the unlimited sentinel
func (c *conn) DecrementSystemStock(ctx context.Context, itemID int, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	var stock int64
	err := c.q.QueryRow(ctx, `
		UPDATE items SET stock = CASE WHEN stock = -1 THEN -1 ELSE stock - $2 END
		WHERE id = $1 AND is_system AND (stock = -1 OR stock >= $2)
		RETURNING stock
	`, itemID, qty).Scan(&stock)
	if errors.Is(err, pgx.ErrNoRows) {
		item, getErr := c.GetItem(ctx, itemID)
		if getErr != nil {
			return 0, getErr
		}
		if !item.IsSystem {
			return 0, domain.ErrItemNotFound
		}
		return 0, domain.ErrInsufficientQuantity
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToWriteItem, err)
	}
	return stock, nil
}

func (c *conn) SetSystemStock(ctx context.Context, itemID int, stock int64) error {
	if stock < domain.UnlimitedQuantity {
		return domain.ErrInvalidAmount
	}
	tag, err := c.q.Exec(ctx, `UPDATE items SET stock = $2 WHERE id = $1 AND is_system`, itemID, stock)
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToWriteItem, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
