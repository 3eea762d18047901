package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

func (c *conn) IsAdmin(ctx context.Context, accountID string) (bool, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return false, nil
	}
	var ok bool
	if err := c.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM admins WHERE account_id = $1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf(ErrMsgFailedToQueryAdmins, err)
	}
	return ok, nil
}

// GrantAdmin is idempotent
func (c *conn) GrantAdmin(ctx context.Context, accountID, grantedBy string) error {
	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}
	_, err = c.q.Exec(ctx, `
		INSERT INTO admins (account_id, granted_by) VALUES ($1, $2)
		ON CONFLICT (account_id) DO NOTHING
	`, id, grantedBy)
	if err != nil {
		if pgErrorCode(err) == PgErrorCodeForeignKeyViolation {
			return domain.ErrAccountNotFound
		}
		return fmt.Errorf(ErrMsgFailedToWriteAdmin, err)
	}
	return nil
}

func (c *conn) RevokeAdmin(ctx context.Context, accountID string) error {
	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}
	if _, err := c.q.Exec(ctx, `DELETE FROM admins WHERE account_id = $1`, id); err != nil {
		return fmt.Errorf(ErrMsgFailedToWriteAdmin, err)
	}
	return nil
}

// ListAdmins returns grants oldest first
func (c *conn) ListAdmins(ctx context.Context) ([]domain.AdminGrant, error) {
	rows, err := c.q.Query(ctx, `
		SELECT ad.account_id::text, a.username, ad.granted_by, ad.created_at
		FROM admins ad
		JOIN accounts a ON a.id = ad.account_id
		ORDER BY ad.created_at, ad.account_id
	`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToQueryAdmins, err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.AdminGrant, error) {
		var g domain.AdminGrant
		err := row.Scan(&g.AccountID, &g.Username, &g.GrantedBy, &g.CreatedAt)
		return g, err
	})
}
