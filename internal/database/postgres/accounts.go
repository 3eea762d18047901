package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

const accountColumns = `id::text, username, balance, realm, realm_level, is_banned, created_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	if err := row.Scan(&a.ID, &a.Username, &a.Balance, &a.Realm, &a.RealmLevel, &a.IsBanned, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf(ErrMsgFailedToGetAccount, err)
	}
	return &a, nil
}

func (c *conn) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	id, err := parseAccountID(accountID)
	if err != nil {
		return nil, err
	}
	return scanAccount(c.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

func (c *conn) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return scanAccount(c.q.QueryRow(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username_key = $1`, utils.NormalizeName(username)))
}

// CreateAccount lets the database assign the ID unless account.ID is set
func (c *conn) CreateAccount(ctx context.Context, account *domain.Account) error {
	var idArg any
	if account.ID != "" {
		id, err := parseAccountID(account.ID)
		if err != nil {
			return err
		}
		idArg = id
	}
	err := c.q.QueryRow(ctx, `
		INSERT INTO accounts (id, username, username_key, balance, realm, realm_level, is_banned)
		VALUES (COALESCE($1::uuid, gen_random_uuid()), $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at
	`, idArg, account.Username, utils.NormalizeName(account.Username), account.Balance,
		account.Realm, account.RealmLevel, account.IsBanned,
	).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		switch pgErrorCode(err) {
		case PgErrorCodeUniqueViolation:
			return fmt.Errorf("username %q is already taken: %w", account.Username, domain.ErrInvalidInput)
		case PgErrorCodeCheckViolation:
			return domain.ErrInvalidAmount
		}
		return fmt.Errorf(ErrMsgFailedToCreateAccount, err)
	}
	return nil
}

// DebitBalance is a single guarded update. A miss is resolved into
// not-found or insufficient funds afterwards.
func (c *conn) DebitBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}
	var balance int64
	err = c.q.QueryRow(ctx, `
		UPDATE accounts SET balance = balance - $2
		WHERE id = $1 AND balance >= $2
		RETURNING balance
	`, id, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := c.GetAccount(ctx, accountID); getErr != nil {
			return 0, getErr
		}
		return 0, domain.ErrInsufficientFunds
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToUpdateBalance, err)
	}
	return balance, nil
}

func (c *conn) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	id, err := parseAccountID(accountID)
	if err != nil {
		return 0, err
	}
	var balance int64
	err = c.q.QueryRow(ctx, `
		UPDATE accounts SET balance = balance + $2
		WHERE id = $1
		RETURNING balance
	`, id, amount).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf(ErrMsgFailedToUpdateBalance, err)
	}
	return balance, nil
}

func (c *conn) SetBanned(ctx context.Context, accountID string, banned bool) error {
	id, err := parseAccountID(accountID)
	if err != nil {
		return err
	}
	tag, err := c.q.Exec(ctx, `UPDATE accounts SET is_banned = $2 WHERE id = $1`, id, banned)
	if err != nil {
		return fmt.Errorf(ErrMsgFailedToGetAccount, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}
