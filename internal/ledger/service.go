// Package ledger owns account balances in spirit stones. Every change is one
// indivisible guarded update; a balance is never written below zero.
package ledger

import (
	"context"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines balance operations
type Service interface {
	Debit(ctx context.Context, accountID string, amount int64) (int64, error)
	Credit(ctx context.Context, accountID string, amount int64) (int64, error)
	Balance(ctx context.Context, accountID string) (int64, error)
}

type service struct {
	repo repository.Accounts
}

// NewService creates a ledger over the given accounts store. Pass a
// repository.Tx to make the operations part of a larger unit of work.
func NewService(repo repository.Accounts) Service {
	return &service{repo: repo}
}

// Debit fails with ErrInsufficientFunds rather than going negative
func (s *service) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgDebitFailed, amount, accountID, domain.ErrInvalidAmount)
	}
	balance, err := s.repo.DebitBalance(ctx, accountID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgDebitFailed, amount, accountID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgDebited, "account_id", accountID, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) Credit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(ErrMsgCreditFailed, amount, accountID, domain.ErrInvalidAmount)
	}
	balance, err := s.repo.CreditBalance(ctx, accountID, amount)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgCreditFailed, amount, accountID, err)
	}
	logger.FromContext(ctx).Debug(LogMsgCredited, "account_id", accountID, "amount", amount, "balance", balance)
	return balance, nil
}

func (s *service) Balance(ctx context.Context, accountID string) (int64, error) {
	account, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBalanceFailed, accountID, err)
	}
	return account.Balance, nil
}
