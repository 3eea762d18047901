// Package user registers accounts and resolves them by id or username.
// Login and session handling live outside this service.
package user

import (
	"context"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines account registration and lookup
type Service interface {
	Register(ctx context.Context, username string) (*domain.Account, error)
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)
}

type service struct {
	repo            repository.Accounts
	startingBalance int64
}

// NewService creates the account registry. New accounts open with
// startingBalance spirit stones.
func NewService(repo repository.Accounts, startingBalance int64) Service {
	return &service{repo: repo, startingBalance: startingBalance}
}

func (s *service) Register(ctx context.Context, username string) (*domain.Account, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgRegisterCalled, "username", username)

	acct, err := domain.NewAccount(username, s.startingBalance)
	if err != nil {
		log.Info(LogMsgRegisterRejected, "username", username, "reason", domain.Reason(err))
		return nil, err
	}
	if err := s.repo.CreateAccount(ctx, acct); err != nil {
		if domain.IsBusinessError(err) {
			log.Info(LogMsgRegisterRejected, "username", username, "reason", domain.Reason(err))
		}
		return nil, fmt.Errorf(ErrMsgRegisterFailed, acct.Username, err)
	}

	log.Info(LogMsgAccountCreated, "account_id", acct.ID, "username", acct.Username)
	return acct, nil
}

func (s *service) Get(ctx context.Context, accountID string) (*domain.Account, error) {
	acct, err := s.repo.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetFailed, accountID, err)
	}
	return acct, nil
}

// GetByUsername matches usernames after NFKC folding, so full-width input
// finds the same account
func (s *service) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	acct, err := s.repo.GetAccountByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLookupFailed, username, err)
	}
	return acct, nil
}
