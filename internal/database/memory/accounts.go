package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

func (v *view) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	defer v.lock()()
	if err := v.fault(OpGetAccount); err != nil {
		return nil, err
	}
	a, ok := v.state().accounts[accountID]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (v *view) GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error) {
	defer v.lock()()
	id, ok := v.state().usernames[utils.NormalizeName(username)]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	cp := *v.state().accounts[id]
	return &cp, nil
}

// CreateAccount assigns a fresh UUID when account.ID is empty
func (v *view) CreateAccount(ctx context.Context, account *domain.Account) error {
	defer v.lock()()
	if err := v.fault(OpCreateAccount); err != nil {
		return err
	}
	st := v.state()
	key := utils.NormalizeName(account.Username)
	if _, taken := st.usernames[key]; taken {
		return fmt.Errorf(ErrMsgUsernameTakenFmt, account.Username, domain.ErrInvalidInput)
	}
	if account.Balance < 0 {
		return domain.ErrInvalidAmount
	}
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if _, exists := st.accounts[account.ID]; exists {
		return fmt.Errorf("%w: account %s already exists", domain.ErrInvalidInput, account.ID)
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = v.s.now()
	}
	cp := *account
	st.accounts[account.ID] = &cp
	st.usernames[key] = account.ID
	return nil
}

func (v *view) DebitBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	defer v.lock()()
	if err := v.fault(OpDebitBalance); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	a, ok := v.state().accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if a.Balance < amount {
		return 0, domain.ErrInsufficientFunds
	}
	a.Balance -= amount
	return a.Balance, nil
}

func (v *view) CreditBalance(ctx context.Context, accountID string, amount int64) (int64, error) {
	defer v.lock()()
	if err := v.fault(OpCreditBalance); err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	a, ok := v.state().accounts[accountID]
	if !ok {
		return 0, domain.ErrAccountNotFound
	}
	if a.Balance > maxInt64-amount {
		return 0, fmt.Errorf("%w: balance overflow", domain.ErrInvalidAmount)
	}
	a.Balance += amount
	return a.Balance, nil
}

func (v *view) SetBanned(ctx context.Context, accountID string, banned bool) error {
	defer v.lock()()
	if err := v.fault(OpSetBanned); err != nil {
		return err
	}
	a, ok := v.state().accounts[accountID]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.IsBanned = banned
	return nil
}
