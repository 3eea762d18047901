package domain

import (
	"fmt"
	"strings"
	"time"
)

// Account is a player's persistent identity. Balance is in spirit stones.
type Account struct {
	ID         string    `json:"account_id"`
	Username   string    `json:"username"`
	Balance    int64     `json:"balance"`
	Realm      string    `json:"realm"`
	RealmLevel int       `json:"realm_level"`
	IsBanned   bool      `json:"is_banned"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}

// NewAccount builds an account with a validated username and opening balance.
// The ID is assigned by the store.
func NewAccount(username string, balance int64) (*Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if balance < 0 {
		return nil, fmt.Errorf("%w: opening balance %d", ErrInvalidAmount, balance)
	}
	return &Account{
		Username:   username,
		Balance:    balance,
		Realm:      DefaultRealm,
		RealmLevel: 1,
	}, nil
}

// AdminGrant is a delegated-admin role record
type AdminGrant struct {
	AccountID string    `json:"account_id"`
	Username  string    `json:"username,omitempty"`
	GrantedBy string    `json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`
}

// Role is the privilege tier of an actor
type Role int

const (
	RolePlayer Role = iota
	RoleAdmin
	RoleSuperAdmin
)

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return "super_admin"
	case RoleAdmin:
		return "admin"
	default:
		return "player"
	}
}
