package repository

import (
	"context"
)

// Tx is the full set of operations available inside a unit of work.
// Every Store is also a Tx whose statements apply one at a time.
type Tx interface {
	Accounts
	Inventory
	Listings
	Catalog
	Roles
}

// Store is the backing store. WithTx runs fn inside a single atomic
// transaction; if fn returns an error nothing it did is kept.
// Implementations may retry fn on serialization conflicts, so fn must not
// have side effects outside the Tx.
type Store interface {
	Tx
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
}
