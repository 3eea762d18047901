// Package memory is an in-process repository.Store used for local development
// and unit tests. WithTx snapshots the whole state and restores it when the
// callback fails, which gives the same all-or-nothing result as the postgres store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

type state struct {
	accounts      map[string]*domain.Account
	usernames     map[string]string // normalized username -> account ID
	items         map[int]*domain.Item
	itemNames     map[string]int // normalized name -> item ID
	inventory     map[string]map[int]*domain.InventoryEntry
	listings      map[int64]*domain.Listing
	recipes       map[int]*domain.Recipe
	recipeKeys    map[string]int // kind + normalized name -> recipe ID
	admins        map[string]domain.AdminGrant
	nextItemID    int
	nextListingID int64
	nextRecipeID  int
}

func newState() *state {
	return &state{
		accounts:   make(map[string]*domain.Account),
		usernames:  make(map[string]string),
		items:      make(map[int]*domain.Item),
		itemNames:  make(map[string]int),
		inventory:  make(map[string]map[int]*domain.InventoryEntry),
		listings:   make(map[int64]*domain.Listing),
		recipes:    make(map[int]*domain.Recipe),
		recipeKeys: make(map[string]int),
		admins:     make(map[string]domain.AdminGrant),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.accounts {
		a := *v
		c.accounts[k] = &a
	}
	for k, v := range s.usernames {
		c.usernames[k] = v
	}
	for k, v := range s.items {
		i := *v
		c.items[k] = &i
	}
	for k, v := range s.itemNames {
		c.itemNames[k] = v
	}
	for acct, entries := range s.inventory {
		m := make(map[int]*domain.InventoryEntry, len(entries))
		for id, e := range entries {
			ec := *e
			m[id] = &ec
		}
		c.inventory[acct] = m
	}
	for k, v := range s.listings {
		l := *v
		c.listings[k] = &l
	}
	for k, v := range s.recipes {
		c.recipes[k] = copyRecipe(v)
	}
	for k, v := range s.recipeKeys {
		c.recipeKeys[k] = v
	}
	for k, v := range s.admins {
		c.admins[k] = v
	}
	c.nextItemID = s.nextItemID
	c.nextListingID = s.nextListingID
	c.nextRecipeID = s.nextRecipeID
	return c
}

// Store is a mutex-guarded in-memory repository.Store
type Store struct {
	*view

	mu     sync.Mutex
	st     *state
	faults map[string]error
	now    func() time.Time
}

// view carries the operations. The store's own view takes the mutex on
// every call; the view handed to WithTx callbacks runs with it already held.
type view struct {
	s    *Store
	inTx bool
}

var _ repository.Store = (*Store)(nil)

// NewStore creates an empty store
func NewStore() *Store {
	s := &Store{
		st:     newState(),
		faults: make(map[string]error),
		now:    time.Now,
	}
	s.view = &view{s: s}
	return s
}

// FailNext makes the next call of the named operation return err without
// touching state. Use the Op* constants for names.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = err
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// WithTx runs fn with exclusive access to the store and rolls every change
// back if fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(tx repository.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(&view{s: s, inTx: true}); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

func (v *view) lock() func() {
	if v.inTx {
		return func() {}
	}
	v.s.mu.Lock()
	return v.s.mu.Unlock
}

// fault consumes an injected failure for op. Callers must hold the lock.
func (v *view) fault(op string) error {
	err, ok := v.s.faults[op]
	if !ok {
		return nil
	}
	delete(v.s.faults, op)
	return err
}

func (v *view) state() *state {
	return v.s.st
}

func copyRecipe(r *domain.Recipe) *domain.Recipe {
	c := *r
	c.Materials = append([]domain.Material(nil), r.Materials...)
	return &c
}
