package postgres

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/eventlog"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

func TestAccounts_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := seedAccount(t, s, "Lin Feng", 500)
	require.NotEmpty(t, acct.ID)

	byName, err := s.GetAccountByUsername(ctx, "lin feng")
	require.NoError(t, err)
	assert.Equal(t, acct.ID, byName.ID)

	bal, err := s.DebitBalance(ctx, acct.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(300), bal)

	_, err = s.DebitBalance(ctx, acct.ID, 301)
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = s.DebitBalance(ctx, "00000000-0000-0000-0000-000000000000", 1)
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	_, err = s.GetAccount(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	bal, err = s.CreditBalance(ctx, acct.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(350), bal)

	dup, err := domain.NewAccount("LIN FENG", 0)
	require.NoError(t, err)
	assert.ErrorIs(t, s.CreateAccount(ctx, dup), domain.ErrInvalidInput)
}

func TestInventory_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := seedAccount(t, s, "herbalist", 0)
	herb := seedItem(t, s, "Spirit Herb", 20)

	n, err := s.AddQuantity(ctx, acct.ID, herb.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	n, err = s.AddQuantity(ctx, acct.ID, herb.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	_, err = s.AddQuantity(ctx, acct.ID, 9999, 1)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = s.RemoveQuantity(ctx, acct.ID, herb.ID, 6)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	left, err := s.RemoveQuantity(ctx, acct.ID, herb.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, left)

	left, err = s.RemoveQuantity(ctx, acct.ID, herb.ID, 3)
	require.NoError(t, err)
	assert.Zero(t, left)

	var rows int
	require.NoError(t, testPool.QueryRow(ctx, `SELECT count(*) FROM inventory_entries`).Scan(&rows))
	assert.Zero(t, rows, "a zeroed entry must be deleted")

	qty, err := s.GetQuantity(ctx, acct.ID, herb.ID)
	require.NoError(t, err)
	assert.Zero(t, qty)

	quantities, err := s.GetQuantities(ctx, acct.ID, []int{herb.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{herb.ID: 0}, quantities)
}

func TestListings_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := seedAccount(t, s, "seller", 0)
	ore := seedItem(t, s, "Iron Ore", 10)

	listing, err := domain.NewPlayerListing(seller.ID, ore.ID, 30, 2)
	require.NoError(t, err)
	require.NoError(t, s.InsertListing(ctx, listing))
	require.NotZero(t, listing.ID)

	offers, err := s.ListPlayerListings(ctx, domain.ListingFilter{SellerID: seller.ID})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "seller", offers[0].SellerName)
	assert.Equal(t, "Iron Ore", offers[0].Item.Name)

	l, err := s.DecrementListing(ctx, listing.ID, 2)
	require.NoError(t, err)
	assert.Zero(t, l.Remaining)
	assert.False(t, l.IsActive)

	_, err = s.DecrementListing(ctx, listing.ID, 1)
	assert.ErrorIs(t, err, domain.ErrListingInactive)

	_, err = s.DeactivateListing(ctx, listing.ID, false)
	assert.ErrorIs(t, err, domain.ErrListingInactive)

	_, err = s.DeactivateListing(ctx, 424242, false)
	assert.ErrorIs(t, err, domain.ErrListingNotFound)

	// The store itself refuses an active finite listing with nothing left
	_, err = testPool.Exec(ctx, `UPDATE listings SET is_active = TRUE WHERE id = $1`, listing.ID)
	assert.Error(t, err)
}

func TestSystemStock_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	pill := seedItem(t, s, "Qi Gathering Pill", 80)

	left, err := s.DecrementSystemStock(ctx, pill.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.UnlimitedQuantity, left)

	require.NoError(t, s.SetSystemStock(ctx, pill.ID, 1))
	left, err = s.DecrementSystemStock(ctx, pill.ID, 1)
	require.NoError(t, err)
	assert.Zero(t, left)

	_, err = s.DecrementSystemStock(ctx, pill.ID, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)

	page, err := s.ListSystemItems(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestRecipes_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	ore := seedItem(t, s, "Iron Ore", 10)
	sword := seedItem(t, s, "Iron Sword", 300)

	recipe := &domain.Recipe{
		Kind:         domain.RecipeKindForge,
		Name:         "Iron Sword Blueprint",
		Materials:    []domain.Material{{ItemID: ore.ID, Quantity: 3}},
		Cost:         100,
		OutputItemID: sword.ID,
		OutputQty:    1,
		SuccessRate:  0.75,
	}
	require.NoError(t, s.UpsertRecipe(ctx, recipe))

	got, err := s.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.Materials, got.Materials)
	assert.InDelta(t, 0.75, got.SuccessRate, 1e-9)

	_, err = s.GetRecipe(ctx, recipe.ID+100)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	all, err := s.ListRecipes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestWithTx_RollsBack_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := seedAccount(t, s, "buyer", 100)
	ore := seedItem(t, s, "Iron Ore", 10)
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx repository.Tx) error {
		if _, err := tx.DebitBalance(ctx, acct.ID, 40); err != nil {
			return err
		}
		if _, err := tx.AddQuantity(ctx, acct.ID, ore.ID, 4); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.GetAccount(ctx, acct.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), got.Balance)
	qty, err := s.GetQuantity(ctx, acct.ID, ore.ID)
	require.NoError(t, err)
	assert.Zero(t, qty)
}

// Concurrent purchases of the last unit: exactly one wins, balances stay consistent
func TestWithTx_ConcurrentConflicts_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seller := seedAccount(t, s, "seller", 0)
	ore := seedItem(t, s, "Iron Ore", 10)

	listing, err := domain.NewPlayerListing(seller.ID, ore.ID, 10, 1)
	require.NoError(t, err)
	require.NoError(t, s.InsertListing(ctx, listing))

	const buyers = 5
	ids := make([]string, buyers)
	for i := range ids {
		ids[i] = seedAccount(t, s, "buyer"+string(rune('a'+i)), 10).ID
	}

	var retries atomic.Int32
	s.OnRetry = func() { retries.Add(1) }

	var wg sync.WaitGroup
	var wins atomic.Int32
	for _, id := range ids {
		wg.Add(1)
		go func(buyerID string) {
			defer wg.Done()
			err := s.WithTx(ctx, func(tx repository.Tx) error {
				if _, err := tx.DebitBalance(ctx, buyerID, 10); err != nil {
					return err
				}
				if _, err := tx.AddQuantity(ctx, buyerID, ore.ID, 1); err != nil {
					return err
				}
				_, err := tx.DecrementListing(ctx, listing.ID, 1)
				return err
			})
			if err == nil {
				wins.Add(1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())

	var total int64
	require.NoError(t, testPool.QueryRow(ctx, `SELECT sum(balance) FROM accounts`).Scan(&total))
	assert.Equal(t, int64(buyers*10-10), total)
	t.Logf("serialization retries: %d", retries.Load())
}

func TestAdmins_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := seedAccount(t, s, "elder", 0)

	require.NoError(t, s.GrantAdmin(ctx, acct.ID, "root"))
	require.NoError(t, s.GrantAdmin(ctx, acct.ID, "root"))

	ok, err := s.IsAdmin(ctx, acct.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	admins, err := s.ListAdmins(ctx)
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "elder", admins[0].Username)

	require.NoError(t, s.RevokeAdmin(ctx, acct.ID))
	ok, err = s.IsAdmin(ctx, acct.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEventLog_Integration(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	acct := seedAccount(t, s, "scribe", 0)
	log := NewEventLogRepository(testPool)

	require.NoError(t, log.LogEvent(ctx, "purchase.completed", &acct.ID,
		map[string]interface{}{"buyer_id": acct.ID, "total": 30}, nil))
	require.NoError(t, log.LogEvent(ctx, "craft.completed", &acct.ID,
		map[string]interface{}{"account_id": acct.ID}, map[string]interface{}{"source": "test"}))

	// CASE 3: EDGE CASE - an id that is not a uuid is stored without an account
	junk := "nobody"
	require.NoError(t, log.LogEvent(ctx, "flow.failed", &junk, map[string]interface{}{}, nil))

	events, err := log.GetEvents(ctx, eventlog.EventFilter{AccountID: acct.ID})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "craft.completed", events[0].EventType)
	assert.Equal(t, "test", events[0].Metadata["source"])
	assert.EqualValues(t, 30, events[1].Payload["total"])

	events, err = log.GetEvents(ctx, eventlog.EventFilter{EventType: "flow.failed", Limit: 5})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Nil(t, events[0].AccountID)

	// CASE 4: INVALID CASE - a malformed account filter matches nothing
	events, err = log.GetEvents(ctx, eventlog.EventFilter{AccountID: "not-a-uuid"})
	require.NoError(t, err)
	assert.Empty(t, events)

	removed, err := log.CleanupOldEvents(ctx, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
}
