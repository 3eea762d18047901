package crafting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/database/memory"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/ledger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

type workshop struct {
	store   *memory.Store
	account string
	ore     domain.Item
	jade    domain.Item
	sword   domain.Item
	pill    domain.Item
	forge   domain.Recipe // 3 ore -> sword, cost 100, always succeeds
	pendant domain.Recipe // 2 jade + 1 ore -> pill, cost 0
}

func newWorkshop(t *testing.T, balance int64) *workshop {
	t.Helper()
	ctx := context.Background()
	w := &workshop{store: memory.NewStore()}

	acct, err := domain.NewAccount("han_li", balance)
	require.NoError(t, err)
	require.NoError(t, w.store.CreateAccount(ctx, acct))
	w.account = acct.ID

	w.ore = domain.Item{Name: "御灵铁", Category: domain.CategoryOre, Price: 300, Stock: -1, IsSystem: true}
	w.jade = domain.Item{Name: "引灵玉", Category: domain.CategoryOre, Price: 450, Stock: -1, IsSystem: true}
	w.sword = domain.Item{Name: "灵铁剑", Category: domain.CategoryEquipment, Price: 1200, Stock: -1, AttackBonus: 15}
	w.pill = domain.Item{Name: "聚气丹", Category: domain.CategoryPill, Price: 900, Stock: -1}
	for _, it := range []*domain.Item{&w.ore, &w.jade, &w.sword, &w.pill} {
		require.NoError(t, w.store.UpsertItem(ctx, it))
	}

	w.forge = domain.Recipe{Kind: domain.RecipeKindForge, Name: "灵铁剑图纸",
		Materials: []domain.Material{{ItemID: w.ore.ID, Quantity: 3}},
		Cost:      100, OutputItemID: w.sword.ID, OutputQty: 1, SuccessRate: 1}
	w.pendant = domain.Recipe{Kind: domain.RecipeKindAlchemy, Name: "聚气丹方",
		Materials: []domain.Material{{ItemID: w.jade.ID, Quantity: 2}, {ItemID: w.ore.ID, Quantity: 1}},
		Cost:      0, OutputItemID: w.pill.ID, OutputQty: 2, SuccessRate: 0.5}
	require.NoError(t, w.store.UpsertRecipe(ctx, &w.forge))
	require.NoError(t, w.store.UpsertRecipe(ctx, &w.pendant))
	return w
}

func (w *workshop) give(t *testing.T, itemID, qty int) {
	t.Helper()
	_, err := w.store.AddQuantity(context.Background(), w.account, itemID, qty)
	require.NoError(t, err)
}

func (w *workshop) service(roll func() float64) Service {
	return NewService(
		ledger.NewService(w.store),
		inventory.NewService(w.store),
		catalog.NewService(w.store, 16, time.Minute),
		roll,
	)
}

func fixedRoll(v float64) func() float64 {
	return func() float64 { return v }
}

func (w *workshop) state(t *testing.T) (balance int64, ore, sword int) {
	t.Helper()
	ctx := context.Background()
	acct, err := w.store.GetAccount(ctx, w.account)
	require.NoError(t, err)
	held, err := w.store.GetQuantities(ctx, w.account, []int{w.ore.ID, w.sword.ID})
	require.NoError(t, err)
	return acct.Balance, held[w.ore.ID], held[w.sword.ID]
}

// CASE 1: BEST CASE - 500 stones and 3 ore become 400 stones and a sword
func TestCraft_ForgeSuccess(t *testing.T) {
	w := newWorkshop(t, 500)
	w.give(t, w.ore.ID, 3)

	result, err := w.service(nil).Craft(context.Background(), w.account, w.forge.ID)
	require.NoError(t, err)
	assert.True(t, result.Succeeded())
	assert.Equal(t, w.sword.ID, result.OutputItemID)
	assert.Equal(t, 1, result.OutputQty)
	assert.Equal(t, int64(100), result.CostPaid)
	assert.Equal(t, domain.RecipeKindForge, result.Kind)
	assert.Contains(t, result.Message, "灵铁剑")

	balance, ore, sword := w.state(t)
	assert.Equal(t, int64(400), balance)
	assert.Zero(t, ore)
	assert.Equal(t, 1, sword)
	assert.Equal(t, balance, result.Balance)

	holdings, err := w.store.ListHoldings(context.Background(), w.account)
	require.NoError(t, err)
	require.Len(t, holdings, 1, "the spent ore entry is gone")
	assert.Equal(t, w.sword.ID, holdings[0].Item.ID)
}

// CASE 2: WORST CASE - a failed roll still consumes everything
func TestCraft_FailureConsumesInputs(t *testing.T) {
	w := newWorkshop(t, 0)
	w.give(t, w.jade.ID, 2)
	w.give(t, w.ore.ID, 1)

	result, err := w.service(fixedRoll(0.51)).Craft(context.Background(), w.account, w.pendant.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.CraftFailure, result.Outcome)
	assert.Zero(t, result.OutputQty)
	assert.Contains(t, result.Message, "Pill refining failed")

	held, err := w.store.GetQuantities(context.Background(), w.account, []int{w.jade.ID, w.ore.ID, w.pill.ID})
	require.NoError(t, err)
	assert.Equal(t, map[int]int{w.jade.ID: 0, w.ore.ID: 0, w.pill.ID: 0}, held)
}

func TestCraft_ZeroCostSkipsDebit(t *testing.T) {
	w := newWorkshop(t, 0)
	w.give(t, w.jade.ID, 2)
	w.give(t, w.ore.ID, 1)
	w.store.FailNext(memory.OpDebitBalance, assert.AnError)

	result, err := w.service(fixedRoll(0.5)).Craft(context.Background(), w.account, w.pendant.ID)
	require.NoError(t, err, "roll equal to the rate succeeds and no debit is attempted")
	assert.True(t, result.Succeeded())
	assert.Equal(t, 2, result.OutputQty)
	assert.Zero(t, result.Balance, "a free recipe reports the untouched balance")
}

// payoutLedger credits the account inside Debit, standing in for a payout
// that lands between the funds check and the cost being paid
type payoutLedger struct {
	ledger.Service
	payout int64
}

func (l payoutLedger) Debit(ctx context.Context, accountID string, amount int64) (int64, error) {
	if _, err := l.Service.Credit(ctx, accountID, l.payout); err != nil {
		return 0, err
	}
	return l.Service.Debit(ctx, accountID, amount)
}

func TestCraft_BalanceComesFromTheDebit(t *testing.T) {
	w := newWorkshop(t, 500)
	w.give(t, w.ore.ID, 3)
	svc := NewService(
		payoutLedger{Service: ledger.NewService(w.store), payout: 250},
		inventory.NewService(w.store),
		catalog.NewService(w.store, 16, time.Minute),
		nil,
	)

	result, err := svc.Craft(context.Background(), w.account, w.forge.ID)
	require.NoError(t, err)

	balance, _, _ := w.state(t)
	assert.Equal(t, int64(650), balance)
	assert.Equal(t, balance, result.Balance, "the reported balance includes the payout")
}

// CASE 4: INVALID CASE
func TestCraft_Preconditions(t *testing.T) {
	ctx := context.Background()

	t.Run("missing materials leaves balance", func(t *testing.T) {
		w := newWorkshop(t, 500)
		w.give(t, w.ore.ID, 2)
		_, err := w.service(nil).Craft(ctx, w.account, w.forge.ID)
		assert.ErrorIs(t, err, domain.ErrMissingMaterials)
		balance, ore, _ := w.state(t)
		assert.Equal(t, int64(500), balance)
		assert.Equal(t, 2, ore)
	})

	t.Run("materials are checked before funds", func(t *testing.T) {
		w := newWorkshop(t, 0)
		_, err := w.service(nil).Craft(ctx, w.account, w.forge.ID)
		assert.ErrorIs(t, err, domain.ErrMissingMaterials)
		assert.NotErrorIs(t, err, domain.ErrInsufficientFunds)
	})

	t.Run("insufficient funds leaves materials", func(t *testing.T) {
		w := newWorkshop(t, 99)
		w.give(t, w.ore.ID, 3)
		_, err := w.service(nil).Craft(ctx, w.account, w.forge.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		balance, ore, sword := w.state(t)
		assert.Equal(t, int64(99), balance)
		assert.Equal(t, 3, ore)
		assert.Zero(t, sword)
	})

	t.Run("unknown recipe", func(t *testing.T) {
		w := newWorkshop(t, 0)
		_, err := w.service(nil).Craft(ctx, w.account, 404)
		assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	})

	t.Run("unknown account", func(t *testing.T) {
		w := newWorkshop(t, 0)
		_, err := w.service(nil).Craft(ctx, "nobody", w.forge.ID)
		assert.Error(t, err)
	})
}

// CASE 3: EDGE CASE - the extreme rates ignore the roll entirely
func TestCraft_ExtremeRatesOverManyTrials(t *testing.T) {
	ctx := context.Background()
	const trials = 200

	w := newWorkshop(t, 100*trials)
	w.give(t, w.ore.ID, 3*trials)
	svc := w.service(nil)
	for i := 0; i < trials; i++ {
		result, err := svc.Craft(ctx, w.account, w.forge.ID)
		require.NoError(t, err)
		require.True(t, result.Succeeded())
	}
	_, _, sword := w.state(t)
	assert.Equal(t, trials, sword)

	doomed := domain.Recipe{Kind: domain.RecipeKindForge, Name: "废铁图纸",
		Materials: []domain.Material{{ItemID: w.ore.ID, Quantity: 1}},
		OutputItemID: w.sword.ID, OutputQty: 1, SuccessRate: 0}
	require.NoError(t, w.store.UpsertRecipe(ctx, &doomed))
	w.give(t, w.ore.ID, trials)
	svc = w.service(nil)
	for i := 0; i < trials; i++ {
		result, err := svc.Craft(ctx, w.account, doomed.ID)
		require.NoError(t, err)
		require.False(t, result.Succeeded())
	}
	_, _, sword = w.state(t)
	assert.Equal(t, trials, sword, "a zero rate never grants output")
}

func TestSucceeds(t *testing.T) {
	tests := []struct {
		rate, roll float64
		want       bool
	}{
		{1, 0.999, true},
		{1.2, 0.999, true},
		{0, 0, false},
		{-0.1, 0, false},
		{0.5, 0.5, true},
		{0.5, 0.5000001, false},
		{0.3, 0.1, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Succeeds(tt.rate, tt.roll), "rate=%v roll=%v", tt.rate, tt.roll)
	}
}

func TestRecipes_CraftableFlag(t *testing.T) {
	ctx := context.Background()
	w := newWorkshop(t, 50)
	w.give(t, w.ore.ID, 3)
	w.give(t, w.jade.ID, 2)
	svc := w.service(nil)

	views, err := svc.Recipes(ctx, w.account, "")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, w.forge.ID, views[0].Recipe.ID)
	assert.False(t, views[0].Craftable, "materials held but 50 < 100 stones")
	assert.Equal(t, w.sword.Name, views[0].Output.Name)
	assert.True(t, views[1].Craftable)

	forgeOnly, err := svc.Recipes(ctx, w.account, domain.RecipeKindForge)
	require.NoError(t, err)
	assert.Len(t, forgeOnly, 1)
}

func TestCraft_InsideTransactionWithStoreRecipes(t *testing.T) {
	w := newWorkshop(t, 500)
	w.give(t, w.ore.ID, 3)
	ctx := context.Background()

	var result *domain.CraftResult
	err := w.store.WithTx(ctx, func(tx repository.Tx) error {
		svc := NewService(ledger.NewService(tx), inventory.NewService(tx), StoreRecipes(tx), nil)
		var err error
		result, err = svc.Craft(ctx, w.account, w.forge.ID)
		return err
	})
	require.NoError(t, err)
	assert.True(t, result.Succeeded())

	balance, ore, sword := w.state(t)
	assert.Equal(t, int64(400), balance)
	assert.Zero(t, ore)
	assert.Equal(t, 1, sword)
}

// CASE 2: WORST CASE - a failing grant rolls back the cost and the materials
func TestCraft_TransactionRollback(t *testing.T) {
	w := newWorkshop(t, 500)
	w.give(t, w.ore.ID, 3)
	ctx := context.Background()
	w.store.FailNext(memory.OpAddQuantity, assert.AnError)

	err := w.store.WithTx(ctx, func(tx repository.Tx) error {
		_, err := NewService(ledger.NewService(tx), inventory.NewService(tx), StoreRecipes(tx), nil).
			Craft(ctx, w.account, w.forge.ID)
		return err
	})
	require.ErrorIs(t, err, assert.AnError)
	var se *domain.StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, domain.StepGrantOutput, se.Step)

	balance, ore, sword := w.state(t)
	assert.Equal(t, int64(500), balance)
	assert.Equal(t, 3, ore)
	assert.Zero(t, sword)
}
