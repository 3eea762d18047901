package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReason(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
		business bool
	}{
		{"nil", nil, "", false},
		{"insufficient funds", ErrInsufficientFunds, ReasonInsufficientFunds, true},
		{"wrapped funds", fmt.Errorf("debit account: %w", ErrInsufficientFunds), ReasonInsufficientFunds, true},
		{"inventory wins over quantity", fmt.Errorf("%w: %w", ErrInsufficientInventory, ErrInsufficientQuantity), ReasonInsufficientInventory, true},
		{"listing inactive", ErrListingInactive, ReasonListingInactive, true},
		{"tx conflict is not business", ErrTxConflict, ReasonTxConflict, false},
		{"storage failure", errors.New("connection refused"), ReasonInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Reason(tt.err))
			assert.Equal(t, tt.business, IsBusinessError(tt.err))
		})
	}
}

func TestNewPlayerListing(t *testing.T) {
	// CASE 1: BEST CASE
	l, err := NewPlayerListing("seller", 3, 20, 5)
	require.NoError(t, err)
	assert.True(t, l.IsActive)
	assert.Equal(t, int64(5), l.Remaining)
	assert.False(t, l.IsSystem())

	// CASE 4: INVALID CASE - players never list unlimited stock
	_, err = NewPlayerListing("seller", 3, 20, UnlimitedQuantity)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPlayerListing("seller", 3, 0, 5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = NewPlayerListing("", 3, 20, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewInventoryEntry(t *testing.T) {
	_, err := NewInventoryEntry("a", 1, 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	e, err := NewInventoryEntry("a", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Quantity)
}

func TestNewAccount(t *testing.T) {
	_, err := NewAccount("  ", 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewAccount("lin", -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	acct, err := NewAccount(" lin ", 500)
	require.NoError(t, err)
	assert.Equal(t, "lin", acct.Username)
	assert.Equal(t, DefaultRealm, acct.Realm)
}

func TestRecipe_ValidateAndRequirements(t *testing.T) {
	r := Recipe{
		Kind:         RecipeKindForge,
		Name:         "Iron Sword",
		Materials:    []Material{{ItemID: 1, Quantity: 2}, {ItemID: 1, Quantity: 1}},
		Cost:         100,
		OutputItemID: 9,
		OutputQty:    1,
		SuccessRate:  1,
	}
	require.NoError(t, r.Validate())
	assert.Equal(t, map[int]int{1: 3}, r.Requirements())

	r.SuccessRate = 1.5
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)

	r.SuccessRate = 0.5
	r.Kind = "smithing"
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)

	r.Kind = RecipeKindAlchemy
	r.Materials = nil
	assert.ErrorIs(t, r.Validate(), ErrInvalidInput)
}

func TestOfferRef(t *testing.T) {
	o := Offer{Source: OfferSourceSystem, Item: Item{ID: 4}}
	assert.Equal(t, OfferRef{Source: OfferSourceSystem, ID: 4}, o.Ref())

	o = Offer{Source: OfferSourcePlayer, ListingID: 12, Item: Item{ID: 4}}
	assert.Equal(t, OfferRef{Source: OfferSourcePlayer, ID: 12}, o.Ref())

	assert.ErrorIs(t, OfferRef{Source: "auction", ID: 1}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, OfferRef{Source: OfferSourcePlayer}.Validate(), ErrInvalidInput)
}

func TestStepError(t *testing.T) {
	assert.NoError(t, NewStepError(StepAddItem, nil))

	err := fmt.Errorf("purchase: %w", NewStepError(StepAddItem, ErrItemNotFound))
	var se *StepError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StepAddItem, se.Step)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, ReasonItemNotFound, Reason(err))
}
