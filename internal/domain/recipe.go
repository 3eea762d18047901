package domain

import (
	"fmt"
	"time"
)

// RecipeKind separates alchemy recipes from forge blueprints
type RecipeKind string

// Valid reports whether k is a known recipe kind
func (k RecipeKind) Valid() bool {
	return k == RecipeKindAlchemy || k == RecipeKindForge
}

// CraftOutcome is the terminal state of one crafting attempt
type CraftOutcome string

// Material is a single (item, quantity) requirement
type Material struct {
	ItemID   int `json:"item_id"`
	Quantity int `json:"quantity"`
}

// Recipe is read-only reference data. Materials holds one or two entries and
// their order is the order in which they are consumed.
type Recipe struct {
	ID           int        `json:"recipe_id"`
	Kind         RecipeKind `json:"kind"`
	Name         string     `json:"name"`
	Grade        string     `json:"grade,omitempty"`
	Materials    []Material `json:"materials"`
	Cost         int64      `json:"cost"`
	OutputItemID int        `json:"output_item_id"`
	OutputQty    int        `json:"output_qty"`
	SuccessRate  float64    `json:"success_rate"`
	CreatedAt    time.Time  `json:"created_at,omitempty"`
}

// Validate checks the static shape of a recipe definition
func (r Recipe) Validate() error {
	if !r.Kind.Valid() {
		return fmt.Errorf("%w: recipe kind %q", ErrInvalidInput, r.Kind)
	}
	if len(r.Materials) == 0 || len(r.Materials) > 2 {
		return fmt.Errorf("%w: recipe %q needs one or two materials", ErrInvalidInput, r.Name)
	}
	for _, m := range r.Materials {
		if m.Quantity <= 0 {
			return fmt.Errorf("%w: recipe %q material quantity %d", ErrInvalidAmount, r.Name, m.Quantity)
		}
	}
	if r.Cost < 0 {
		return fmt.Errorf("%w: recipe %q cost %d", ErrInvalidAmount, r.Name, r.Cost)
	}
	if r.OutputQty <= 0 {
		return fmt.Errorf("%w: recipe %q output quantity %d", ErrInvalidAmount, r.Name, r.OutputQty)
	}
	if r.SuccessRate < 0 || r.SuccessRate > 1 {
		return fmt.Errorf("%w: recipe %q success rate %v", ErrInvalidInput, r.Name, r.SuccessRate)
	}
	return nil
}

// Requirements folds the materials into an item -> quantity map
func (r Recipe) Requirements() map[int]int {
	req := make(map[int]int, len(r.Materials))
	for _, m := range r.Materials {
		req[m.ItemID] += m.Quantity
	}
	return req
}

// RecipeView is a recipe as shown to one account
type RecipeView struct {
	Recipe    Recipe `json:"recipe"`
	Output    Item   `json:"output"`
	Craftable bool   `json:"craftable"`
}

// CraftResult reports a finished crafting attempt. A failure outcome is a
// valid terminal state, not an error.
type CraftResult struct {
	RecipeID     int          `json:"recipe_id"`
	Kind         RecipeKind   `json:"kind"`
	Outcome      CraftOutcome `json:"outcome"`
	Message      string       `json:"message"`
	OutputItemID int          `json:"output_item_id,omitempty"`
	OutputQty    int          `json:"output_qty,omitempty"`
	CostPaid     int64        `json:"cost_paid"`
	// Balance is what the ledger reported right after the cost was paid
	Balance int64 `json:"balance"`
}

// Succeeded reports whether the attempt produced its output
func (c CraftResult) Succeeded() bool {
	return c.Outcome == CraftSuccess
}
