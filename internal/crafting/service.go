// Package crafting runs alchemy recipes and forge blueprints. Both kinds share
// one state machine: check, pay, consume, roll, grant.
package crafting

import (
	"context"
	"errors"
	"fmt"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/ledger"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

// RecipeSource is the read-only reference data crafting needs
type RecipeSource interface {
	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
	Recipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error)
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
}

// Service defines crafting operations
type Service interface {
	Craft(ctx context.Context, accountID string, recipeID int) (*domain.CraftResult, error)
	Recipes(ctx context.Context, accountID string, kind domain.RecipeKind) ([]domain.RecipeView, error)
}

type service struct {
	ledger    ledger.Service
	inventory inventory.Service
	recipes   RecipeSource
	roll      func() float64
}

// NewService creates a crafting engine. roll returns a value in [0, 1); nil
// uses utils.RandomFloat.
func NewService(l ledger.Service, inv inventory.Service, recipes RecipeSource, roll func() float64) Service {
	if roll == nil {
		roll = utils.RandomFloat
	}
	return &service{
		ledger:    l,
		inventory: inv,
		recipes:   recipes,
		roll:      roll,
	}
}

// Succeeds applies the success rule: a rate of 1 always succeeds, a rate of 0
// always fails, and anything between succeeds when roll <= rate.
func Succeeds(rate, roll float64) bool {
	switch {
	case rate >= 1:
		return true
	case rate <= 0:
		return false
	default:
		return roll <= rate
	}
}

// Craft returns a failure outcome, not an error, when the roll misses. Cost
// and materials are not refunded on failure.
func (s *service) Craft(ctx context.Context, accountID string, recipeID int) (*domain.CraftResult, error) {
	log := logger.FromContext(ctx)

	recipe, err := s.recipes.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, recipeID, err)
	}
	output, err := s.recipes.GetItem(ctx, recipe.OutputItemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetOutputFailed, recipeID, err)
	}
	log.Debug(LogMsgCraftStarted, "account_id", accountID, "recipe_id", recipeID, "kind", recipe.Kind)

	if err := s.checkPreconditions(ctx, accountID, recipe); err != nil {
		log.Info(LogMsgCraftRejected, "account_id", accountID, "recipe_id", recipeID, "reason", domain.Reason(err))
		return nil, err
	}

	// applied turns true once the first mutation sticks; later failures
	// are reported as step errors
	applied := false
	var balance int64
	if recipe.Cost > 0 {
		if balance, err = s.ledger.Debit(ctx, accountID, recipe.Cost); err != nil {
			return nil, fmt.Errorf(ErrMsgPayCostFailed, err)
		}
		applied = true
	} else if balance, err = s.ledger.Balance(ctx, accountID); err != nil {
		return nil, fmt.Errorf(ErrMsgReadBalanceFailed, err)
	}

	for _, m := range recipe.Materials {
		if _, err := s.inventory.Remove(ctx, accountID, m.ItemID, m.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientQuantity) {
				err = fmt.Errorf("%w: %w", domain.ErrMissingMaterials, err)
			}
			err = fmt.Errorf(ErrMsgConsumeFailed, m.ItemID, err)
			if applied {
				err = domain.NewStepError(domain.StepConsume, err)
			}
			return nil, err
		}
		applied = true
	}

	result := &domain.CraftResult{
		RecipeID: recipe.ID,
		Kind:     recipe.Kind,
		CostPaid: recipe.Cost,
		Balance:  balance,
	}
	if Succeeds(recipe.SuccessRate, s.roll()) {
		if _, err := s.inventory.Add(ctx, accountID, output.ID, recipe.OutputQty); err != nil {
			return nil, domain.NewStepError(domain.StepGrantOutput, fmt.Errorf(ErrMsgGrantOutputFailed, err))
		}
		result.Outcome = domain.CraftSuccess
		result.OutputItemID = output.ID
		result.OutputQty = recipe.OutputQty
		result.Message = fmt.Sprintf(MsgSuccessFmt, verb(recipe.Kind), recipe.OutputQty, output.Name)
	} else {
		result.Outcome = domain.CraftFailure
		result.Message = fmt.Sprintf(MsgFailureFmt, verb(recipe.Kind), recipe.Cost)
	}

	log.Info(LogMsgCraftFinished,
		"account_id", accountID, "recipe_id", recipe.ID, "kind", recipe.Kind, "outcome", result.Outcome)
	return result, nil
}

// checkPreconditions tests materials before funds, so a player short of both
// hears about the materials.
func (s *service) checkPreconditions(ctx context.Context, accountID string, recipe *domain.Recipe) error {
	ok, err := s.inventory.HasAll(ctx, accountID, recipe.Requirements())
	if err != nil {
		return fmt.Errorf(ErrMsgCheckMaterialFailed, err)
	}
	if !ok {
		return fmt.Errorf(ErrMsgNeedMaterialsFmt, domain.ErrMissingMaterials, recipe.Name)
	}

	if recipe.Cost == 0 {
		return nil
	}
	balance, err := s.ledger.Balance(ctx, accountID)
	if err != nil {
		return fmt.Errorf(ErrMsgCheckFundsFailed, err)
	}
	if balance < recipe.Cost {
		return fmt.Errorf(ErrMsgNeedFundsFmt, domain.ErrInsufficientFunds, recipe.Name, recipe.Cost, balance)
	}
	return nil
}

// Recipes lists the recipes of one kind (all kinds when empty) with whether
// the account could start each one right now.
func (s *service) Recipes(ctx context.Context, accountID string, kind domain.RecipeKind) ([]domain.RecipeView, error) {
	recipes, err := s.recipes.Recipes(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRecipesFailed, err)
	}
	balance, err := s.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgCheckFundsFailed, err)
	}

	views := make([]domain.RecipeView, 0, len(recipes))
	for _, r := range recipes {
		output, err := s.recipes.GetItem(ctx, r.OutputItemID)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgGetOutputFailed, r.ID, err)
		}
		hasAll, err := s.inventory.HasAll(ctx, accountID, r.Requirements())
		if err != nil {
			return nil, fmt.Errorf(ErrMsgCheckMaterialFailed, err)
		}
		views = append(views, domain.RecipeView{
			Recipe:    r,
			Output:    *output,
			Craftable: hasAll && balance >= r.Cost,
		})
	}
	return views, nil
}

func verb(kind domain.RecipeKind) string {
	if kind == domain.RecipeKindForge {
		return VerbForge
	}
	return VerbAlchemy
}
