package crafting

import (
	"context"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// StoreRecipes reads recipes straight from a catalog repository. Flows bound
// to a repository.Tx use it instead of the cached catalog, so reads happen
// inside the same transaction.
func StoreRecipes(repo repository.Catalog) RecipeSource {
	return storeRecipes{repo: repo}
}

type storeRecipes struct {
	repo repository.Catalog
}

func (s storeRecipes) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	return s.repo.GetRecipe(ctx, recipeID)
}

func (s storeRecipes) Recipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error) {
	return s.repo.ListRecipes(ctx, kind)
}

func (s storeRecipes) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	return s.repo.GetItem(ctx, itemID)
}
