package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/utils"
)

func (v *view) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	defer v.lock()()
	item, ok := v.state().items[itemID]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *item
	return &cp, nil
}

func (v *view) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	defer v.lock()()
	id, ok := v.state().itemNames[utils.NormalizeName(name)]
	if !ok {
		return nil, domain.ErrItemNotFound
	}
	cp := *v.state().items[id]
	return &cp, nil
}

func (v *view) ListItems(ctx context.Context) ([]domain.Item, error) {
	defer v.lock()()
	out := make([]domain.Item, 0, len(v.state().items))
	for _, item := range v.state().items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertItem matches on the normalized name and fills item.ID
func (v *view) UpsertItem(ctx context.Context, item *domain.Item) error {
	defer v.lock()()
	if err := v.fault(OpUpsertItem); err != nil {
		return err
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: item %q price %d", domain.ErrInvalidAmount, item.Name, item.Price)
	}
	if item.Stock < domain.UnlimitedQuantity {
		return fmt.Errorf(ErrMsgNegativeStockFmt, item.Stock, domain.ErrInvalidAmount)
	}
	st := v.state()
	key := utils.NormalizeName(item.Name)
	if key == "" {
		return fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if id, ok := st.itemNames[key]; ok {
		item.ID = id
	} else {
		st.nextItemID++
		item.ID = st.nextItemID
		st.itemNames[key] = item.ID
	}
	cp := *item
	st.items[item.ID] = &cp
	return nil
}

func (v *view) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	defer v.lock()()
	r, ok := v.state().recipes[recipeID]
	if !ok {
		return nil, domain.ErrRecipeNotFound
	}
	return copyRecipe(r), nil
}

// ListRecipes returns every recipe when kind is empty
func (v *view) ListRecipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error) {
	defer v.lock()()
	var out []domain.Recipe
	for _, r := range v.state().recipes {
		if kind != "" && r.Kind != kind {
			continue
		}
		out = append(out, *copyRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UpsertRecipe matches on kind and normalized name and fills recipe.ID
func (v *view) UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error {
	defer v.lock()()
	if err := v.fault(OpUpsertRecipe); err != nil {
		return err
	}
	if err := recipe.Validate(); err != nil {
		return err
	}
	st := v.state()
	if _, ok := st.items[recipe.OutputItemID]; !ok {
		return fmt.Errorf("recipe %q output: %w", recipe.Name, domain.ErrItemNotFound)
	}
	for _, m := range recipe.Materials {
		if _, ok := st.items[m.ItemID]; !ok {
			return fmt.Errorf("recipe %q material: %w", recipe.Name, domain.ErrItemNotFound)
		}
	}

	key := string(recipe.Kind) + ":" + utils.NormalizeName(recipe.Name)
	if id, ok := st.recipeKeys[key]; ok {
		recipe.ID = id
		recipe.CreatedAt = st.recipes[id].CreatedAt
	} else {
		st.nextRecipeID++
		recipe.ID = st.nextRecipeID
		recipe.CreatedAt = v.s.now()
		st.recipeKeys[key] = recipe.ID
	}
	st.recipes[recipe.ID] = copyRecipe(recipe)
	return nil
}
