package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/Huanyu_Go/internal/database/memory"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/repository"
	"github.com/osse101/Huanyu_Go/internal/validation"
)

// countingCatalog counts store reads so cache hits can be asserted
type countingCatalog struct {
	repository.Catalog
	itemReads   int
	recipeReads int
	listReads   int
}

func (c *countingCatalog) GetItem(ctx context.Context, id int) (*domain.Item, error) {
	c.itemReads++
	return c.Catalog.GetItem(ctx, id)
}

func (c *countingCatalog) GetRecipe(ctx context.Context, id int) (*domain.Recipe, error) {
	c.recipeReads++
	return c.Catalog.GetRecipe(ctx, id)
}

func (c *countingCatalog) ListRecipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error) {
	c.listReads++
	return c.Catalog.ListRecipes(ctx, kind)
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	_, err := Seed(context.Background(), store, NewLoader(), "configs/items.json", "configs/recipes.json")
	require.NoError(t, err)
	return store
}

func TestSeed_ShippedData(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	l := NewLoader()

	// CASE 1: BEST CASE
	result, err := Seed(ctx, store, l, "configs/items.json", "configs/recipes.json")
	require.NoError(t, err)
	assert.Equal(t, 18, result.ItemsInserted)
	assert.Equal(t, 7, result.RecipesUpserted)

	forge, err := store.ListRecipes(ctx, domain.RecipeKindForge)
	require.NoError(t, err)
	assert.Len(t, forge, 3)

	ore, err := store.GetItemByName(ctx, "御灵铁")
	require.NoError(t, err)
	sword, err := store.GetItemByName(ctx, "灵铁剑")
	require.NoError(t, err)
	assert.False(t, sword.IsSystem)

	var blueprint *domain.Recipe
	for i := range forge {
		if forge[i].Name == "灵铁剑图纸" {
			blueprint = &forge[i]
		}
	}
	require.NotNil(t, blueprint)
	assert.Equal(t, []domain.Material{{ItemID: ore.ID, Quantity: 3}}, blueprint.Materials)
	assert.Equal(t, sword.ID, blueprint.OutputItemID)
	assert.Equal(t, 1.0, blueprint.SuccessRate)

	// CASE 3: EDGE CASE - reseeding is idempotent and keeps admin stock
	herb, err := store.GetItemByName(ctx, "育婴藤")
	require.NoError(t, err)
	assert.Equal(t, int64(200), herb.Stock)
	require.NoError(t, store.SetSystemStock(ctx, herb.ID, 3))

	result, err = Seed(ctx, store, l, "configs/items.json", "configs/recipes.json")
	require.NoError(t, err)
	assert.Zero(t, result.ItemsInserted)
	assert.Zero(t, result.ItemsUpdated)
	assert.Equal(t, 18, result.ItemsSkipped)

	herb, err = store.GetItemByName(ctx, "育婴藤")
	require.NoError(t, err)
	assert.Equal(t, int64(3), herb.Stock)

	all, err := store.ListRecipes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 7, "recipes are matched on kind and name, not duplicated")
}

// CASE 2: WORST CASE - a failing write leaves nothing behind
func TestSeed_RollsBackOnFailure(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	store.FailNext(memory.OpUpsertRecipe, errors.New("disk full"))

	_, err := Seed(ctx, store, NewLoader(), "configs/items.json", "configs/recipes.json")
	require.Error(t, err)

	items, err := store.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// CASE 4: INVALID CASE
func TestLoader_RejectsSchemaViolations(t *testing.T) {
	l := NewLoader()

	_, err := l.LoadItems(writeConfig(t, `{"version":"1","items":[{"name":"x","category":"herb","price":0}]}`))
	assert.ErrorIs(t, err, validation.ErrSchemaViolation)

	_, err = l.LoadItems(writeConfig(t, `{"version":"1","items":[{"name":"x","category":"weapon","price":5}]}`))
	assert.ErrorIs(t, err, validation.ErrSchemaViolation)

	_, err = l.LoadRecipes(writeConfig(t, `{"version":"1","recipes":[{"kind":"forge","name":"r","output_item":"x","success_rate":1.5,
		"materials":[{"item":"a","quantity":1}]}]}`))
	assert.ErrorIs(t, err, validation.ErrSchemaViolation)

	_, err = l.LoadItems(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoader_Validate(t *testing.T) {
	l := NewLoader()
	items := &ItemsConfig{Version: "1", Items: []ItemDef{
		{Name: "御灵铁", Category: domain.CategoryOre, Price: 300, IsSystem: true},
		{Name: "灵铁剑", Category: domain.CategoryEquipment, Price: 1200},
	}}
	recipe := RecipeDef{Kind: domain.RecipeKindForge, Name: "灵铁剑图纸", Cost: 100,
		Materials: []MaterialDef{{Item: "御灵铁", Quantity: 3}}, OutputItem: "灵铁剑", OutputQty: 1, SuccessRate: 1}

	require.NoError(t, l.Validate(items, &RecipesConfig{Recipes: []RecipeDef{recipe}}))

	tests := []struct {
		name    string
		items   *ItemsConfig
		recipes *RecipesConfig
		want    error
	}{
		{"nil items", nil, nil, ErrInvalidConfig},
		{"no items", &ItemsConfig{}, nil, ErrInvalidConfig},
		{"duplicate after folding", &ItemsConfig{Items: []ItemDef{
			{Name: "Iron", Category: domain.CategoryOre, Price: 1},
			{Name: "ＩＲＯＮ", Category: domain.CategoryOre, Price: 1},
		}}, nil, ErrDuplicateName},
		{"duplicate recipe", items, &RecipesConfig{Recipes: []RecipeDef{recipe, recipe}}, ErrDuplicateName},
		{"unknown material", items, &RecipesConfig{Recipes: []RecipeDef{func() RecipeDef {
			r := recipe
			r.Materials = []MaterialDef{{Item: "剑心髓", Quantity: 1}}
			return r
		}()}}, ErrInvalidConfig},
		{"three materials", items, &RecipesConfig{Recipes: []RecipeDef{func() RecipeDef {
			r := recipe
			r.Materials = []MaterialDef{{Item: "御灵铁", Quantity: 1}, {Item: "御灵铁", Quantity: 1}, {Item: "御灵铁", Quantity: 1}}
			return r
		}()}}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, l.Validate(tt.items, tt.recipes), tt.want)
		})
	}
}

func TestService_CachesItemsAndRecipes(t *testing.T) {
	ctx := context.Background()
	repo := &countingCatalog{Catalog: seededStore(t)}
	svc := NewService(repo, 16, time.Minute)

	first, err := svc.GetItem(ctx, 1)
	require.NoError(t, err)
	second, err := svc.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.itemReads)

	svc.InvalidateItem(ctx, 1)
	_, err = svc.GetItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.itemReads)

	_, err = svc.Recipes(ctx, domain.RecipeKindAlchemy)
	require.NoError(t, err)
	alchemy, err := svc.Recipes(ctx, domain.RecipeKindAlchemy)
	require.NoError(t, err)
	assert.Len(t, alchemy, 4)
	all, err := svc.Recipes(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 7)
	assert.Equal(t, 2, repo.listReads)

	svc.Clear(ctx)
	_, err = svc.Recipes(ctx, domain.RecipeKindAlchemy)
	require.NoError(t, err)
	assert.Equal(t, 3, repo.listReads)
}

// CASE 5: HOSTILE CASE - callers cannot corrupt cached recipes
func TestService_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc := NewService(seededStore(t), 16, time.Minute)

	r, err := svc.GetRecipe(ctx, 1)
	require.NoError(t, err)
	want := r.Materials[0].Quantity
	r.Materials[0].Quantity = 999

	again, err := svc.GetRecipe(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, want, again.Materials[0].Quantity)

	list, err := svc.Recipes(ctx, "")
	require.NoError(t, err)
	list[0].Materials[0].Quantity = 999
	list, err = svc.Recipes(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, want, list[0].Materials[0].Quantity)
}

func TestService_NotFound(t *testing.T) {
	svc := NewService(seededStore(t), 16, time.Minute)

	_, err := svc.GetItem(context.Background(), 4040)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
	_, err = svc.GetRecipe(context.Background(), 4040)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	_, err = svc.GetItemByName(context.Background(), "凤凰羽")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestRefCache_ExpiryAndVersion(t *testing.T) {
	c := newRefCache[int, string](4, 20*time.Millisecond)
	c.Set(1, "聚气丹")
	v, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "聚气丹", v)

	assert.Eventually(t, func() bool {
		_, ok := c.Get(1)
		return !ok
	}, time.Second, 10*time.Millisecond)

	// an entry written under an older layout is dropped on read
	c.lru.Add(2, &cachedEntry[string]{Version: "0.9", Value: "stale"})
	_, ok = c.Get(2)
	assert.False(t, ok)
	assert.False(t, c.lru.Contains(2), "the stale entry is removed, not just hidden")
}
