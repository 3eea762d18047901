package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
	"github.com/osse101/Huanyu_Go/internal/utils"
	"github.com/osse101/Huanyu_Go/internal/validation"
)

// ItemsConfig represents configs/items.json
type ItemsConfig struct {
	Version string    `json:"version"`
	Items   []ItemDef `json:"items"`
}

// ItemDef is one item definition. A missing stock means unlimited.
type ItemDef struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Grade       string `json:"grade,omitempty"`
	Effect      string `json:"effect,omitempty"`
	Price       int64  `json:"price"`
	Stock       *int64 `json:"stock,omitempty"`
	IsSystem    bool   `json:"is_system,omitempty"`
	AttackBonus int    `json:"attack_bonus,omitempty"`
}

// RecipesConfig represents configs/recipes.json
type RecipesConfig struct {
	Version string      `json:"version"`
	Recipes []RecipeDef `json:"recipes"`
}

// RecipeDef refers to items by name; IDs are resolved at sync time
type RecipeDef struct {
	Kind        domain.RecipeKind `json:"kind"`
	Name        string            `json:"name"`
	Grade       string            `json:"grade,omitempty"`
	Materials   []MaterialDef     `json:"materials"`
	Cost        int64             `json:"cost"`
	OutputItem  string            `json:"output_item"`
	OutputQty   int               `json:"output_qty"`
	SuccessRate float64           `json:"success_rate"`
}

// MaterialDef is one recipe ingredient
type MaterialDef struct {
	Item     string `json:"item"`
	Quantity int    `json:"quantity"`
}

// Loader handles loading, validating and syncing reference data
type Loader interface {
	LoadItems(path string) (*ItemsConfig, error)
	LoadRecipes(path string) (*RecipesConfig, error)
	Validate(items *ItemsConfig, recipes *RecipesConfig) error
	Sync(ctx context.Context, items *ItemsConfig, recipes *RecipesConfig, repo repository.Catalog) (*SyncResult, error)
}

// SyncResult contains the result of syncing reference data to the store
type SyncResult struct {
	ItemsInserted   int
	ItemsUpdated    int
	ItemsSkipped    int
	RecipesUpserted int
}

type loader struct {
	schemaValidator validation.SchemaValidator
}

// NewLoader creates a new Loader instance
func NewLoader() Loader {
	return &loader{
		schemaValidator: validation.NewSchemaValidator(),
	}
}

func (l *loader) LoadItems(path string) (*ItemsConfig, error) {
	var cfg ItemsConfig
	if err := l.load(path, ItemsSchemaPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (l *loader) LoadRecipes(path string) (*RecipesConfig, error) {
	var cfg RecipesConfig
	if err := l.load(path, RecipesSchemaPath, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// load validates against the schema before decoding
func (l *loader) load(path, schemaPath string, target any) error {
	resolved, err := validation.ResolvePath(path)
	if err != nil {
		return fmt.Errorf(ErrMsgReadConfigFileFailed, path, err)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return fmt.Errorf(ErrMsgReadConfigFileFailed, path, err)
	}
	if err := l.schemaValidator.ValidateBytes(data, schemaPath); err != nil {
		return fmt.Errorf(ErrMsgSchemaFailed, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf(ErrMsgParseConfigFailed, path, err)
	}
	return nil
}

// Validate checks cross-references the schemas cannot express: unique names
// and recipe ingredients that exist in the items file.
func (l *loader) Validate(items *ItemsConfig, recipes *RecipesConfig) error {
	if items == nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgConfigNil)
	}
	if len(items.Items) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, ErrMsgNoItemsDefined)
	}

	names := make(map[string]bool, len(items.Items))
	for i, def := range items.Items {
		key := utils.NormalizeName(def.Name)
		if key == "" {
			return fmt.Errorf(ErrFmtItemAtIndexEmpty, ErrInvalidConfig, i)
		}
		if names[key] {
			return fmt.Errorf("%w: item %q", ErrDuplicateName, def.Name)
		}
		names[key] = true
	}

	if recipes == nil {
		return nil
	}
	seen := make(map[string]bool, len(recipes.Recipes))
	for i, def := range recipes.Recipes {
		key := utils.NormalizeName(def.Name)
		if key == "" {
			return fmt.Errorf(ErrFmtRecipeAtIndexEmpty, ErrInvalidConfig, i)
		}
		kindKey := string(def.Kind) + ":" + key
		if seen[kindKey] {
			return fmt.Errorf("%w: recipe %q", ErrDuplicateName, def.Name)
		}
		seen[kindKey] = true

		for _, ref := range append([]string{def.OutputItem}, materialNames(def)...) {
			if !names[utils.NormalizeName(ref)] {
				return fmt.Errorf(ErrFmtRecipeUnknownItem, ErrInvalidConfig, def.Name, ref)
			}
		}
		// placeholder ids: only the shape is checked here
		if err := def.toRecipe(func(string) (int, error) { return 1, nil }).Validate(); err != nil {
			return fmt.Errorf(ErrFmtRecipeInvalid, ErrInvalidConfig, def.Name, err)
		}
	}
	return nil
}

func materialNames(def RecipeDef) []string {
	out := make([]string, 0, len(def.Materials))
	for _, m := range def.Materials {
		out = append(out, m.Item)
	}
	return out
}

// Sync upserts items then recipes. Re-running it is a no-op for unchanged
// items, and it never resets a stock level an admin has set.
func (l *loader) Sync(ctx context.Context, items *ItemsConfig, recipes *RecipesConfig, repo repository.Catalog) (*SyncResult, error) {
	log := logger.FromContext(ctx)
	result := &SyncResult{}

	for _, def := range items.Items {
		if err := syncOneItem(ctx, repo, def, result); err != nil {
			return nil, err
		}
	}

	if recipes != nil {
		for _, def := range recipes.Recipes {
			recipe, err := resolveRecipe(ctx, repo, def)
			if err != nil {
				return nil, err
			}
			if err := repo.UpsertRecipe(ctx, recipe); err != nil {
				return nil, fmt.Errorf(ErrMsgUpsertRecipeFailed, def.Name, err)
			}
			result.RecipesUpserted++
			log.Debug(LogMsgUpsertedRecipe, "name", def.Name, "kind", def.Kind, "id", recipe.ID)
		}
	}

	log.Info(LogMsgSyncCompleted,
		"inserted", result.ItemsInserted,
		"updated", result.ItemsUpdated,
		"skipped", result.ItemsSkipped,
		"recipes", result.RecipesUpserted)
	return result, nil
}

func syncOneItem(ctx context.Context, repo repository.Catalog, def ItemDef, result *SyncResult) error {
	log := logger.FromContext(ctx)
	item := def.toItem()

	existing, err := repo.GetItemByName(ctx, def.Name)
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		if err := repo.UpsertItem(ctx, &item); err != nil {
			return fmt.Errorf(ErrMsgUpsertItemFailed, def.Name, err)
		}
		result.ItemsInserted++
		log.Info(LogMsgInsertedItem, "name", def.Name, "id", item.ID)
		return nil
	case err != nil:
		return fmt.Errorf(ErrMsgGetItemByNameFailed, def.Name, err)
	}

	if existing.IsSystem && item.IsSystem {
		item.Stock = existing.Stock
	}
	item.ID = existing.ID
	if item == *existing {
		result.ItemsSkipped++
		return nil
	}
	if err := repo.UpsertItem(ctx, &item); err != nil {
		return fmt.Errorf(ErrMsgUpsertItemFailed, def.Name, err)
	}
	result.ItemsUpdated++
	log.Info(LogMsgUpdatedItem, "name", def.Name, "id", item.ID)
	return nil
}

func resolveRecipe(ctx context.Context, repo repository.Catalog, def RecipeDef) (*domain.Recipe, error) {
	var resolveErr error
	recipe := def.toRecipe(func(name string) (int, error) {
		item, err := repo.GetItemByName(ctx, name)
		if err != nil {
			if resolveErr == nil {
				resolveErr = fmt.Errorf(ErrFmtRecipeUnknownItem, err, def.Name, name)
			}
			return 0, err
		}
		return item.ID, nil
	})
	if resolveErr != nil {
		return nil, fmt.Errorf(ErrMsgResolveRecipeItemsFmt, def.Name, resolveErr)
	}
	return recipe, nil
}

func (d ItemDef) toItem() domain.Item {
	stock := domain.UnlimitedQuantity
	if d.Stock != nil {
		stock = *d.Stock
	}
	return domain.Item{
		Name:        d.Name,
		Category:    d.Category,
		Grade:       d.Grade,
		Effect:      d.Effect,
		Price:       d.Price,
		Stock:       stock,
		IsSystem:    d.IsSystem,
		AttackBonus: d.AttackBonus,
	}
}

func (d RecipeDef) toRecipe(itemID func(name string) (int, error)) *domain.Recipe {
	r := &domain.Recipe{
		Kind:        d.Kind,
		Name:        d.Name,
		Grade:       d.Grade,
		Cost:        d.Cost,
		OutputQty:   d.OutputQty,
		SuccessRate: d.SuccessRate,
	}
	if r.OutputQty == 0 {
		r.OutputQty = 1
	}
	r.OutputItemID, _ = itemID(d.OutputItem)
	for _, m := range d.Materials {
		id, _ := itemID(m.Item)
		r.Materials = append(r.Materials, domain.Material{ItemID: id, Quantity: m.Quantity})
	}
	return r
}

// Seed loads, validates and syncs both reference files inside one store transaction
func Seed(ctx context.Context, store repository.Store, l Loader, itemsPath, recipesPath string) (*SyncResult, error) {
	items, err := l.LoadItems(itemsPath)
	if err != nil {
		return nil, err
	}
	recipes, err := l.LoadRecipes(recipesPath)
	if err != nil {
		return nil, err
	}
	if err := l.Validate(items, recipes); err != nil {
		return nil, err
	}

	var result *SyncResult
	err = store.WithTx(ctx, func(tx repository.Tx) error {
		var syncErr error
		result, syncErr = l.Sync(ctx, items, recipes, tx)
		return syncErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
