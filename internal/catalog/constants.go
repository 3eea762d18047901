package catalog

import "errors"

// Sentinel errors for the reference data loader
var (
	ErrDuplicateName = errors.New("duplicate name")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Schema paths
const (
	ItemsSchemaPath   = "configs/schemas/items.schema.json"
	RecipesSchemaPath = "configs/schemas/recipes.schema.json"
)

// CacheSchemaVersion is the current version of the cache entries.
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// Cache keys for recipe lists
const (
	recipeListAll = "*"
)

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadConfigFileFailed = "failed to read config file %s: %w"
	ErrMsgSchemaFailed         = "schema validation failed for %s: %w"
	ErrMsgParseConfigFailed    = "failed to parse config %s: %w"
)

// Validation error messages
const (
	ErrFmtItemAtIndexEmpty      = "%w: item at index %d has empty name"
	ErrFmtRecipeAtIndexEmpty    = "%w: recipe at index %d has empty name"
	ErrFmtRecipeUnknownItem     = "%w: recipe %q references unknown item %q"
	ErrFmtRecipeInvalid         = "%w: recipe %q: %w"
	ErrMsgConfigNil             = "config is nil"
	ErrMsgNoItemsDefined        = "no items defined"
	ErrMsgGetItemFailed         = "failed to get item %d: %w"
	ErrMsgGetItemByNameFailed   = "failed to get item %q: %w"
	ErrMsgListItemsFailed       = "failed to list items: %w"
	ErrMsgGetRecipeFailed       = "failed to get recipe %d: %w"
	ErrMsgListRecipesFailed     = "failed to list recipes: %w"
	ErrMsgUpsertItemFailed      = "failed to upsert item %q: %w"
	ErrMsgUpsertRecipeFailed    = "failed to upsert recipe %q: %w"
	ErrMsgResolveRecipeItemsFmt = "failed to resolve items for recipe %q: %w"
)

// ==================== Log Messages ====================

const (
	LogMsgSyncCompleted   = "Catalog sync completed"
	LogMsgInsertedItem    = "Inserted item"
	LogMsgUpdatedItem     = "Updated item"
	LogMsgUpsertedRecipe  = "Upserted recipe"
	LogMsgCacheCleared    = "Catalog cache cleared"
	LogMsgItemInvalidated = "Catalog item invalidated"
)
