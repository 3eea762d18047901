// Package catalog serves read-only reference data (items and recipes) from an
// expiring LRU in front of the store, and seeds it from the JSON files in configs/.
package catalog

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines catalog lookups
type Service interface {
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	Items(ctx context.Context) ([]domain.Item, error)
	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
	Recipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error)
	InvalidateItem(ctx context.Context, itemID int)
	Clear(ctx context.Context)
}

type service struct {
	repo    repository.Catalog
	items   *refCache[int, domain.Item]
	recipes *refCache[int, domain.Recipe]
	lists   *refCache[string, []domain.Recipe]
}

// NewService creates a catalog with per-kind caches of the given size and TTL
func NewService(repo repository.Catalog, size int, ttl time.Duration) Service {
	return &service{
		repo:    repo,
		items:   newRefCache[int, domain.Item](size, ttl),
		recipes: newRefCache[int, domain.Recipe](size, ttl),
		lists:   newRefCache[string, []domain.Recipe](4, ttl),
	}
}

// GetItem returns a copy; finite stock in the cached copy may be stale, so
// callers that sell stock must go through the guarded decrement.
func (s *service) GetItem(ctx context.Context, itemID int) (*domain.Item, error) {
	if item, ok := s.items.Get(itemID); ok {
		return &item, nil
	}
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemFailed, itemID, err)
	}
	s.items.Set(itemID, *item)
	return item, nil
}

func (s *service) GetItemByName(ctx context.Context, name string) (*domain.Item, error) {
	item, err := s.repo.GetItemByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetItemByNameFailed, name, err)
	}
	s.items.Set(item.ID, *item)
	return item, nil
}

func (s *service) Items(ctx context.Context) ([]domain.Item, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListItemsFailed, err)
	}
	return items, nil
}

func (s *service) GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error) {
	if r, ok := s.recipes.Get(recipeID); ok {
		return cloneRecipe(r), nil
	}
	r, err := s.repo.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgGetRecipeFailed, recipeID, err)
	}
	s.recipes.Set(recipeID, *cloneRecipe(*r))
	return r, nil
}

// Recipes returns every recipe when kind is empty
func (s *service) Recipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error) {
	key := string(kind)
	if key == "" {
		key = recipeListAll
	}
	if list, ok := s.lists.Get(key); ok {
		return cloneRecipes(list), nil
	}
	list, err := s.repo.ListRecipes(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListRecipesFailed, err)
	}
	s.lists.Set(key, cloneRecipes(list))
	return list, nil
}

// InvalidateItem drops one item, e.g. after an admin restock
func (s *service) InvalidateItem(ctx context.Context, itemID int) {
	s.items.Invalidate(itemID)
	logger.FromContext(ctx).Debug(LogMsgItemInvalidated, "item_id", itemID)
}

// Clear drops everything, e.g. after a reseed
func (s *service) Clear(ctx context.Context) {
	s.items.Clear()
	s.recipes.Clear()
	s.lists.Clear()
	logger.FromContext(ctx).Info(LogMsgCacheCleared)
}

func cloneRecipe(r domain.Recipe) *domain.Recipe {
	r.Materials = slices.Clone(r.Materials)
	return &r
}

func cloneRecipes(list []domain.Recipe) []domain.Recipe {
	out := make([]domain.Recipe, len(list))
	for i := range list {
		out[i] = *cloneRecipe(list[i])
	}
	return out
}
