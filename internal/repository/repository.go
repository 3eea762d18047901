package repository

import (
	"context"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

// Accounts defines persistence for accounts and their balances.
// DebitBalance and CreditBalance are single indivisible updates.
type Accounts interface {
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	GetAccountByUsername(ctx context.Context, username string) (*domain.Account, error)
	CreateAccount(ctx context.Context, account *domain.Account) error
	DebitBalance(ctx context.Context, accountID string, amount int64) (int64, error)
	CreditBalance(ctx context.Context, accountID string, amount int64) (int64, error)
	SetBanned(ctx context.Context, accountID string, banned bool) error
}

// Inventory defines persistence for per-account item holdings.
// No entry with a non-positive quantity is ever stored.
type Inventory interface {
	AddQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error)
	RemoveQuantity(ctx context.Context, accountID string, itemID, qty int) (int, error)
	GetQuantity(ctx context.Context, accountID string, itemID int) (int, error)
	GetQuantities(ctx context.Context, accountID string, itemIDs []int) (map[int]int, error)
	ListHoldings(ctx context.Context, accountID string) ([]domain.Holding, error)
	DeleteEntry(ctx context.Context, accountID string, itemID int) (int, error)
}

// Listings defines persistence for marketplace rows and finite system stock
type Listings interface {
	ListSystemItems(ctx context.Context, afterItemID, limit int) ([]domain.Item, error)
	ListPlayerListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Offer, error)
	GetListing(ctx context.Context, listingID int64) (*domain.Listing, error)
	InsertListing(ctx context.Context, listing *domain.Listing) error
	DeactivateListing(ctx context.Context, listingID int64, forfeited bool) (*domain.Listing, error)
	DecrementListing(ctx context.Context, listingID int64, qty int64) (*domain.Listing, error)
	DecrementSystemStock(ctx context.Context, itemID int, qty int64) (int64, error)
	SetSystemStock(ctx context.Context, itemID int, stock int64) error
}

// Catalog defines persistence for read-only reference data
type Catalog interface {
	GetItem(ctx context.Context, itemID int) (*domain.Item, error)
	GetItemByName(ctx context.Context, name string) (*domain.Item, error)
	ListItems(ctx context.Context) ([]domain.Item, error)
	UpsertItem(ctx context.Context, item *domain.Item) error
	GetRecipe(ctx context.Context, recipeID int) (*domain.Recipe, error)
	ListRecipes(ctx context.Context, kind domain.RecipeKind) ([]domain.Recipe, error)
	UpsertRecipe(ctx context.Context, recipe *domain.Recipe) error
}

// Roles defines persistence for delegated admin grants
type Roles interface {
	IsAdmin(ctx context.Context, accountID string) (bool, error)
	GrantAdmin(ctx context.Context, accountID, grantedBy string) error
	RevokeAdmin(ctx context.Context, accountID string) error
	ListAdmins(ctx context.Context) ([]domain.AdminGrant, error)
}
