package transaction_bench

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/database/memory"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/transaction"
)

// fixture is a memory store with one rich buyer, a system ore offer and a
// recipe that always succeeds
type fixture struct {
	store  *memory.Store
	buyer  *domain.Account
	ore    domain.Item
	sword  domain.Item
	recipe domain.Recipe
}

func newFixture(b *testing.B) *fixture {
	b.Helper()
	ctx := context.Background()
	f := &fixture{store: memory.NewStore()}

	f.ore = domain.Item{Name: "铁矿", Category: domain.CategoryOre, Price: 1, Stock: domain.UnlimitedQuantity, IsSystem: true}
	f.sword = domain.Item{Name: "铁剑", Category: domain.CategoryEquipment, Price: 100}
	for _, it := range []*domain.Item{&f.ore, &f.sword} {
		if err := f.store.UpsertItem(ctx, it); err != nil {
			b.Fatalf("seed item: %v", err)
		}
	}
	f.recipe = domain.Recipe{Kind: domain.RecipeKindForge, Name: "铁剑图纸",
		Materials: []domain.Material{{ItemID: f.ore.ID, Quantity: 1}},
		OutputItemID: f.sword.ID, OutputQty: 1, SuccessRate: 1}
	if err := f.store.UpsertRecipe(ctx, &f.recipe); err != nil {
		b.Fatalf("seed recipe: %v", err)
	}

	buyer, err := domain.NewAccount("buyer", math.MaxInt64/2)
	if err != nil {
		b.Fatalf("new account: %v", err)
	}
	if err := f.store.CreateAccount(ctx, buyer); err != nil {
		b.Fatalf("seed account: %v", err)
	}
	f.buyer = buyer
	return f
}

func (f *fixture) coordinator(isolation transaction.Isolation) transaction.Service {
	cat := catalog.NewService(f.store, 64, time.Minute)
	return transaction.NewService(f.store, cat, nil, transaction.Config{Isolation: isolation})
}

var isolations = []transaction.Isolation{transaction.IsolationTransaction, transaction.IsolationSequential}

// BenchmarkPurchase_SystemOffer measures the purchase flow end to end
func BenchmarkPurchase_SystemOffer(b *testing.B) {
	for _, iso := range isolations {
		b.Run(string(iso), func(b *testing.B) {
			f := newFixture(b)
			svc := f.coordinator(iso)
			ctx := context.Background()
			ref := domain.OfferRef{Source: domain.OfferSourceSystem, ID: int64(f.ore.ID)}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := svc.Purchase(ctx, f.buyer.ID, ref, 1); err != nil {
					b.Fatalf("Purchase failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkPurchase_Parallel runs purchases from many goroutines against one
// account, which serializes on the store
func BenchmarkPurchase_Parallel(b *testing.B) {
	f := newFixture(b)
	svc := f.coordinator(transaction.IsolationTransaction)
	ref := domain.OfferRef{Source: domain.OfferSourceSystem, ID: int64(f.ore.ID)}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		ctx := context.Background()
		for pb.Next() {
			if _, err := svc.Purchase(ctx, f.buyer.ID, ref, 1); err != nil {
				b.Errorf("Purchase failed: %v", err)
				return
			}
		}
	})
}

// BenchmarkCraft measures a craft including its material purchase
func BenchmarkCraft(b *testing.B) {
	for _, iso := range isolations {
		b.Run(string(iso), func(b *testing.B) {
			f := newFixture(b)
			svc := f.coordinator(iso)
			ctx := context.Background()
			ref := domain.OfferRef{Source: domain.OfferSourceSystem, ID: int64(f.ore.ID)}

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				if _, err := svc.Purchase(ctx, f.buyer.ID, ref, 1); err != nil {
					b.Fatalf("Purchase failed: %v", err)
				}
				b.StartTimer()
				if _, err := svc.Craft(ctx, f.buyer.ID, f.recipe.ID); err != nil {
					b.Fatalf("Craft failed: %v", err)
				}
			}
		})
	}
}

// BenchmarkListingRoundTrip lists and withdraws the same goods
func BenchmarkListingRoundTrip(b *testing.B) {
	f := newFixture(b)
	svc := f.coordinator(transaction.IsolationTransaction)
	ctx := context.Background()
	if _, err := f.store.AddQuantity(ctx, f.buyer.ID, f.sword.ID, 1); err != nil {
		b.Fatalf("seed inventory: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		receipt, err := svc.CreateListing(ctx, f.buyer.ID, f.sword.ID, 10, 1)
		if err != nil {
			b.Fatalf("CreateListing failed: %v", err)
		}
		if _, err := svc.WithdrawListing(ctx, f.buyer.ID, receipt.ListingID, false); err != nil {
			b.Fatalf("WithdrawListing failed: %v", err)
		}
	}
}

func Example_purchase() {
	ctx := context.Background()
	store := memory.NewStore()
	herb := domain.Item{Name: "灵草", Category: domain.CategoryHerb, Price: 5, Stock: 10, IsSystem: true}
	_ = store.UpsertItem(ctx, &herb)
	buyer, _ := domain.NewAccount("han_li", 20)
	_ = store.CreateAccount(ctx, buyer)

	svc := transaction.NewService(store, nil, nil, transaction.Config{})
	receipt, err := svc.Purchase(ctx, buyer.ID, domain.OfferRef{Source: domain.OfferSourceSystem, ID: int64(herb.ID)}, 3)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(receipt.Total, receipt.Balance)
	// Output: 15 5
}
