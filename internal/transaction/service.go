// Package transaction coordinates the multi-step economy flows. Every flow
// debits or removes first and credits or adds last, so a failing later step
// can only leave the acting account short, never the counterparty ahead.
package transaction

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/Huanyu_Go/internal/admin"
	"github.com/osse101/Huanyu_Go/internal/catalog"
	"github.com/osse101/Huanyu_Go/internal/concurrency"
	"github.com/osse101/Huanyu_Go/internal/crafting"
	"github.com/osse101/Huanyu_Go/internal/domain"
	"github.com/osse101/Huanyu_Go/internal/event"
	"github.com/osse101/Huanyu_Go/internal/inventory"
	"github.com/osse101/Huanyu_Go/internal/ledger"
	"github.com/osse101/Huanyu_Go/internal/logger"
	"github.com/osse101/Huanyu_Go/internal/market"
	"github.com/osse101/Huanyu_Go/internal/repository"
)

// Service defines the coordinated flows
type Service interface {
	Purchase(ctx context.Context, buyerID string, ref domain.OfferRef, qty int64) (*domain.Receipt, error)
	CreateListing(ctx context.Context, sellerID string, itemID int, price, qty int64) (*domain.Receipt, error)
	WithdrawListing(ctx context.Context, actorID string, listingID int64, adminForced bool) (*domain.Receipt, error)
	Craft(ctx context.Context, accountID string, recipeID int) (*domain.Receipt, error)
	Restock(ctx context.Context, actorID string, itemID int, stock int64) error
	Shutdown(ctx context.Context) error
}

// Config tunes the coordinator
type Config struct {
	Isolation     Isolation
	SuperAdminID  string
	OfferPageSize int
	// Roll feeds the crafting engine; nil uses the default source
	Roll func() float64
}

// components is one set of services bound to a single repository view
type components struct {
	accounts  repository.Accounts
	items     repository.Catalog
	ledger    ledger.Service
	inventory inventory.Service
	market    market.Service
	crafting  crafting.Service
	gate      admin.Service
}

type service struct {
	store   repository.Store
	catalog catalog.Service
	bus     event.Bus
	cfg     Config
	locks   *concurrency.LockManager
	direct  *components
	wg      sync.WaitGroup
}

// NewService creates the coordinator. cat serves cached reference data
// outside transactions and is invalidated after stock changes.
func NewService(store repository.Store, cat catalog.Service, bus event.Bus, cfg Config) Service {
	if cfg.Isolation == "" {
		cfg.Isolation = IsolationTransaction
	}
	if bus == nil {
		bus = event.NopBus{}
	}
	s := &service{
		store:   store,
		catalog: cat,
		bus:     bus,
		cfg:     cfg,
		locks:   concurrency.NewLockManager(),
	}
	var recipes crafting.RecipeSource = crafting.StoreRecipes(store)
	if cat != nil {
		recipes = cat
	}
	s.direct = s.bind(store, recipes)
	return s
}

func (s *service) bind(repo repository.Tx, recipes crafting.RecipeSource) *components {
	l := ledger.NewService(repo)
	inv := inventory.NewService(repo)
	return &components{
		accounts:  repo,
		items:     repo,
		ledger:    l,
		inventory: inv,
		market:    market.NewService(repo, s.cfg.OfferPageSize),
		crafting:  crafting.NewService(l, inv, recipes, s.cfg.Roll),
		gate:      admin.NewService(repo, s.cfg.SuperAdminID),
	}
}

// run executes fn under the configured isolation and reports failures.
// In transaction mode fn may run more than once when the store retries.
func (s *service) run(ctx context.Context, flow, accountID string, fn func(c *components) error) error {
	s.wg.Add(1)
	defer s.wg.Done()

	var err error
	if s.cfg.Isolation == IsolationSequential {
		release := s.locks.Acquire(accountID)
		err = fn(s.direct)
		release()
	} else {
		err = rolledBack(s.store.WithTx(ctx, func(tx repository.Tx) error {
			return fn(s.bind(tx, crafting.StoreRecipes(tx)))
		}))
	}

	if err != nil {
		s.reportFailure(ctx, flow, accountID, err)
		return err
	}
	logger.FromContext(ctx).Info(LogMsgFlowCompleted, "flow", flow, "account_id", accountID, "isolation", s.cfg.Isolation)
	return nil
}

func (s *service) reportFailure(ctx context.Context, flow, accountID string, err error) {
	log := logger.FromContext(ctx)

	var stepErr *domain.StepError
	if s.cfg.Isolation == IsolationSequential && errors.As(err, &stepErr) {
		log.Error(LogMsgFlowUncompensated, "flow", flow, "account_id", accountID, "step", stepErr.Step, "error", err)
		s.publish(ctx, event.NewFlowUncompensatedEvent(flow, accountID, stepErr.Step, err))
	}

	if domain.IsBusinessError(err) {
		log.Info(LogMsgFlowRejected, "flow", flow, "account_id", accountID, "reason", domain.Reason(err))
	} else {
		log.Error(LogMsgFlowFailed, "flow", flow, "account_id", accountID, "error", err)
	}
	s.publish(ctx, event.NewFlowFailedEvent(flow, accountID, err))
}

// publish never fails the flow; events go out after the state is final
func (s *service) publish(ctx context.Context, evt event.Event) {
	md := map[string]interface{}{event.MetaKeyIsolation: string(s.cfg.Isolation)}
	if id := logger.GetRequestID(ctx); id != "" {
		md[event.MetaKeyRequestID] = id
	}
	evt.Metadata = md
	if err := s.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// rolledBack drops the step marker: after a rollback no earlier step survives
func rolledBack(err error) error {
	var stepErr *domain.StepError
	if errors.As(err, &stepErr) {
		return stepErr.Err
	}
	return err
}

// activeAccount loads an account and rejects it when banned
func (c *components) activeAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	acct, err := c.accounts.GetAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgLoadAccountFailed, accountID, err)
	}
	if acct.IsBanned {
		return nil, fmt.Errorf(ErrMsgAccountBannedFmt, domain.ErrPermissionDenied, domain.ErrAccountBanned, accountID)
	}
	return acct, nil
}

// Shutdown waits for in-flight flows
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShuttingDown)
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf(ErrMsgShutdownTimeout, ctx.Err())
	}
}

func validQuantity(qty int64) error {
	if qty <= 0 || qty > domain.MaxTradeQuantity {
		return fmt.Errorf(ErrMsgQuantityFmt, domain.ErrInvalidAmount, qty, domain.MaxTradeQuantity)
	}
	return nil
}
