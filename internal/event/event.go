// Package event carries domain events from committed flows to in-process
// subscribers such as the metrics collector.
package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/Huanyu_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata interface{}

// Event represents a generic event in the system
type Event struct {
	Version  string      `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if m, ok := e.Metadata.(map[string]interface{}); ok {
		return m[key]
	}
	return nil
}

// Event types
const (
	PurchaseCompleted Type = "market.purchase.completed"
	ListingCreated    Type = "market.listing.created"
	ListingWithdrawn  Type = "market.listing.withdrawn"
	ListingForfeited  Type = "market.listing.forfeited"
	SystemRestocked   Type = "market.system.restocked"
	CraftCompleted    Type = "crafting.completed"

	// FlowFailed is published for every flow that returns an error
	FlowFailed Type = "flow.failed"
	// FlowUncompensated is published when a sequential flow fails after an
	// earlier step already applied
	FlowUncompensated Type = "flow.uncompensated"
)

// PurchasePayloadV1 is the typed payload for completed purchases
type PurchasePayloadV1 struct {
	BuyerID   string             `json:"buyer_id"`
	SellerID  string             `json:"seller_id,omitempty"`
	Source    domain.OfferSource `json:"source"`
	ListingID int64              `json:"listing_id,omitempty"`
	ItemID    int                `json:"item_id"`
	Quantity  int64              `json:"quantity"`
	Total     int64              `json:"total"`
	Timestamp int64              `json:"timestamp"`
}

// ListingPayloadV1 is shared by listing create, withdraw and forfeit events.
// Quantity is the listed amount on create and the remaining amount on close.
type ListingPayloadV1 struct {
	ListingID int64  `json:"listing_id"`
	SellerID  string `json:"seller_id"`
	ActorID   string `json:"actor_id"`
	ItemID    int    `json:"item_id"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
	Timestamp int64  `json:"timestamp"`
}

// RestockPayloadV1 is the typed payload for admin restocks
type RestockPayloadV1 struct {
	ActorID   string `json:"actor_id"`
	ItemID    int    `json:"item_id"`
	Stock     int64  `json:"stock"`
	Timestamp int64  `json:"timestamp"`
}

// CraftPayloadV1 is the typed payload for finished crafting attempts
type CraftPayloadV1 struct {
	AccountID    string              `json:"account_id"`
	RecipeID     int                 `json:"recipe_id"`
	Kind         domain.RecipeKind   `json:"kind"`
	Outcome      domain.CraftOutcome `json:"outcome"`
	CostPaid     int64               `json:"cost_paid"`
	OutputItemID int                 `json:"output_item_id,omitempty"`
	OutputQty    int                 `json:"output_qty,omitempty"`
	Timestamp    int64               `json:"timestamp"`
}

// FlowFailurePayloadV1 is the typed payload for failed flows
type FlowFailurePayloadV1 struct {
	Flow      string `json:"flow"`
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
	Business  bool   `json:"business"`
	Timestamp int64  `json:"timestamp"`
}

// UncompensatedPayloadV1 names the step that failed after earlier steps stuck
type UncompensatedPayloadV1 struct {
	Flow      string `json:"flow"`
	AccountID string `json:"account_id"`
	Step      string `json:"step"`
	Error     string `json:"error"`
	Timestamp int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewPurchaseCompletedEvent creates a purchase event from its receipt
func NewPurchaseCompletedEvent(r domain.Receipt, source domain.OfferSource, sellerID string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PurchaseCompleted,
		Payload: PurchasePayloadV1{
			BuyerID:   r.AccountID,
			SellerID:  sellerID,
			Source:    source,
			ListingID: r.ListingID,
			ItemID:    r.ItemID,
			Quantity:  r.Quantity,
			Total:     r.Total,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewListingEvent creates a listing lifecycle event. eventType must be one of
// ListingCreated, ListingWithdrawn or ListingForfeited.
func NewListingEvent(eventType Type, actorID string, l domain.Listing) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: ListingPayloadV1{
			ListingID: l.ID,
			SellerID:  l.SellerID,
			ActorID:   actorID,
			ItemID:    l.ItemID,
			Price:     l.Price,
			Quantity:  l.Remaining,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSystemRestockedEvent creates a restock event
func NewSystemRestockedEvent(actorID string, itemID int, stock int64) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SystemRestocked,
		Payload: RestockPayloadV1{
			ActorID:   actorID,
			ItemID:    itemID,
			Stock:     stock,
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewCraftCompletedEvent creates a crafting event; failed rolls are completions too
func NewCraftCompletedEvent(accountID string, result domain.CraftResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CraftCompleted,
		Payload: CraftPayloadV1{
			AccountID:    accountID,
			RecipeID:     result.RecipeID,
			Kind:         result.Kind,
			Outcome:      result.Outcome,
			CostPaid:     result.CostPaid,
			OutputItemID: result.OutputItemID,
			OutputQty:    result.OutputQty,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewFlowFailedEvent classifies err with the domain reason table
func NewFlowFailedEvent(flow, accountID string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FlowFailed,
		Payload: FlowFailurePayloadV1{
			Flow:      flow,
			AccountID: accountID,
			Reason:    domain.Reason(err),
			Business:  domain.IsBusinessError(err),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewFlowUncompensatedEvent records a partially applied sequential flow
func NewFlowUncompensatedEvent(flow, accountID, step string, err error) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    FlowUncompensated,
		Payload: UncompensatedPayloadV1{
			Flow:      flow,
			AccountID: accountID,
			Step:      step,
			Error:     err.Error(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every subscriber synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// NopBus drops every event. Used when no subscriber is wired.
type NopBus struct{}

func (NopBus) Publish(context.Context, Event) error { return nil }
func (NopBus) Subscribe(Type, Handler) {}
