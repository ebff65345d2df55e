package services

import (
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/collection"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
)

// CartService holds the cart collection. Identity is the item ID; adding an
// ID already in the cart merges quantities instead of appending a second
// line.
type CartService struct {
	items *collection.Collection[commerce.CartItem, int64]
}

// NewCartService creates the cart collection bound to its store namespace.
func NewCartService(st *store.Store, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger) *CartService {
	items := collection.New(collection.Config[commerce.CartItem, int64]{
		Name: "cart",
		Key:  store.KeyCartItems,
		IDOf: func(item commerce.CartItem) int64 { return item.ID },
		Merge: func(existing *commerce.CartItem, incoming commerce.CartItem) {
			existing.Quantity += incoming.Quantity
		},
	}, st, logger)

	if broadcaster != nil {
		items.OnChange(func(change collection.Change) {
			broadcaster.Publish("cart", change)
		})
	}

	return &CartService{items: items}
}

// Hydrate loads the persisted cart; absent or unreadable state yields an
// empty cart.
func (s *CartService) Hydrate() {
	s.items.Hydrate()
}

// Add puts an item in the cart, merging quantities on a repeated ID. A
// quantity below one is clamped to one.
func (s *CartService) Add(item commerce.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	return s.items.Add(item)
}

// Remove drops a line. Absent IDs are a no-op.
func (s *CartService) Remove(id int64) error {
	return s.items.Remove(id)
}

// SetQuantity sets a line's quantity; values below one are clamped to one
// (removal is an explicit separate call).
func (s *CartService) SetQuantity(id int64, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	return s.items.Update(id, func(item *commerce.CartItem) {
		item.Quantity = quantity
	})
}

// Contains reports whether a product ID is in the cart. Used by screens to
// render the "already added" affordance without a round trip.
func (s *CartService) Contains(id int64) bool {
	return s.items.Contains(id)
}

// Get returns a cart line by ID.
func (s *CartService) Get(id int64) (commerce.CartItem, bool) {
	return s.items.Get(id)
}

// Items returns the cart lines in insertion order.
func (s *CartService) Items() []commerce.CartItem {
	return s.items.Items()
}

// Count returns the number of cart lines.
func (s *CartService) Count() int {
	return s.items.Len()
}

// Total returns the cart total across all lines.
func (s *CartService) Total() float64 {
	var total float64
	for _, item := range s.items.Items() {
		total += item.Subtotal()
	}
	return total
}

// ReconcileWithRemote replaces the cart with an authoritative remote list.
// Unconfirmed optimistic edits are lost by design; freshness wins.
func (s *CartService) ReconcileWithRemote(remote []commerce.CartItem) error {
	return s.items.ReconcileWithRemote(remote)
}

// Reset drops in-memory state after the store keys have been cleared.
func (s *CartService) Reset() {
	s.items.Reset()
}
