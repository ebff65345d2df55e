package services

import (
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/collection"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
)

// WishlistService holds the wishlist collection. Membership is boolean:
// re-adding a present ID returns commerce.ErrAlreadyExists because callers
// branch on membership before calling.
type WishlistService struct {
	items *collection.Collection[commerce.WishlistItem, int64]
}

// NewWishlistService creates the wishlist collection bound to its store
// namespace.
func NewWishlistService(st *store.Store, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger) *WishlistService {
	items := collection.New(collection.Config[commerce.WishlistItem, int64]{
		Name: "wishlist",
		Key:  store.KeyWishlist,
		IDOf: func(item commerce.WishlistItem) int64 { return item.ID },
	}, st, logger)

	if broadcaster != nil {
		items.OnChange(func(change collection.Change) {
			broadcaster.Publish("wishlist", change)
		})
	}

	return &WishlistService{items: items}
}

// Hydrate loads the persisted wishlist; absent or unreadable state yields an
// empty list.
func (s *WishlistService) Hydrate() {
	s.items.Hydrate()
}

// Add saves a product. Re-adding a present ID returns ErrAlreadyExists.
func (s *WishlistService) Add(item commerce.WishlistItem) error {
	return s.items.Add(item)
}

// Remove drops a saved product. Absent IDs are a no-op.
func (s *WishlistService) Remove(id int64) error {
	return s.items.Remove(id)
}

// Contains reports saved-product membership.
func (s *WishlistService) Contains(id int64) bool {
	return s.items.Contains(id)
}

// Get returns a saved product by ID.
func (s *WishlistService) Get(id int64) (commerce.WishlistItem, bool) {
	return s.items.Get(id)
}

// Items returns the saved products in insertion order.
func (s *WishlistService) Items() []commerce.WishlistItem {
	return s.items.Items()
}

// Count returns the number of saved products.
func (s *WishlistService) Count() int {
	return s.items.Len()
}

// ReconcileWithRemote replaces the wishlist with an authoritative remote
// list.
func (s *WishlistService) ReconcileWithRemote(remote []commerce.WishlistItem) error {
	return s.items.ReconcileWithRemote(remote)
}

// Reset drops in-memory state after the store keys have been cleared.
func (s *WishlistService) Reset() {
	s.items.Reset()
}
