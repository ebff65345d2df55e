package services

import (
	"fmt"

	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/collection"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/messaging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/observability/logging"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
)

// AddressService holds the saved-address collection and enforces the one
// multi-element invariant in the layer: a non-empty collection has exactly
// one default address.
type AddressService struct {
	items *collection.Collection[commerce.Address, int64]
}

// NewAddressService creates the address collection bound to its store
// namespace.
func NewAddressService(st *store.Store, broadcaster *messaging.Broadcaster, logger *logging.ChanneledLogger) *AddressService {
	items := collection.New(collection.Config[commerce.Address, int64]{
		Name:      "addresses",
		Key:       store.KeyAddresses,
		IDOf:      func(a commerce.Address) int64 { return a.ID },
		Normalize: normalizeDefault,
	}, st, logger)

	if broadcaster != nil {
		items.OnChange(func(change collection.Change) {
			broadcaster.Publish("addresses", change)
		})
	}

	return &AddressService{items: items}
}

// normalizeDefault restores the exactly-one-default invariant after any
// mutation. The changed element wins a conflict; with no changed element the
// first default found (or the first element) wins.
func normalizeDefault(items []commerce.Address, changed int) {
	if len(items) == 0 {
		return
	}

	keeper := -1
	if changed >= 0 && changed < len(items) && items[changed].IsDefault {
		keeper = changed
	} else {
		for i := range items {
			if items[i].IsDefault {
				keeper = i
				break
			}
		}
	}
	if keeper == -1 {
		keeper = 0
	}

	for i := range items {
		items[i].IsDefault = i == keeper
	}
}

// Hydrate loads the persisted addresses; absent or unreadable state yields
// an empty list.
func (s *AddressService) Hydrate() {
	s.items.Hydrate()
}

// Add saves an address. The first address becomes the default; an address
// added with IsDefault set steals the default atomically. Re-adding a
// present ID returns ErrAlreadyExists.
func (s *AddressService) Add(addr commerce.Address) error {
	if addr.AddressType == "" {
		addr.AddressType = commerce.AddressHome
	}
	if !commerce.ValidAddressType(addr.AddressType) {
		return fmt.Errorf("invalid address type %q", addr.AddressType)
	}
	return s.items.Add(addr)
}

// Remove drops an address. The default invariant is restored if the default
// was removed. Absent IDs are a no-op.
func (s *AddressService) Remove(id int64) error {
	return s.items.Remove(id)
}

// Update applies a partial patch. Setting IsDefault on one address clears it
// on every other address in the same atomic update. Returns ErrNotFound for
// an absent ID.
func (s *AddressService) Update(id int64, patch commerce.AddressPatch) error {
	if patch.AddressType != nil && !commerce.ValidAddressType(*patch.AddressType) {
		return fmt.Errorf("invalid address type %q", *patch.AddressType)
	}
	return s.items.Update(id, func(a *commerce.Address) {
		patch.Apply(a)
	})
}

// SetDefault marks one address as the default and clears all others.
func (s *AddressService) SetDefault(id int64) error {
	isDefault := true
	return s.Update(id, commerce.AddressPatch{IsDefault: &isDefault})
}

// Default returns the current default address.
func (s *AddressService) Default() (commerce.Address, bool) {
	for _, a := range s.items.Items() {
		if a.IsDefault {
			return a, true
		}
	}
	return commerce.Address{}, false
}

// Contains reports whether an address ID is saved.
func (s *AddressService) Contains(id int64) bool {
	return s.items.Contains(id)
}

// Get returns an address by ID.
func (s *AddressService) Get(id int64) (commerce.Address, bool) {
	return s.items.Get(id)
}

// Items returns the addresses in insertion order.
func (s *AddressService) Items() []commerce.Address {
	return s.items.Items()
}

// Count returns the number of saved addresses.
func (s *AddressService) Count() int {
	return s.items.Len()
}

// ReconcileWithRemote replaces the addresses with an authoritative remote
// list; the default invariant is re-applied to whatever arrives.
func (s *AddressService) ReconcileWithRemote(remote []commerce.Address) error {
	return s.items.ReconcileWithRemote(remote)
}

// Reset drops in-memory state after the store keys have been cleared.
func (s *AddressService) Reset() {
	s.items.Reset()
}
