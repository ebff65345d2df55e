package startup

import (
	"context"
	"testing"
	"time"

	"github.com/GreenBasketHQ/greenbasket-go/internal/application/container"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/commerce"
	"github.com/GreenBasketHQ/greenbasket-go/internal/domain/entities/session"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/gateway"
	"github.com/GreenBasketHQ/greenbasket-go/internal/infrastructure/persistence/store"
)

const testDeviceKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// seededContainer builds a container over an in-memory store that already
// holds one item per collection key.
func seededContainer(t *testing.T) *container.Container {
	t.Helper()

	st, err := store.Open("sqlite3", ":memory:", nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { st.Close() })
	if err := st.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	if err := st.Set(store.KeyCartItems, []commerce.CartItem{{ID: 1, Name: "Spinach", Price: 30, Quantity: 2}}); err != nil {
		t.Fatalf("Set(cart) error = %v", err)
	}
	if err := st.Set(store.KeyWishlist, []commerce.WishlistItem{{ID: 5, Name: "Honey"}}); err != nil {
		t.Fatalf("Set(wishlist) error = %v", err)
	}
	if err := st.Set(store.KeyAddresses, []commerce.Address{{ID: 9, Name: "Asha", Pincode: "560001", IsDefault: true}}); err != nil {
		t.Fatalf("Set(addresses) error = %v", err)
	}

	gw := gateway.New("http://127.0.0.1:0", time.Second, nil)
	return container.NewContainer(st, gw, nil, testDeviceKey, nil)
}

func TestHydrateCollections_Authenticated(t *testing.T) {
	c := seededContainer(t)

	hydrateCollections(c, session.StatusAuthenticated)

	if got := c.CartService.Count(); got != 1 {
		t.Errorf("cart count = %d, want 1", got)
	}
	if got := c.WishlistService.Count(); got != 1 {
		t.Errorf("wishlist count = %d, want 1", got)
	}
	if got := c.AddressService.Count(); got != 1 {
		t.Errorf("address count = %d, want 1", got)
	}
}

func TestHydrateCollections_AnonymousStaysEmpty(t *testing.T) {
	c := seededContainer(t)

	hydrateCollections(c, session.StatusAnonymous)

	if got := c.CartService.Count(); got != 0 {
		t.Errorf("cart count = %d, want 0", got)
	}
	if got := c.WishlistService.Count(); got != 0 {
		t.Errorf("wishlist count = %d, want 0", got)
	}
	if got := c.AddressService.Count(); got != 0 {
		t.Errorf("address count = %d, want 0", got)
	}
}
