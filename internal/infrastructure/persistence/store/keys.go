package store

// Namespace keys owned by the sync layer. Each key maps to one JSON value;
// no two components write under the same key.
const (
	KeyAuthToken   = "auth.token"
	KeyAuthProfile = "auth.profile"
	KeyCartItems   = "cart.items"
	KeyWishlist    = "wishlist.items"
	KeyAddresses   = "addresses.items"
	KeyAppPin      = "security.pin"
)

// OwnedKeys lists every namespace key the layer persists, in clear order.
// Logout clears exactly this set.
func OwnedKeys() []string {
	return []string{KeyAuthToken, KeyAuthProfile, KeyCartItems, KeyWishlist, KeyAddresses, KeyAppPin}
}
