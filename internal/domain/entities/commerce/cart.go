// Package commerce defines the storefront domain records held by the local
// state collections: cart lines, wishlist entries, saved addresses, and the
// read-only catalog and order shapes fetched from the backend.
package commerce

// CartItem is a single cart line. ID is unique within the cart; adding an
// existing ID merges quantities instead of appending a second line.
type CartItem struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	Quantity   int     `json:"quantity"`
	Unit       string  `json:"unit"`
	ProductID  int64   `json:"productId,omitempty"`
	CategoryID int64   `json:"categoryId,omitempty"`
}

// Subtotal returns the line total.
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}
