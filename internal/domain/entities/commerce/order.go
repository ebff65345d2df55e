package commerce

// OrderItem is a line inside a placed order.
type OrderItem struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Order is a placed order as served by GET /orders/mine. Orders are
// read-only on the client; there is no local order collection.
type Order struct {
	ID        int64       `json:"id"`
	Status    string      `json:"status"`
	Total     float64     `json:"total"`
	PlacedAt  string      `json:"placedAt"`
	AddressID int64       `json:"addressId,omitempty"`
	Items     []OrderItem `json:"items,omitempty"`
}
