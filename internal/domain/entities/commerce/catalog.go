package commerce

// Product is a catalog entry as served by GET /products. The full list is
// fetched and filtered client-side by category.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Unit        string  `json:"unit"`
	Image1      string  `json:"image1"`
	Image2      string  `json:"image2,omitempty"`
	CategoryID  int64   `json:"categoryId"`
	Stock       int     `json:"stock"`
	Description string  `json:"description"`
}

// Category is a catalog grouping as served by GET /category/{id}.
type Category struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Image    string    `json:"image,omitempty"`
	Products []Product `json:"products,omitempty"`
}

// CartLine converts a product into a cart line with the given quantity.
func (p Product) CartLine(quantity int) CartItem {
	if quantity < 1 {
		quantity = 1
	}
	return CartItem{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Quantity:   quantity,
		Unit:       p.Unit,
		ProductID:  p.ID,
		CategoryID: p.CategoryID,
	}
}

// WishlistEntry converts a product into a wishlist entry.
func (p Product) WishlistEntry(price string) WishlistItem {
	return WishlistItem{
		ID:          p.ID,
		Name:        p.Name,
		Price:       price,
		Image1:      p.Image1,
		CategoryID:  p.CategoryID,
		Stock:       p.Stock,
		Description: p.Description,
	}
}
