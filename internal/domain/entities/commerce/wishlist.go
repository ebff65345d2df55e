package commerce

// WishlistItem is a saved product. Membership is boolean; there is no
// quantity and re-adding an existing ID is a caller error.
type WishlistItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       string `json:"price"`
	Image1      string `json:"image1"`
	CategoryID  int64  `json:"categoryId"`
	Stock       int    `json:"stock"`
	Description string `json:"description"`
}
