package domain

import "time"

// CartLine is one (product, selected size, quantity) entry in a cart.
// Two lines with the same product but different sizes are distinct; a line
// never exists with quantity below 1.
type CartLine struct {
	Product      Product `json:"product"`
	SelectedSize string  `json:"selected_size"`
	Quantity     int     `json:"quantity"`
}

// Matches reports whether the line is keyed by the given product and size.
func (l *CartLine) Matches(productID, size string) bool {
	return l.Product.ID == productID && l.SelectedSize == size
}

// Subtotal returns price multiplied by quantity for this line
func (l *CartLine) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// CartItemRow is the server-side mirror of a cart line, keyed by
// (user id, product id, selected size). The product snapshot is denormalized
// so a stored cart survives later catalog changes.
type CartItemRow struct {
	UserID       string    `json:"user_id"`
	ProductID    string    `json:"product_id"`
	SelectedSize string    `json:"selected_size"`
	Quantity     int       `json:"quantity"`
	Product      Product   `json:"product_data"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Line rebuilds a CartLine from the row's snapshot and live quantity.
func (r *CartItemRow) Line() CartLine {
	return CartLine{
		Product:      r.Product,
		SelectedSize: r.SelectedSize,
		Quantity:     r.Quantity,
	}
}

// FavoriteRow is the server-side mirror of one wishlist membership, keyed by
// (user id, product id). Carries the same denormalized snapshot as cart rows.
type FavoriteRow struct {
	UserID    string    `json:"user_id"`
	ProductID string    `json:"product_id"`
	Product   Product   `json:"product_data"`
	CreatedAt time.Time `json:"created_at"`
}
