package domain

import "time"

// CartItem pairs a product snapshot with a positive quantity. A cart holds at
// most one CartItem per product identifier.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns the discounted unit price multiplied by the quantity.
func (i CartItem) Subtotal() float64 {
	return i.Product.DiscountedPrice() * float64(i.Quantity)
}

// PurchaseRecord is an immutable snapshot of a cart at checkout time.
type PurchaseRecord struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"products"`
	Total float64    `json:"total"`
	Date  time.Time  `json:"date"`
}
