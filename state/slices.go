// Package state owns the visitor's local commerce state: wishlist, cart,
// purchase history, and the admin session flag.
package state

import "marketplus/domain"

// Slices is the persistence boundary for the four state slices. The Store is
// the only writer; loads happen once at Store construction. A Load never
// fails: malformed or missing persisted data yields the slice's zero value.
type Slices interface {
	LoadWishlist() []domain.Product
	SaveWishlist(wishlist []domain.Product) error

	LoadCart() []domain.CartItem
	SaveCart(cart []domain.CartItem) error

	LoadHistory() []domain.PurchaseRecord
	SaveHistory(history []domain.PurchaseRecord) error

	LoadSession() bool
	SaveSession(isAdmin bool) error
}
