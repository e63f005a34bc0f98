package state

import "marketplus/domain"

// MemorySlices is an in-memory Slices implementation for tests and the
// throwaway "memory" state backend.
type MemorySlices struct {
	wishlist []domain.Product
	cart     []domain.CartItem
	history  []domain.PurchaseRecord
	isAdmin  bool

	// FailSaves makes every Save return this error when non-nil.
	FailSaves error
}

// compile-time assertion
var _ Slices = (*MemorySlices)(nil)

// NewMemorySlices constructs an empty MemorySlices.
func NewMemorySlices() *MemorySlices {
	return &MemorySlices{}
}

func (s *MemorySlices) LoadWishlist() []domain.Product { return s.wishlist }

func (s *MemorySlices) SaveWishlist(wishlist []domain.Product) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.wishlist = wishlist
	return nil
}

func (s *MemorySlices) LoadCart() []domain.CartItem { return s.cart }

func (s *MemorySlices) SaveCart(cart []domain.CartItem) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.cart = cart
	return nil
}

func (s *MemorySlices) LoadHistory() []domain.PurchaseRecord { return s.history }

func (s *MemorySlices) SaveHistory(history []domain.PurchaseRecord) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.history = history
	return nil
}

func (s *MemorySlices) LoadSession() bool { return s.isAdmin }

func (s *MemorySlices) SaveSession(isAdmin bool) error {
	if s.FailSaves != nil {
		return s.FailSaves
	}
	s.isAdmin = isAdmin
	return nil
}
