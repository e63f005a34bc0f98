package state

import (
	"sync"
	"time"

	"marketplus/domain"
	"marketplus/util"
)

// Fixed demo credential pair. This is a policy switch for the admin panel,
// not a security boundary.
const (
	adminEmail    = "yosinxon@gmail.com"
	adminPassword = "holbi2007"
)

// Store is the single source of truth for the visitor's commerce state. It
// loads every slice once at construction and persists synchronously after
// every mutation. All methods are safe for concurrent use, though the
// expected callers are single-threaded command and request handlers.
type Store struct {
	mu       sync.RWMutex
	slices   Slices
	wishlist []domain.Product
	cart     []domain.CartItem
	history  []domain.PurchaseRecord
	isAdmin  bool
}

// NewStore constructs a Store backed by the given persistence slices.
func NewStore(slices Slices) *Store {
	return &Store{
		slices:   slices,
		wishlist: slices.LoadWishlist(),
		cart:     slices.LoadCart(),
		history:  slices.LoadHistory(),
		isAdmin:  slices.LoadSession(),
	}
}

// AddToWishlist appends a product snapshot unless one with the same
// identifier is already present; duplicates are rejected silently.
func (s *Store) AddToWishlist(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, q := range s.wishlist {
		if q.ID == p.ID {
			return nil
		}
	}
	s.wishlist = append(s.wishlist, p)
	return s.slices.SaveWishlist(s.wishlist)
}

// RemoveFromWishlist drops the entry with the matching identifier; removing
// an absent product is a no-op.
func (s *Store) RemoveFromWishlist(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.wishlist {
		if q.ID == productID {
			s.wishlist = append(s.wishlist[:i], s.wishlist[i+1:]...)
			return s.slices.SaveWishlist(s.wishlist)
		}
	}
	return nil
}

// IsInWishlist reports whether a product identifier is wishlisted.
func (s *Store) IsInWishlist(productID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, q := range s.wishlist {
		if q.ID == productID {
			return true
		}
	}
	return false
}

// Wishlist returns a snapshot of the wishlist in insertion order.
func (s *Store) Wishlist() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Product, len(s.wishlist))
	copy(out, s.wishlist)
	return out
}

// AddToCart inserts a CartItem with quantity 1, or increments the quantity
// if the product is already in the cart.
func (s *Store) AddToCart(p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cart {
		if s.cart[i].Product.ID == p.ID {
			s.cart[i].Quantity++
			return s.slices.SaveCart(s.cart)
		}
	}
	s.cart = append(s.cart, domain.CartItem{Product: p, Quantity: 1})
	return s.slices.SaveCart(s.cart)
}

// RemoveFromCart deletes the matching CartItem if present.
func (s *Store) RemoveFromCart(productID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeFromCartLocked(productID)
}

func (s *Store) removeFromCartLocked(productID int) error {
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return s.slices.SaveCart(s.cart)
		}
	}
	return nil
}

// UpdateCartQuantity replaces the quantity of the matching CartItem. A
// quantity of zero or less removes the item; an absent product is a silent
// no-op.
func (s *Store) UpdateCartQuantity(productID, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		return s.removeFromCartLocked(productID)
	}
	for i := range s.cart {
		if s.cart[i].Product.ID == productID {
			s.cart[i].Quantity = quantity
			return s.slices.SaveCart(s.cart)
		}
	}
	return nil
}

// ClearCart empties the cart unconditionally.
func (s *Store) ClearCart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	return s.slices.SaveCart(s.cart)
}

// Cart returns a snapshot of the cart contents.
func (s *Store) Cart() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CartItem, len(s.cart))
	copy(out, s.cart)
	return out
}

// CartTotal returns the sum of discounted line subtotals.
func (s *Store) CartTotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cartTotal(s.cart)
}

func cartTotal(items []domain.CartItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// Checkout converts the cart into a new purchase record: it captures the
// cart contents, computes the discounted total, prepends the record to the
// history, and clears the cart, all under one lock so callers never observe
// an intermediate state. A nil record means the cart was empty and nothing
// happened.
func (s *Store) Checkout() (*domain.PurchaseRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cart) == 0 {
		return nil, nil
	}

	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	rec := domain.PurchaseRecord{
		ID:    util.PurchaseID(),
		Items: items,
		Total: cartTotal(items),
		Date:  time.Now().UTC(),
	}

	s.history = append([]domain.PurchaseRecord{rec}, s.history...)
	s.cart = nil
	if err := s.slices.SaveHistory(s.history); err != nil {
		return nil, err
	}
	if err := s.slices.SaveCart(s.cart); err != nil {
		return nil, err
	}
	return &rec, nil
}

// History returns a snapshot of the purchase history, most recent first.
func (s *Store) History() []domain.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PurchaseRecord, len(s.history))
	copy(out, s.history)
	return out
}

// Login sets the admin flag when the pair matches the fixed credentials.
// A mismatch reports false and leaves the persisted session untouched.
func (s *Store) Login(email, password string) (bool, error) {
	if email != adminEmail || password != adminPassword {
		return false, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = true
	return true, s.slices.SaveSession(true)
}

// Logout unconditionally clears the admin flag.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = false
	return s.slices.SaveSession(false)
}

// IsAdmin reports the session admin flag.
func (s *Store) IsAdmin() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAdmin
}
