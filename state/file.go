package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"marketplus/domain"
)

// File names for the four persisted slices, one file per slice.
const (
	wishlistFile = "wishlist.json"
	cartFile     = "cart.json"
	historyFile  = "history.json"
	sessionFile  = "session.json"
)

// FileSlices persists each state slice as its own JSON file under dir.
type FileSlices struct {
	dir string
}

// compile-time assertion
var _ Slices = (*FileSlices)(nil)

// NewFileSlices constructs a FileSlices rooted at dir. The directory is
// created lazily on the first write.
func NewFileSlices(dir string) *FileSlices {
	return &FileSlices{dir: dir}
}

// loadJSON decodes one slice file into out. Missing, empty, or corrupt files
// leave out untouched so the caller keeps its zero value.
func (s *FileSlices) loadJSON(name string, out interface{}) {
	b, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil || len(b) == 0 {
		return
	}
	_ = json.Unmarshal(b, out)
}

func (s *FileSlices) saveBytes(name string, b []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (s *FileSlices) saveJSON(name string, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.saveBytes(name, b)
}

func (s *FileSlices) LoadWishlist() []domain.Product {
	var wishlist []domain.Product
	s.loadJSON(wishlistFile, &wishlist)
	return wishlist
}

func (s *FileSlices) SaveWishlist(wishlist []domain.Product) error {
	return s.saveJSON(wishlistFile, wishlist)
}

func (s *FileSlices) LoadCart() []domain.CartItem {
	var cart []domain.CartItem
	s.loadJSON(cartFile, &cart)
	return cart
}

func (s *FileSlices) SaveCart(cart []domain.CartItem) error {
	return s.saveJSON(cartFile, cart)
}

func (s *FileSlices) LoadHistory() []domain.PurchaseRecord {
	var history []domain.PurchaseRecord
	s.loadJSON(historyFile, &history)
	return history
}

func (s *FileSlices) SaveHistory(history []domain.PurchaseRecord) error {
	return s.saveJSON(historyFile, history)
}

// LoadSession reads the admin flag. The flag is stored as the literal string
// "true" or "false"; anything else reads as false.
func (s *FileSlices) LoadSession() bool {
	b, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(b)) == "true"
}

func (s *FileSlices) SaveSession(isAdmin bool) error {
	v := "false"
	if isAdmin {
		v = "true"
	}
	return s.saveBytes(sessionFile, []byte(v))
}
