package cart

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Item is one line in a shopper's cart. Name, image and price are display
// snapshots copied when the item is added; they are not kept in sync with the
// product catalog.
type Item struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice,omitempty"`
	Quantity      int              `json:"quantity"`
}

// Store is the single source of truth for one shopper's cart. Items are keyed
// by product id; adding an existing id merges quantities instead of appending
// a duplicate line. Safe for concurrent use by request handlers.
type Store struct {
	mu     sync.Mutex
	items  []Item
	isOpen bool
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// AddItem appends the item or, when an entry with the same id exists,
// increments its quantity. A non-positive quantity defaults to 1.
func (s *Store) AddItem(item Item) {
	qty := item.Quantity
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == item.ID {
			s.items[i].Quantity += qty
			return
		}
	}

	item.Quantity = qty
	s.items = append(s.items, item)
}

// RemoveItem deletes the entry with the given id. Unknown ids are a no-op.
func (s *Store) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity replaces the quantity for the matching entry. Quantities
// below 1 are rejected; callers must use RemoveItem to drop a line. Unknown
// ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
}

// Items returns a copy of the current cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports how many distinct lines the cart holds.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal is the sum of price times quantity over all lines, in the catalog
// base currency. Display-currency conversion never applies here.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// IsOpen reports whether the cart panel is currently surfaced in the UI.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// SetOpen toggles the cart panel flag. Independent of cart contents.
func (s *Store) SetOpen(open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = open
}
