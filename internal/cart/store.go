package cart

import (
	"fmt"
	"sync"
)

// Variant describes the purchasable unit a product detail page adds to the
// cart: one product in one weight presentation at one price.
type Variant struct {
	ProductID string `json:"productId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Price     int    `json:"price" validate:"required,gt=0"`
	Weight    int    `json:"weight" validate:"required,gt=0"`
	ImageURL  string `json:"image_url"`
}

// ItemID derives the cart line identity for a variant. Two adds of the same
// product and weight land on the same line.
func ItemID(productID string, weight int) string {
	return fmt.Sprintf("%s-%d", productID, weight)
}

// Item is one cart line. Price and weight are fixed at insertion; only the
// quantity moves afterwards.
type Item struct {
	ID       string `json:"id"`
	Variant
	Quantity int `json:"quantity"`
}

// Subscriber receives a snapshot of the full cart after every mutation.
type Subscriber func(items []Item)

// Store is one session's in-memory cart. All operations are total: they
// cannot fail, and callers never observe a partially applied mutation.
type Store struct {
	mu          sync.Mutex
	items       []Item
	subscribers []Subscriber
}

// NewStore returns an empty cart.
func NewStore() *Store {
	return &Store{}
}

// Add merges the variant into the cart: an existing line for the same product
// and weight gains one unit, otherwise a new line is appended with quantity 1.
// Insertion order is preserved across merges.
func (s *Store) Add(variant Variant) {
	s.mu.Lock()
	id := ItemID(variant.ProductID, variant.Weight)
	merged := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, Item{ID: id, Variant: variant, Quantity: 1})
	}
	s.notifyLocked()
}

// Remove drops the line with the given id. Unknown ids are a no-op, but
// subscribers are still notified so observers converge on the same snapshot.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.notifyLocked()
}

// UpdateQuantity replaces the quantity of the line with the given id. A
// quantity of zero or less removes the line. Unknown ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity <= 0 {
		s.Remove(id)
		return
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			break
		}
	}
	s.notifyLocked()
}

// Clear empties the cart.
func (s *Store) Clear() {
	s.mu.Lock()
	s.items = nil
	s.notifyLocked()
}

// Items returns a copy of the current lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Len returns the number of distinct lines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation. Callbacks run synchronously under the store's lock, so snapshots
// arrive in mutation order.
func (s *Store) Subscribe(fn Subscriber) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) snapshotLocked() []Item {
	snapshot := make([]Item, len(s.items))
	copy(snapshot, s.items)
	return snapshot
}

// notifyLocked fans a fresh snapshot out to every subscriber and releases the
// lock. Delivery happens under the lock so each subscriber sees snapshots in
// mutation order; subscribers must not call back into the store.
func (s *Store) notifyLocked() {
	defer s.mu.Unlock()
	snapshot := s.snapshotLocked()
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
}
