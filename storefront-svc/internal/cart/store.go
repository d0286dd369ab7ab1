package cart

import (
	"sync"

	"foodcourt/storefront-svc/internal/domain"
)

// Line holds a copy of the menu item taken when it was first added.
type Line struct {
	MenuItem       domain.MenuItem `json:"menu_item"`
	Quantity       int             `json:"quantity"`
	RestaurantName string          `json:"restaurant_name"`
}

// Store is the in-memory cart of one shopping session. Lines keep
// insertion order and there is at most one line per menu item id.
//
// Notifications are delivered outside mu but under notifyMu, which is taken
// before mu is released, so observers see them in mutation order. A Notifier
// must not mutate the store it observes.
type Store struct {
	mu       sync.Mutex
	notifyMu sync.Mutex
	lines    []Line
	notifier Notifier
}

func NewStore(notifier Notifier) *Store {
	return &Store{notifier: notifier}
}

func (s *Store) AddItem(item domain.MenuItem, restaurantName string) {
	s.mu.Lock()
	var n Notification
	if idx := s.indexOf(item.ID); idx >= 0 {
		s.lines[idx].Quantity++
		n = Notification{Level: LevelSuccess, Message: "Added another " + item.Name + " to cart"}
	} else {
		s.lines = append(s.lines, Line{MenuItem: item, Quantity: 1, RestaurantName: restaurantName})
		n = Notification{Level: LevelSuccess, Message: item.Name + " added to cart"}
	}
	s.unlockAndNotify(&n)
}

// RemoveItem is a no-op for ids not in the cart.
func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	removed, ok := s.remove(itemID)
	if !ok {
		s.mu.Unlock()
		return
	}
	s.unlockAndNotify(&Notification{Level: LevelInfo, Message: removed.MenuItem.Name + " removed from cart"})
}

// UpdateQuantity overwrites the quantity of an existing line. A quantity of
// zero or less removes the line.
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(itemID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(itemID); idx >= 0 {
		s.lines[idx].Quantity = quantity
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.unlockAndNotify(&Notification{Level: LevelInfo, Message: "Cart cleared"})
}

// RemoveOrdered subtracts the ordered quantities from the cart. Units added
// after the order snapshot was taken stay in the cart.
func (s *Store) RemoveOrdered(ordered []Line) {
	s.mu.Lock()
	for _, o := range ordered {
		idx := s.indexOf(o.MenuItem.ID)
		if idx < 0 {
			continue
		}
		s.lines[idx].Quantity -= o.Quantity
		if s.lines[idx].Quantity <= 0 {
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		}
	}
	if len(s.lines) == 0 {
		s.lines = nil
		s.unlockAndNotify(&Notification{Level: LevelInfo, Message: "Cart cleared"})
		return
	}
	s.unlockAndNotify(&Notification{Level: LevelInfo, Message: "Ordered items removed from cart"})
}

// Total is the subtotal of all lines, before delivery and taxes.
func (s *Store) Total() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Subtotal(s.lines)
}

func (s *Store) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, line := range s.lines {
		count += line.Quantity
	}
	return count
}

// Summary is a consistent view of count and subtotal.
type Summary struct {
	ItemCount int   `json:"item_count"`
	Subtotal  int64 `json:"subtotal"`
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{Subtotal: Subtotal(s.lines)}
	for _, line := range s.lines {
		sum.ItemCount += line.Quantity
	}
	return sum
}

func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Quantity(itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(itemID); idx >= 0 {
		return s.lines[idx].Quantity
	}
	return 0
}

// RestaurantName reports the restaurant of the first line; it is what the
// cart and checkout views display.
func (s *Store) RestaurantName() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return ""
	}
	return s.lines[0].RestaurantName
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}

func (s *Store) indexOf(itemID string) int {
	for i := range s.lines {
		if s.lines[i].MenuItem.ID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) remove(itemID string) (Line, bool) {
	idx := s.indexOf(itemID)
	if idx < 0 {
		return Line{}, false
	}
	removed := s.lines[idx]
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
	return removed, true
}

// unlockAndNotify must be called with mu held.
func (s *Store) unlockAndNotify(n *Notification) {
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	if s.notifier != nil {
		s.notifier.Notify(*n)
	}
}
