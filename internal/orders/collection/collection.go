// Package collection owns the authoritative list of orders known to the
// console and the currently displayed view derived from it.
//
// A Collection is not safe for concurrent use; the hosting layer serializes
// calls into it.
package collection

import (
	"fmt"
	"slices"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
	"github.com/dejobratic/orderdesk/internal/orders/view"
)

// Collection is the single source of truth for loaded orders.
type Collection struct {
	all       []domain.Order
	index     map[string]int
	displayed []domain.Order
	query     string
	sortKey   *view.SortKey
}

// New returns an empty collection.
func New() *Collection {
	return &Collection{index: make(map[string]int)}
}

// Load replaces the authoritative collection and resets the view to all
// orders, clearing any active search and sort. On invalid input the previous
// state is kept.
func (c *Collection) Load(orders []domain.Order) error {
	index := make(map[string]int, len(orders))
	for i, order := range orders {
		if err := order.Validate(); err != nil {
			return fmt.Errorf("order at position %d: %w", i, err)
		}
		if _, dup := index[order.ID]; dup {
			return fmt.Errorf("duplicate order id %q", order.ID)
		}
		index[order.ID] = i
	}

	c.all = slices.Clone(orders)
	c.index = index
	c.query = ""
	c.sortKey = nil
	c.displayed = slices.Clone(c.all)
	return nil
}

// Search re-derives the view from the authoritative collection. Any prior
// sort is discarded.
func (c *Collection) Search(query string) []domain.Order {
	c.query = query
	c.sortKey = nil
	c.displayed = view.Search(c.all, query)
	return c.Displayed()
}

// Sort orders the current view in place of the previous one.
func (c *Collection) Sort(key view.SortKey) []domain.Order {
	c.sortKey = &key
	c.displayed = view.Sort(c.displayed, key)
	return c.Displayed()
}

// Remove drops the order from both collections. Unknown ids are ignored.
func (c *Collection) Remove(id string) {
	pos, ok := c.index[id]
	if !ok {
		return
	}
	c.all = slices.Delete(c.all, pos, pos+1)
	c.reindex()
	c.refresh()
}

// UpdateStatus sets the status of the order in both collections.
func (c *Collection) UpdateStatus(id string, status domain.OrderStatus) error {
	pos, ok := c.index[id]
	if !ok {
		return &domain.NotFoundError{OrderID: id}
	}
	c.all[pos] = c.all[pos].WithStatus(status)
	c.refresh()
	return nil
}

// Find returns the authoritative copy of an order.
func (c *Collection) Find(id string) (domain.Order, bool) {
	pos, ok := c.index[id]
	if !ok {
		return domain.Order{}, false
	}
	return c.all[pos], true
}

// Displayed returns a copy of the rows currently shown.
func (c *Collection) Displayed() []domain.Order {
	return append([]domain.Order{}, c.displayed...)
}

// All returns a copy of the authoritative collection.
func (c *Collection) All() []domain.Order {
	return append([]domain.Order{}, c.all...)
}

// Query returns the active search text.
func (c *Collection) Query() string {
	return c.query
}

// SortKey returns the sort applied since the last search or load, if any.
func (c *Collection) SortKey() (view.SortKey, bool) {
	if c.sortKey == nil {
		return view.SortKey{}, false
	}
	return *c.sortKey, true
}

func (c *Collection) reindex() {
	c.index = make(map[string]int, len(c.all))
	for i, order := range c.all {
		c.index[order.ID] = i
	}
}

// refresh recomputes view membership from the authoritative collection and
// the active query. Surviving rows keep their display position; matching
// rows missing from the view are appended in authoritative order.
func (c *Collection) refresh() {
	matching := view.Search(c.all, c.query)
	byID := make(map[string]domain.Order, len(matching))
	for _, order := range matching {
		byID[order.ID] = order
	}

	next := make([]domain.Order, 0, len(matching))
	seen := make(map[string]struct{}, len(matching))
	for _, shown := range c.displayed {
		if order, ok := byID[shown.ID]; ok {
			next = append(next, order)
			seen[shown.ID] = struct{}{}
		}
	}
	for _, order := range matching {
		if _, ok := seen[order.ID]; !ok {
			next = append(next, order)
		}
	}
	c.displayed = next
}
