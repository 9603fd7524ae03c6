// Package catalog provides an insertion-ordered keyed collection used for
// every editable list in a trip: lodgings, activities, flights and expenses.
package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	// ErrNotFound indicates no item has the requested id.
	ErrNotFound = errors.New("catalog: item not found")
	// ErrDuplicate indicates an item with the same id already exists.
	ErrDuplicate = errors.New("catalog: duplicate id")
	// ErrLastItem indicates a delete would drop the collection below its minimum.
	ErrLastItem = errors.New("catalog: cannot remove the last item")
)

// Keyed is implemented by value types stored in a Collection.
type Keyed[T any] interface {
	Key() string
	WithKey(id string) T
}

// Toggler is a Keyed item that can be switched on and off.
type Toggler[T any] interface {
	Keyed[T]
	IsEnabled() bool
	WithEnabled(on bool) T
}

// Collection maps id -> item and preserves insertion order.
type Collection[T Keyed[T]] struct {
	order []string
	items map[string]T
}

// New builds a collection from items. Items without an id get a fresh one;
// later duplicates of an id are dropped.
func New[T Keyed[T]](items ...T) *Collection[T] {
	c := &Collection[T]{items: make(map[string]T, len(items))}
	for _, it := range items {
		_, _ = c.Add(it)
	}
	return c
}

// Add appends an item, assigning a uuid when its id is empty.
func (c *Collection[T]) Add(item T) (T, error) {
	if item.Key() == "" {
		item = item.WithKey(uuid.NewString())
	}
	id := item.Key()
	if _, exists := c.items[id]; exists {
		return item, fmt.Errorf("%w: %s", ErrDuplicate, id)
	}
	c.items[id] = item
	c.order = append(c.order, id)
	return item, nil
}

// Get returns the item with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	it, ok := c.items[id]
	return it, ok
}

// Update replaces an existing item in place, keeping its position.
func (c *Collection[T]) Update(item T) error {
	id := item.Key()
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	c.items[id] = item
	return nil
}

// Delete removes the item with the given id.
func (c *Collection[T]) Delete(id string) error {
	return c.DeleteKeeping(id, 0)
}

// DeleteKeeping removes the item unless that would leave fewer than keep items.
func (c *Collection[T]) DeleteKeeping(id string, keep int) error {
	if _, ok := c.items[id]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if len(c.order) <= keep {
		return ErrLastItem
	}
	delete(c.items, id)
	for i, k := range c.order {
		if k == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Items returns the items in insertion order. The slice is a fresh copy.
func (c *Collection[T]) Items() []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of items.
func (c *Collection[T]) Len() int {
	return len(c.order)
}

// First returns the earliest inserted item.
func (c *Collection[T]) First() (T, bool) {
	var zero T
	if len(c.order) == 0 {
		return zero, false
	}
	return c.items[c.order[0]], true
}

// Toggle flips the enabled flag of the item with the given id.
func Toggle[T Toggler[T]](c *Collection[T], id string) (T, error) {
	it, ok := c.Get(id)
	if !ok {
		return it, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	it = it.WithEnabled(!it.IsEnabled())
	c.items[id] = it
	return it, nil
}
