// Package registry owns the set of live falling items. Items live in a block
// arena addressed by slot; an intmap index resolves item ids to slots.
//
// A Registry is not safe for concurrent use. Callers serialize access, and
// every method is a single atomic step from the caller's point of view.
package registry

import (
	"cmp"
	"errors"
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
)

var (
	// ErrFull is returned by Insert when the registry holds Limit items.
	ErrFull = errors.New("registry: concurrency cap reached")
	// ErrDuplicate is returned by Insert when the item id is already live.
	ErrDuplicate = errors.New("registry: duplicate item id")
)

// Rand is the random source used for id suffixes.
type Rand interface {
	Uint32() uint32
}

// Registry is an arena of FallingItems keyed by ItemId, capped at Limit entries.
type Registry struct {
	items *arena[FallingItem]
	index *intmap.Map[ItemId, int]
	limit int
	seq   uint32
	rng   Rand
}

// New creates a registry holding at most limit items.
func New(limit int, rng Rand) *Registry {
	if limit <= 0 {
		panic("registry limit must be positive")
	}
	if rng == nil {
		panic("registry requires a random source")
	}
	return &Registry{
		items: &arena[FallingItem]{},
		index: intmap.New[ItemId, int](limit),
		limit: limit,
		rng:   rng,
	}
}

// NextID returns a fresh id that is not live in the registry.
func (r *Registry) NextID() ItemId {
	for {
		r.seq++
		id := NewItemId(r.seq, r.rng.Uint32())
		if id == 0 {
			continue
		}
		if _, live := r.index.Get(id); !live {
			return id
		}
	}
}

// Insert adds the item and returns its id. A zero item.ID is replaced with NextID.
func (r *Registry) Insert(item FallingItem) (ItemId, error) {
	if r.items.Len() >= r.limit {
		return 0, ErrFull
	}
	if item.ID == 0 {
		item.ID = r.NextID()
	} else if _, live := r.index.Get(item.ID); live {
		return 0, ErrDuplicate
	}

	slot := r.items.Append(item)
	r.index.Put(item.ID, slot)
	return item.ID, nil
}

// Remove deletes the item and returns it. The second result is false when the
// id is not live, which is the case for every id after its first removal.
func (r *Registry) Remove(id ItemId) (FallingItem, bool) {
	slot, ok := r.index.Get(id)
	if !ok {
		return FallingItem{}, false
	}
	item := *r.items.Get(slot)
	r.index.Del(id)
	r.items.Delete(slot)
	return item, true
}

// RemoveFunc deletes every item for which pred returns true and returns them in slot order.
func (r *Registry) RemoveFunc(pred func(*FallingItem) bool) []FallingItem {
	var removed []FallingItem
	for slot := range r.items.Iter() {
		item := r.items.Get(slot)
		if !pred(item) {
			continue
		}
		removed = append(removed, *item)
		r.index.Del(item.ID)
		r.items.Delete(slot)
	}
	return removed
}

// Get returns a pointer to the live item, or nil. The pointer is only valid
// until the next mutation of the registry.
func (r *Registry) Get(id ItemId) *FallingItem {
	slot, ok := r.index.Get(id)
	if !ok {
		return nil
	}
	return r.items.Get(slot)
}

// Has reports whether the id is live.
func (r *Registry) Has(id ItemId) bool {
	_, ok := r.index.Get(id)
	return ok
}

// Len returns the number of live items.
func (r *Registry) Len() int {
	return r.items.Len()
}

// Limit returns the concurrency cap.
func (r *Registry) Limit() int {
	return r.limit
}

// Full reports whether another Insert would fail with ErrFull.
func (r *Registry) Full() bool {
	return r.items.Len() >= r.limit
}

// All iterates live items in slot order. Items may be mutated in place, and
// the current item may be removed during iteration.
func (r *Registry) All() iter.Seq[*FallingItem] {
	return func(yield func(*FallingItem) bool) {
		for slot := range r.items.Iter() {
			if !yield(r.items.Get(slot)) {
				return
			}
		}
	}
}

// At returns the most recently spawned item whose bounds contain the point.
func (r *Registry) At(x, y float64) (ItemId, bool) {
	var best ItemId
	found := false
	for item := range r.All() {
		if !item.Contains(x, y) {
			continue
		}
		if !found || item.ID.Seq() > best.Seq() {
			best = item.ID
			found = true
		}
	}
	return best, found
}

// Snapshot copies the live items, ordered by spawn sequence.
func (r *Registry) Snapshot() []FallingItem {
	out := make([]FallingItem, 0, r.items.Len())
	for item := range r.All() {
		out = append(out, *item)
	}
	slices.SortFunc(out, func(a, b FallingItem) int {
		return cmp.Compare(a.ID.Seq(), b.ID.Seq())
	})
	return out
}

// Clear removes every item. The id sequence keeps counting.
func (r *Registry) Clear() {
	r.items.Reset()
	r.index.Clear()
}

// Compact packs the arena and rewrites the index to the new slots.
func (r *Registry) Compact() {
	for _, newSlot := range r.items.Compact() {
		r.index.Put(r.items.Get(newSlot).ID, newSlot)
	}
}
