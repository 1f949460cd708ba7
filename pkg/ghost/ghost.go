// Package ghost implements the bounded FIFO with O(1) membership that the
// S3-FIFO policy family uses to remember recently evicted identifiers.
package ghost

import "container/list"

// FIFO is a bounded, insertion-ordered set of uint64 identifiers. Adding an
// already-present key refreshes it to the head, treating a refresh as a
// new arrival.
type FIFO struct {
	capacity int
	ll       *list.List
	index    map[uint64]*list.Element
	counter  uint64
}

// New returns an empty ghost FIFO bounded to capacity entries. capacity is
// clamped to at least 1.
func New(capacity int) *FIFO {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFO{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[uint64]*list.Element, capacity),
	}
}

// Contains reports whether k is currently tracked.
func (g *FIFO) Contains(k uint64) bool {
	_, ok := g.index[k]
	return ok
}

// Add inserts k at the head. If k is already present it is refreshed to the
// head rather than duplicated. If the FIFO is over capacity afterward, the
// tail (oldest arrival) is dropped.
func (g *FIFO) Add(k uint64) {
	g.counter++
	if e, ok := g.index[k]; ok {
		g.ll.MoveToFront(e)
		return
	}
	g.index[k] = g.ll.PushFront(k)

	for g.ll.Len() > g.capacity {
		tail := g.ll.Back()
		if tail == nil {
			break
		}
		g.ll.Remove(tail)
		delete(g.index, tail.Value.(uint64))
	}
}

// Remove deletes k if present; a no-op otherwise.
func (g *FIFO) Remove(k uint64) {
	if e, ok := g.index[k]; ok {
		g.ll.Remove(e)
		delete(g.index, k)
	}
}

// Len returns the number of tracked identifiers.
func (g *FIFO) Len() int {
	return g.ll.Len()
}
