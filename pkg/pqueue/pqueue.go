// Package pqueue implements the lazy-invalidation versioned min-heap that
// the GDSF and S3GDSF policies use to find the minimum-priority resident.
//
// Priorities change in place as keys are re-accessed, which would normally
// require an O(log n) decrease-key operation. Instead, every priority
// update pushes a fresh heap entry tagged with a monotonically increasing
// per-key version; stale entries (whose version no longer matches the
// key's current version) are discarded lazily when they surface at the
// top.
package pqueue

import "container/heap"

// entry is one (priority, version, key) tuple, ordered by priority and then
// by version, so among equal priorities the lower version number surfaces
// first.
type entry struct {
	priority float64
	version  uint64
	key      uint64
}

type rawHeap []entry

func (h rawHeap) Len() int { return len(h) }
func (h rawHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].version < h[j].version
}
func (h rawHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *rawHeap) Push(x any)        { *h = append(*h, x.(entry)) }
func (h *rawHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// VersionLookup resolves a key's current version and residency. A Queue
// asks its owner (the policy) for this on every peek, since the Queue
// itself does not track residency or which version is live — that state
// belongs to the policy's per-key metadata.
type VersionLookup func(key uint64) (version uint64, resident bool)

// Queue is a lazy-invalidation min-heap over (priority, version, key).
type Queue struct {
	h rawHeap
}

// New returns an empty Queue.
func New() *Queue {
	q := &Queue{}
	heap.Init(&q.h)
	return q
}

// Push records a new (priority, version, key) entry. Call this every time a
// key's priority changes, after bumping its version in the owner's
// metadata.
func (q *Queue) Push(priority float64, version uint64, key uint64) {
	heap.Push(&q.h, entry{priority: priority, version: version, key: key})
}

// PeekValidMin returns the lowest-priority entry whose version is still
// current and whose key is still resident according to lookup, discarding
// stale entries it encounters along the way. ok is false if the queue holds
// no valid entry (i.e. the resident set is empty).
func (q *Queue) PeekValidMin(lookup VersionLookup) (priority float64, key uint64, ok bool) {
	for q.h.Len() > 0 {
		top := q.h[0]
		version, resident := lookup(top.key)
		if resident && version == top.version {
			return top.priority, top.key, true
		}
		heap.Pop(&q.h)
	}
	return 0, 0, false
}

// Len returns the number of entries currently held, including stale ones
// not yet pruned. Bounded by the number of priority updates issued.
func (q *Queue) Len() int {
	return q.h.Len()
}
