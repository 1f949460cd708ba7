// Package store implements the bounded resident-set abstraction that every
// policy in this module drives.
package store

import (
	"fmt"

	"github.com/DmitriyVTitov/size"
	"github.com/samber/kvcachepolicy/pkg/base"
)

// Store is the permissive resident-set implementation used by every policy
// in this module. Policies are responsible for evicting before an Add would
// exceed capacity; Store itself never refuses an Add, matching the
// contract every policy actually relies on.
type Store struct {
	capacity int
	ids      map[uint64]struct{}
}

var _ base.Store = (*Store)(nil)

// New returns a Store with the given fixed capacity. capacity must be
// positive.
func New(capacity int) *Store {
	if capacity <= 0 {
		panic(fmt.Sprintf("%v: capacity must be positive, got %d", base.ErrConfig, capacity))
	}
	return &Store{
		capacity: capacity,
		ids:      make(map[uint64]struct{}, capacity),
	}
}

// Add inserts k into the resident set.
func (s *Store) Add(k uint64) error {
	s.ids[k] = struct{}{}
	return nil
}

// Delete removes k if present; a no-op otherwise.
func (s *Store) Delete(k uint64) {
	delete(s.ids, k)
}

// Contains reports whether k is resident.
func (s *Store) Contains(k uint64) bool {
	_, ok := s.ids[k]
	return ok
}

// Size returns the number of resident identifiers.
func (s *Store) Size() int {
	return len(s.ids)
}

// Capacity returns the fixed maximum resident-set size.
func (s *Store) Capacity() int {
	return s.capacity
}

// ApproxBytes reports the resident set's approximate memory footprint.
func (s *Store) ApproxBytes() int64 {
	return int64(size.Of(s.ids))
}
