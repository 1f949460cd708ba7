package store

import (
	"fmt"

	"github.com/samber/kvcachepolicy/pkg/base"
)

// StrictStore behaves like Store except Add refuses to exceed capacity,
// returning base.ErrCapacityExceeded. This is an optional strictness a
// caller may opt into to catch a policy bug that forgets to evict.
type StrictStore struct {
	*Store
}

var _ base.Store = (*StrictStore)(nil)

// NewStrict returns a StrictStore with the given fixed capacity.
func NewStrict(capacity int) *StrictStore {
	return &StrictStore{Store: New(capacity)}
}

// Add inserts k, or returns base.ErrCapacityExceeded if the resident set is
// already at capacity and k is not already present.
func (s *StrictStore) Add(k uint64) error {
	if !s.Contains(k) && s.Size() >= s.Capacity() {
		return fmt.Errorf("%w: capacity=%d", base.ErrCapacityExceeded, s.Capacity())
	}
	return s.Store.Add(k)
}
