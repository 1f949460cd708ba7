package lfu

import "container/list"

// orderedSet is an insertion-ordered set of uint64 identifiers with O(1)
// add/remove/membership and O(1) access to the oldest member. It backs
// min_set, giving a deterministic, reproducible victim choice on ties
// rather than arbitrary set-iteration order, so ties break
// toward the oldest insertion.
type orderedSet struct {
	ll    *list.List
	index map[uint64]*list.Element
}

func newOrderedSet() *orderedSet {
	return &orderedSet{
		ll:    list.New(),
		index: make(map[uint64]*list.Element),
	}
}

func (s *orderedSet) add(k uint64) {
	if _, ok := s.index[k]; ok {
		return
	}
	s.index[k] = s.ll.PushBack(k)
}

func (s *orderedSet) remove(k uint64) {
	if e, ok := s.index[k]; ok {
		s.ll.Remove(e)
		delete(s.index, k)
	}
}

func (s *orderedSet) contains(k uint64) bool {
	_, ok := s.index[k]
	return ok
}

func (s *orderedSet) reset(k uint64) {
	s.ll.Init()
	s.index = make(map[uint64]*list.Element, 1)
	s.add(k)
}

func (s *orderedSet) len() int {
	return s.ll.Len()
}

// oldest returns the first-inserted member, or false if the set is empty.
func (s *orderedSet) oldest() (uint64, bool) {
	e := s.ll.Front()
	if e == nil {
		return 0, false
	}
	return e.Value.(uint64), true
}

// values returns the members in insertion order.
func (s *orderedSet) values() []uint64 {
	out := make([]uint64, 0, s.ll.Len())
	for e := s.ll.Front(); e != nil; e = e.Next() {
		out = append(out, e.Value.(uint64))
	}
	return out
}
