package pqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PeekValidMin(t *testing.T) {
	is := assert.New(t)

	q := New()
	versions := map[uint64]uint64{1: 0, 2: 0}
	resident := map[uint64]bool{1: true, 2: true}
	lookup := func(key uint64) (uint64, bool) {
		return versions[key], resident[key]
	}

	q.Push(5.0, 0, 1)
	q.Push(3.0, 0, 2)

	prio, key, ok := q.PeekValidMin(lookup)
	is.True(ok)
	is.Equal(3.0, prio)
	is.Equal(uint64(2), key)
}

func TestQueue_StaleEntriesAreSkipped(t *testing.T) {
	is := assert.New(t)

	q := New()
	versions := map[uint64]uint64{1: 1}
	resident := map[uint64]bool{1: true}
	lookup := func(key uint64) (uint64, bool) {
		return versions[key], resident[key]
	}

	q.Push(1.0, 0, 1) // stale: version 0, current is 1
	q.Push(5.0, 1, 1) // current

	prio, key, ok := q.PeekValidMin(lookup)
	is.True(ok)
	is.Equal(5.0, prio)
	is.Equal(uint64(1), key)
}

func TestQueue_EvictedKeyIsSkipped(t *testing.T) {
	is := assert.New(t)

	q := New()
	lookup := func(key uint64) (uint64, bool) {
		return 0, false // nothing is resident
	}

	q.Push(1.0, 0, 1)
	q.Push(2.0, 0, 2)

	_, _, ok := q.PeekValidMin(lookup)
	is.False(ok)
	is.Equal(0, q.Len())
}

func TestQueue_EmptyQueue(t *testing.T) {
	q := New()
	_, _, ok := q.PeekValidMin(func(uint64) (uint64, bool) { return 0, false })
	assert.False(t, ok)
}
