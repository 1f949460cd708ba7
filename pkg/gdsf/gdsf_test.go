package gdsf

import (
	"testing"

	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/store"
	"github.com/stretchr/testify/assert"
)

func TestPolicy_MissThenHit(t *testing.T) {
	is := assert.New(t)

	p := New(store.New(3))

	is.False(p.Access(1, []uint64{1}, 1))
	is.True(p.Access(1, []uint64{1}, 1))
}

// capacity 2, pos_alpha=1.
// Traces {1,2} 1, {1,2} 1, {3} 1 -> admission of 3 is rejected.
func TestPolicy_ScenarioB_AdmissionReject(t *testing.T) {
	is := assert.New(t)

	s := store.New(2)
	p := New(s, WithPosAlpha(1.0))

	req := []uint64{1, 2}
	is.False(p.Access(1, req, 1))
	is.False(p.Access(2, req, 1))
	is.True(p.Access(1, req, 1))
	is.True(p.Access(2, req, 1))

	is.False(p.Access(3, []uint64{3}, 1))

	is.True(s.Contains(1))
	is.True(s.Contains(2))
	is.False(s.Contains(3))
}

func TestPolicy_AdmissionTieAdmitsOnEqualPriority(t *testing.T) {
	is := assert.New(t)

	s := store.New(1)
	p := New(s, WithPosAlpha(0))

	is.False(p.Access(1, nil, 1)) // admitted, freq=1, prio=0+1+0=1

	// key 2 misses with the same priority (freq 1, no position bonus):
	// prio_new == min_pr must admit (tie-break: == admits, < rejects).
	is.False(p.Access(2, nil, 1))

	is.False(s.Contains(1))
	is.True(s.Contains(2))
}

// clock is monotonically non-decreasing across
// any sequence of evictions.
func TestPolicy_ScenarioF_ClockMonotonic(t *testing.T) {
	is := assert.New(t)

	p := New(store.New(2), WithPosAlpha(0))

	var lastClock float64
	ids := []uint64{1, 2, 3, 4, 1, 5, 6, 2, 7, 8}
	for _, id := range ids {
		p.Access(id, nil, 1)
		is.GreaterOrEqual(p.clock, lastClock)
		lastClock = p.clock
	}
}

func TestPolicy_RejectionFiresCallbackWithRejectedReason(t *testing.T) {
	is := assert.New(t)

	var reasons []base.EvictionReason
	s := store.New(2)
	p := New(s, WithPosAlpha(1.0), WithEvictionCallback(func(reason base.EvictionReason, key uint64) {
		reasons = append(reasons, reason)
	}))

	req := []uint64{1, 2}
	p.Access(1, req, 1)
	p.Access(2, req, 1)
	p.Access(1, req, 1)
	p.Access(2, req, 1)
	p.Access(3, []uint64{3}, 1)

	is.Contains(reasons, base.EvictionReasonRejected)
}
