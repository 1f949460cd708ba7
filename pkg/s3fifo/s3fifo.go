// Package s3fifo implements the S3-FIFO replacement policy: a FIFO-based
// Small/Main two-segment cache with a ghost queue of recently evicted
// identifiers.
//
// https://s3fifo.com/
package s3fifo

import (
	"fmt"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/internal/deque"
	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/ghost"
)

const (
	maxFreq        = 3
	defaultSMRatio = 0.1
)

// Option configures a Policy at construction time.
type Option func(*config)

type config struct {
	smRatio    float64
	onEviction base.EvictionCallback
}

// WithSMRatio overrides the default 0.1 Small/Main capacity split.
func WithSMRatio(ratio float64) Option {
	return func(c *config) { c.smRatio = ratio }
}

// WithEvictionCallback registers a callback fired on every real eviction
// (not on S→M promotions or M-internal rotations).
func WithEvictionCallback(cb base.EvictionCallback) Option {
	return func(c *config) { c.onEviction = cb }
}

// Policy implements the S3-FIFO replacement discipline over a base.Store.
type Policy struct {
	noCopy internal.NoCopy

	store base.Store

	small *deque.Deque[uint64]
	main  *deque.Deque[uint64]
	ghost *ghost.FIFO
	freq  map[uint64]int

	sCap int
	mCap int

	onEviction base.EvictionCallback
}

var _ base.Policy = (*Policy)(nil)

// New constructs an S3-FIFO policy driving store. The Small/Main split
// defaults to sm_ratio=0.1; s_cap = floor(sm_ratio * capacity) is
// deliberately left unclamped at 0 for small capacities.
func New(store base.Store, opts ...Option) *Policy {
	if store.Capacity() <= 0 {
		panic(fmt.Sprintf("%v: store capacity must be positive", base.ErrConfig))
	}

	cfg := config{smRatio: defaultSMRatio}
	for _, opt := range opts {
		opt(&cfg)
	}

	sCap := int(cfg.smRatio * float64(store.Capacity()))
	mCap := store.Capacity() - sCap

	return &Policy{
		store:      store,
		small:      deque.New[uint64](),
		main:       deque.New[uint64](),
		ghost:      ghost.New(store.Capacity()),
		freq:       make(map[uint64]int),
		sCap:       sCap,
		mCap:       mCap,
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *Policy) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		p.freq[key] = capFreq(p.freq[key] + 1)
		return true
	}

	for p.store.Size() >= p.store.Capacity() {
		p.evict()
	}

	if p.ghost.Contains(key) {
		p.main.PushFront(key)
		_ = p.store.Add(key)
		p.ghost.Remove(key)
		p.rebalanceMain()
	} else {
		p.small.PushFront(key)
		_ = p.store.Add(key)
	}

	p.freq[key] = 0
	return false
}

// CurrentKeys returns the union of Small and Main queue contents. Use
// Segments for a view that keeps the S/M split visible.
func (p *Policy) CurrentKeys() []uint64 {
	s, m := p.Segments()
	return append(s, m...)
}

// Segments returns the Small and Main queues separately, head to tail.
func (p *Policy) Segments() (small, main []uint64) {
	return p.small.Values(), p.main.Values()
}

func (p *Policy) evict() {
	if p.small.Len() >= p.sCap {
		p.evictSmall()
	} else {
		p.evictMain()
	}
}

// evictSmall runs evict_S: pop the tail of Small; promote to
// Main if its frequency earned it, otherwise perform a real eviction to
// ghost. Repeats until one real eviction happens or Small empties.
func (p *Policy) evictSmall() {
	for {
		t, ok := p.small.PopBack()
		if !ok {
			return
		}
		f := p.freq[t]
		if f > 1 {
			p.main.PushFront(t)
			p.rebalanceMain()
			continue
		}
		p.ghost.Add(t)
		p.store.Delete(t)
		delete(p.freq, t)
		p.fireEviction(t)
		return
	}
}

// evictMain runs evict_M: pop the tail of Main; rotate back
// to the head with a decremented frequency if it still has credit,
// otherwise perform a real eviction to ghost.
func (p *Policy) evictMain() {
	for {
		t, ok := p.main.PopBack()
		if !ok {
			return
		}
		f := p.freq[t]
		if f > 0 {
			p.main.PushFront(t)
			p.freq[t] = f - 1
			continue
		}
		p.store.Delete(t)
		p.ghost.Add(t)
		delete(p.freq, t)
		p.fireEviction(t)
		return
	}
}

func (p *Policy) rebalanceMain() {
	for p.main.Len() > p.mCap {
		p.evictMain()
	}
}

func (p *Policy) fireEviction(key uint64) {
	if p.onEviction != nil {
		p.onEviction(base.EvictionReasonCapacity, key)
	}
}

func capFreq(v int) int {
	if v > maxFreq {
		return maxFreq
	}
	return v
}
