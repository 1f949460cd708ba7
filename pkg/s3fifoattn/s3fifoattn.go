// Package s3fifoattn implements the positional-attention variant of S3-FIFO:
// the offset a newly inserted key starts with is seeded from
// its position within the current request's prefix-id list rather than
// always starting at zero.
package s3fifoattn

import (
	"fmt"
	"hash/fnv"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/internal/deque"
	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/ghost"
)

const (
	maxOffset      = 3
	defaultSMRatio = 0.05
)

// Option configures a Policy at construction time.
type Option func(*config)

type config struct {
	smRatio    float64
	onEviction base.EvictionCallback
}

// WithSMRatio overrides the default 0.05 Small/Main capacity split.
func WithSMRatio(ratio float64) Option {
	return func(c *config) { c.smRatio = ratio }
}

// WithEvictionCallback registers a callback fired on every real eviction.
func WithEvictionCallback(cb base.EvictionCallback) Option {
	return func(c *config) { c.onEviction = cb }
}

// Policy implements S3-FIFO with positional offset seeding.
type Policy struct {
	noCopy internal.NoCopy

	store base.Store

	small *deque.Deque[uint64]
	main  *deque.Deque[uint64]
	ghost *ghost.FIFO
	offset map[uint64]int

	sCap int
	mCap int

	onEviction base.EvictionCallback

	// per-request offset cache, keyed by a content fingerprint of the
	// request's prefix-id list rather than Go reference identity — a
	// fingerprint is a handle the caller doesn't need to manage separately.
	cachedFingerprint uint64
	cachedHasRequest  bool
	cachedOffsets     map[uint64]int
}

var _ base.Policy = (*Policy)(nil)

// New constructs an S3-FIFO-Attn policy driving store.
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
		offset:     make(map[uint64]int),
		sCap:       sCap,
		mCap:       mCap,
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *Policy) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		p.offset[key] = capOffset(p.offset[key] + 1)
		return true
	}

	for p.store.Size() >= p.store.Capacity() {
		p.evict()
	}

	initOffset := p.initOffset(key, requestPrefixIDs)

	if p.ghost.Contains(key) {
		p.main.PushFront(key)
		_ = p.store.Add(key)
		p.ghost.Remove(key)
		p.rebalanceMain()
	} else {
		p.small.PushFront(key)
		_ = p.store.Add(key)
	}

	p.offset[key] = initOffset
	return false
}

// CurrentKeys returns the union of Small and Main queue contents.
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

func (p *Policy) evictSmall() {
	for {
		t, ok := p.small.PopBack()
		if !ok {
			return
		}
		if p.offset[t] > 0 {
			p.main.PushFront(t)
			p.rebalanceMain()
			continue
		}
		p.ghost.Add(t)
		p.store.Delete(t)
		delete(p.offset, t)
		p.fireEviction(t)
		return
	}
}

func (p *Policy) evictMain() {
	for {
		t, ok := p.main.PopBack()
		if !ok {
			return
		}
		if off := p.offset[t]; off > 0 {
			p.main.PushFront(t)
			p.offset[t] = off - 1
			continue
		}
		p.store.Delete(t)
		p.ghost.Add(t)
		delete(p.offset, t)
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

// initOffset returns the seed offset for key given the current request's
// prefix-id list, recomputing the run-split map only when the list's
// fingerprint changes from the previous call.
func (p *Policy) initOffset(key uint64, requestPrefixIDs []uint64) int {
	if len(requestPrefixIDs) == 0 {
		return 0
	}

	fp := fingerprint(requestPrefixIDs)
	if !p.cachedHasRequest || p.cachedFingerprint != fp {
		p.cachedOffsets = computeRunOffsets(requestPrefixIDs)
		p.cachedFingerprint = fp
		p.cachedHasRequest = true
	}

	return capOffset(p.cachedOffsets[key])
}

// computeRunOffsets splits seq into maximal contiguous runs (seq[i] ==
// seq[i-1]+1) and assigns each run an offset counting back from the last
// run, which gets offset 0.
func computeRunOffsets(seq []uint64) map[uint64]int {
	runs := [][]uint64{{seq[0]}}
	for i := 1; i < len(seq); i++ {
		if seq[i] == seq[i-1]+1 {
			last := &runs[len(runs)-1]
			*last = append(*last, seq[i])
		} else {
			runs = append(runs, []uint64{seq[i]})
		}
	}

	out := make(map[uint64]int, len(seq))
	for idx, run := range runs {
		off := len(runs) - 1 - idx
		for _, id := range run {
			out[id] = off
		}
	}
	return out
}

func fingerprint(ids []uint64) uint64 {
	h := fnv.New64a()
	buf := make([]byte, 8)
	for _, id := range ids {
		for i := 0; i < 8; i++ {
			buf[i] = byte(id >> (8 * i))
		}
		h.Write(buf)
	}
	return h.Sum64()
}

func capOffset(v int) int {
	if v > maxOffset {
		return maxOffset
	}
	return v
}
