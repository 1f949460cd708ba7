// Package s3gdsf implements S3_GDSF: the S3-FIFO eviction
// discipline gated by a GDSF-style admission priority. A miss's priority is
// checked against the current minimum resident priority before any eviction
// happens; if it loses, the identifier is rejected outright rather than
// displacing a higher-priority resident.
package s3gdsf

import (
	"fmt"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/internal/deque"
	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/ghost"
	"github.com/samber/kvcachepolicy/pkg/pqueue"
)

const (
	maxFreq        = 3
	defaultBetaPos = 1.0
)

// Option configures a Policy at construction time.
type Option func(*config)

type config struct {
	betaPos    float64
	onEviction base.EvictionCallback
}

// WithBetaPos overrides the default 1.0 position-bias weight.
func WithBetaPos(beta float64) Option {
	return func(c *config) { c.betaPos = beta }
}

// WithEvictionCallback registers a callback fired on every real eviction and
// every admission-gate rejection.
func WithEvictionCallback(cb base.EvictionCallback) Option {
	return func(c *config) { c.onEviction = cb }
}

type meta struct {
	priority float64
	version  uint64
}

// Policy implements S3_GDSF.
type Policy struct {
	noCopy internal.NoCopy

	store base.Store

	small *deque.Deque[uint64]
	main  *deque.Deque[uint64]
	ghost *ghost.FIFO
	freq  map[uint64]int
	meta  map[uint64]*meta
	heap  *pqueue.Queue
	clock float64

	sCap int
	mCap int

	betaPos float64

	onEviction base.EvictionCallback
}

var _ base.Policy = (*Policy)(nil)

// New constructs an S3_GDSF policy driving store. s_cap = max(1, capacity /
// 10); unlike plain S3FIFO, S3_GDSF clamps s_cap to at least 1.
func New(store base.Store, opts ...Option) *Policy {
	if store.Capacity() <= 0 {
		panic(fmt.Sprintf("%v: store capacity must be positive", base.ErrConfig))
	}

	cfg := config{betaPos: defaultBetaPos}
	for _, opt := range opts {
		opt(&cfg)
	}

	sCap := store.Capacity() / 10
	if sCap < 1 {
		sCap = 1
	}
	mCap := store.Capacity() - sCap

	return &Policy{
		store:      store,
		small:      deque.New[uint64](),
		main:       deque.New[uint64](),
		ghost:      ghost.New(store.Capacity()),
		freq:       make(map[uint64]int),
		meta:       make(map[uint64]*meta),
		heap:       pqueue.New(),
		sCap:       sCap,
		mCap:       mCap,
		betaPos:    cfg.betaPos,
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *Policy) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		f := capFreq(p.freq[key] + 1)
		p.freq[key] = f
		prio := p.priority(f, key, requestPrefixIDs)
		p.updateMetaAndHeap(key, prio)
		return true
	}

	prioNew := p.priority(1, key, requestPrefixIDs)

	if p.store.Size() >= p.store.Capacity() {
		minPr, _, ok := p.heap.PeekValidMin(p.lookup)
		if ok && prioNew < minPr {
			if p.onEviction != nil {
				p.onEviction(base.EvictionReasonRejected, key)
			}
			return false
		}
		p.ensureSpaceOneEviction()
	}

	if p.ghost.Contains(key) {
		p.main.PushFront(key)
		_ = p.store.Add(key)
		p.ghost.Remove(key)
		p.updateMetaAndHeap(key, prioNew)
		p.rebalanceMain()
	} else {
		p.small.PushFront(key)
		_ = p.store.Add(key)
		p.updateMetaAndHeap(key, prioNew)
	}

	p.freq[key] = 0
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

func (p *Policy) priority(freq int, key uint64, requestPrefixIDs []uint64) float64 {
	return p.clock + float64(freq) + p.posBias(key, requestPrefixIDs)
}

// posBias rewards keys appearing earlier in the request's prefix list:
// beta_pos / (1 + idx), 0 if key is absent or the list is empty.
func (p *Policy) posBias(key uint64, requestPrefixIDs []uint64) float64 {
	for i, id := range requestPrefixIDs {
		if id == key {
			return p.betaPos / float64(1+i)
		}
	}
	return 0
}

func (p *Policy) updateMetaAndHeap(key uint64, priority float64) {
	m, ok := p.meta[key]
	if !ok {
		m = &meta{priority: priority}
		p.meta[key] = m
	} else {
		m.priority = priority
		m.version++
	}
	p.heap.Push(m.priority, m.version, key)
}

func (p *Policy) lookup(key uint64) (version uint64, resident bool) {
	m, ok := p.meta[key]
	if !ok {
		return 0, false
	}
	return m.version, p.store.Contains(key)
}

func (p *Policy) ensureSpaceOneEviction() {
	if p.small.Len() >= p.sCap {
		p.evictSmallOnce()
	} else {
		p.evictMainOnce()
	}
}

func (p *Policy) evictSmallOnce() {
	for {
		t, ok := p.small.PopBack()
		if !ok {
			return
		}
		if p.freq[t] > 1 {
			p.main.PushFront(t)
			p.rebalanceMain()
			continue
		}
		p.realEvict(t)
		return
	}
}

func (p *Policy) evictMainOnce() {
	for {
		t, ok := p.main.PopBack()
		if !ok {
			return
		}
		if f := p.freq[t]; f > 0 {
			p.main.PushFront(t)
			p.freq[t] = f - 1
			continue
		}
		p.realEvict(t)
		return
	}
}

func (p *Policy) rebalanceMain() {
	for p.main.Len() > p.mCap {
		p.evictMainOnce()
	}
}

func (p *Policy) realEvict(key uint64) {
	p.store.Delete(key)
	p.ghost.Add(key)

	prio := p.clock
	if m, ok := p.meta[key]; ok {
		prio = m.priority
	}
	if p.clock < prio {
		p.clock = prio
	}

	delete(p.meta, key)
	delete(p.freq, key)

	if p.onEviction != nil {
		p.onEviction(base.EvictionReasonCapacity, key)
	}
}
