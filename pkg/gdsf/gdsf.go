// Package gdsf implements the GDSF priority-with-admission-gate replacement
// policy: a virtual clock plus per-key frequency and a
// positional bonus define a priority; the admission gate rejects a new
// identifier outright when the cache is full and its priority does not
// clear the current minimum resident priority.
package gdsf

import (
	"fmt"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/pqueue"
)

const defaultPosAlpha = 1.0

// Option configures a Policy at construction time.
type Option func(*config)

type config struct {
	posAlpha   float64
	onEviction base.EvictionCallback
}

// WithPosAlpha overrides the default 1.0 position-bonus weight.
func WithPosAlpha(alpha float64) Option {
	return func(c *config) { c.posAlpha = alpha }
}

// WithEvictionCallback registers a callback fired on every real eviction and
// every admission-gate rejection.
func WithEvictionCallback(cb base.EvictionCallback) Option {
	return func(c *config) { c.onEviction = cb }
}

type meta struct {
	freq     int
	priority float64
	version  uint64
}

// Policy implements GDSF.
type Policy struct {
	noCopy internal.NoCopy

	store base.Store

	clock    float64
	metaByID map[uint64]*meta
	heap     *pqueue.Queue
	posAlpha float64

	onEviction base.EvictionCallback
}

var _ base.Policy = (*Policy)(nil)

// New constructs a GDSF policy driving store.
func New(store base.Store, opts ...Option) *Policy {
	if store.Capacity() <= 0 {
		panic(fmt.Sprintf("%v: store capacity must be positive", base.ErrConfig))
	}

	cfg := config{posAlpha: defaultPosAlpha}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Policy{
		store:      store,
		metaByID:   make(map[uint64]*meta),
		heap:       pqueue.New(),
		posAlpha:   cfg.posAlpha,
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *Policy) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		m := p.metaByID[key]
		if m == nil {
			m = &meta{}
			p.metaByID[key] = m
		}
		m.freq++
		bonus := p.positionBonus(key, requestPrefixIDs)
		m.priority = p.priority(m.freq, bonus)
		m.version++
		p.heap.Push(m.priority, m.version, key)
		return true
	}

	bonus := p.positionBonus(key, requestPrefixIDs)
	prioNew := p.priority(1, bonus)

	if p.store.Size() < p.store.Capacity() {
		p.admit(key, 1, prioNew)
		return false
	}

	minPr, victim, ok := p.heap.PeekValidMin(p.lookup)
	if !ok {
		return false
	}
	if prioNew < minPr {
		if p.onEviction != nil {
			p.onEviction(base.EvictionReasonRejected, key)
		}
		return false
	}

	p.evict(victim, minPr)
	p.admit(key, 1, prioNew)
	return false
}

// CurrentKeys implements base.Policy.
func (p *Policy) CurrentKeys() []uint64 {
	keys := make([]uint64, 0, len(p.metaByID))
	for k := range p.metaByID {
		keys = append(keys, k)
	}
	return keys
}

func (p *Policy) priority(freq int, posBonus float64) float64 {
	return p.clock + float64(freq) + posBonus
}

// positionBonus rewards keys appearing earlier in the request's prefix list:
// pos_alpha * (n - i) / n, 0 if key is absent or the list is empty.
func (p *Policy) positionBonus(key uint64, requestPrefixIDs []uint64) float64 {
	n := len(requestPrefixIDs)
	if n == 0 {
		return 0
	}
	for i, id := range requestPrefixIDs {
		if id == key {
			return p.posAlpha * (float64(n-i) / float64(n))
		}
	}
	return 0
}

func (p *Policy) admit(key uint64, freq int, prio float64) {
	m := &meta{freq: freq, priority: prio}
	p.metaByID[key] = m
	_ = p.store.Add(key)
	p.heap.Push(prio, m.version, key)
}

func (p *Policy) evict(victim uint64, evictedPriority float64) {
	p.store.Delete(victim)
	delete(p.metaByID, victim)
	if p.clock < evictedPriority {
		p.clock = evictedPriority
	}
	if p.onEviction != nil {
		p.onEviction(base.EvictionReasonCapacity, victim)
	}
}

func (p *Policy) lookup(key uint64) (version uint64, resident bool) {
	m, ok := p.metaByID[key]
	if !ok {
		return 0, false
	}
	return m.version, p.store.Contains(key)
}
