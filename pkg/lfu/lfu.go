// Package lfu implements the frequency-only replacement policy and its
// type-aware variant.
package lfu

import (
	"fmt"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/pkg/base"
)

// Option configures a Policy at construction time.
type Option func(*config)

type config struct {
	onEviction base.EvictionCallback
}

// WithEvictionCallback registers a callback fired on every real eviction.
func WithEvictionCallback(cb base.EvictionCallback) Option {
	return func(c *config) { c.onEviction = cb }
}

// Policy implements plain LFU: minimum-frequency residents form min_set, and
// eviction picks the oldest member of that set.
type Policy struct {
	noCopy internal.NoCopy

	store base.Store

	freqMap map[uint64]int
	minFreq int
	minSet  *orderedSet

	onEviction base.EvictionCallback
}

var _ base.Policy = (*Policy)(nil)

// New constructs an LFU policy driving store.
func New(store base.Store, opts ...Option) *Policy {
	if store.Capacity() <= 0 {
		panic(fmt.Sprintf("%v: store capacity must be positive", base.ErrConfig))
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Policy{
		store:      store,
		freqMap:    make(map[uint64]int),
		minSet:     newOrderedSet(),
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *Policy) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		p.freqMap[key]++
		if p.minSet.contains(key) {
			if p.minSet.len() == 1 {
				p.minFreq++
				p.rebuildMinSet()
			} else {
				p.minSet.remove(key)
			}
		}
		return true
	}

	if p.store.Size() >= p.store.Capacity() {
		p.evict()
	}

	_ = p.store.Add(key)
	p.freqMap[key] = 1

	if p.minFreq > 1 {
		p.minSet.reset(key)
	} else {
		p.minSet.add(key)
	}
	p.minFreq = 1

	return false
}

// CurrentKeys implements base.Policy.
func (p *Policy) CurrentKeys() []uint64 {
	keys := make([]uint64, 0, len(p.freqMap))
	for k := range p.freqMap {
		keys = append(keys, k)
	}
	return keys
}

// evict picks the oldest member of min_set as the victim.
func (p *Policy) evict() {
	victim, ok := p.minSet.oldest()
	if !ok {
		return
	}
	p.store.Delete(victim)
	delete(p.freqMap, victim)
	p.minSet.remove(victim)
	if p.onEviction != nil {
		p.onEviction(base.EvictionReasonCapacity, victim)
	}
}

func (p *Policy) rebuildMinSet() {
	fresh := newOrderedSet()
	for k, f := range p.freqMap {
		if f == p.minFreq {
			fresh.add(k)
		}
	}
	p.minSet = fresh
}
