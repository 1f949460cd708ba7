package lfu

import (
	"fmt"

	"github.com/samber/kvcachepolicy/internal"
	"github.com/samber/kvcachepolicy/pkg/base"
)

// PolicyTyped implements LFU_Typed: identical to Policy, with
// a type_map tracked on every access and an eviction preference for the
// min_set member whose last-seen request type differs from the incoming
// one.
type PolicyTyped struct {
	noCopy internal.NoCopy

	store base.Store

	freqMap map[uint64]int
	typeMap map[uint64]int32
	minFreq int
	minSet  *orderedSet

	onEviction base.EvictionCallback
}

var _ base.Policy = (*PolicyTyped)(nil)

// NewTyped constructs an LFU_Typed policy driving store.
func NewTyped(store base.Store, opts ...Option) *PolicyTyped {
	if store.Capacity() <= 0 {
		panic(fmt.Sprintf("%v: store capacity must be positive", base.ErrConfig))
	}

	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &PolicyTyped{
		store:      store,
		freqMap:    make(map[uint64]int),
		typeMap:    make(map[uint64]int32),
		minSet:     newOrderedSet(),
		onEviction: cfg.onEviction,
	}
}

// Access implements base.Policy.
func (p *PolicyTyped) Access(key uint64, requestPrefixIDs []uint64, requestType int32) bool {
	if p.store.Contains(key) {
		p.freqMap[key]++
		p.typeMap[key] = requestType
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
		p.evict(requestType)
	}

	_ = p.store.Add(key)
	p.freqMap[key] = 1
	p.typeMap[key] = requestType

	if p.minFreq > 1 {
		p.minSet.reset(key)
	} else {
		p.minSet.add(key)
	}
	p.minFreq = 1

	return false
}

// CurrentKeys implements base.Policy.
func (p *PolicyTyped) CurrentKeys() []uint64 {
	keys := make([]uint64, 0, len(p.freqMap))
	for k := range p.freqMap {
		keys = append(keys, k)
	}
	return keys
}

// evict prefers a min_set member whose type_map entry differs from the
// incoming request's type; falls back to the oldest member when all match.
func (p *PolicyTyped) evict(incomingType int32) {
	victim, ok := p.pickVictim(incomingType)
	if !ok {
		return
	}
	p.store.Delete(victim)
	delete(p.freqMap, victim)
	delete(p.typeMap, victim)
	p.minSet.remove(victim)
	if p.onEviction != nil {
		p.onEviction(base.EvictionReasonCapacity, victim)
	}
}

func (p *PolicyTyped) pickVictim(incomingType int32) (uint64, bool) {
	for _, k := range p.minSet.values() {
		if p.typeMap[k] != incomingType {
			return k, true
		}
	}
	return p.minSet.oldest()
}

func (p *PolicyTyped) rebuildMinSet() {
	fresh := newOrderedSet()
	for k, f := range p.freqMap {
		if f == p.minFreq {
			fresh.add(k)
		}
	}
	p.minSet = fresh
}
