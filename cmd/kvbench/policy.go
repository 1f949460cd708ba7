package main

import (
	"fmt"

	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/gdsf"
	"github.com/samber/kvcachepolicy/pkg/lfu"
	"github.com/samber/kvcachepolicy/pkg/metrics"
	"github.com/samber/kvcachepolicy/pkg/s3fifo"
	"github.com/samber/kvcachepolicy/pkg/s3fifoattn"
	"github.com/samber/kvcachepolicy/pkg/s3gdsf"
	"github.com/samber/kvcachepolicy/pkg/store"
)

// buildPolicy constructs the named algorithm's policy over a fresh store of
// the given capacity, wiring collector evictions into an eviction callback.
// The store is returned alongside the policy so the caller can read its
// resident count and approximate size into the same collector once the run
// finishes.
func buildPolicy(algorithm string, capacity int, collector metrics.Collector) (base.Policy, *store.Store, error) {
	s := store.New(capacity)
	onEviction := func(reason base.EvictionReason, key uint64) {
		collector.IncEviction(reason)
	}

	switch algorithm {
	case "s3fifo":
		return s3fifo.New(s, s3fifo.WithEvictionCallback(onEviction)), s, nil
	case "s3fifoattn":
		return s3fifoattn.New(s, s3fifoattn.WithEvictionCallback(onEviction)), s, nil
	case "lfu":
		return lfu.New(s, lfu.WithEvictionCallback(onEviction)), s, nil
	case "lfutyped":
		return lfu.NewTyped(s, lfu.WithEvictionCallback(onEviction)), s, nil
	case "gdsf":
		return gdsf.New(s, gdsf.WithEvictionCallback(onEviction)), s, nil
	case "s3gdsf":
		return s3gdsf.New(s, s3gdsf.WithEvictionCallback(onEviction)), s, nil
	default:
		return nil, nil, fmt.Errorf("unknown algorithm %q", algorithm)
	}
}
