package main

import (
	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/samber/kvcachepolicy/pkg/metrics"
)

// stats summarizes one evaluation run: total accesses, hits, misses, and
// hit ratio (0 when total is 0).
type stats struct {
	total    int64
	hits     int64
	misses   int64
	hitRatio float64
}

// evaluate drives policy over records in order: for each record, iterate its
// prefix identifiers in list order and call Access once per identifier,
// feeding every hit and miss into collector as it happens.
func evaluate(policy base.Policy, records []record, collector metrics.Collector) stats {
	var total, hits int64
	for _, rec := range records {
		for _, id := range rec.prefixIDs {
			total++
			if policy.Access(id, rec.prefixIDs, rec.reqType) {
				hits++
				collector.IncHit()
			} else {
				collector.IncMiss()
			}
		}
	}

	s := stats{total: total, hits: hits, misses: total - hits}
	if total > 0 {
		s.hitRatio = float64(hits) / float64(total)
	}
	return s
}
