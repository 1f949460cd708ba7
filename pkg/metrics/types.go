// Package metrics provides an optional Prometheus instrumentation facade for
// policies: hit/miss counters, per-reason eviction counters (including
// GDSF-family admission-gate rejections), and a resident-size gauge. The
// policy core never imports this package directly — it is wired in by a
// caller that wants observability, via base.WithEvictionCallback-style
// hooks, and degrades to a no-op when unused.
package metrics

import "github.com/samber/kvcachepolicy/pkg/base"

// EvictionReason re-exports base.EvictionReason so collector call sites
// don't need to import pkg/base solely for this type.
type EvictionReason = base.EvictionReason

const (
	EvictionReasonCapacity = base.EvictionReasonCapacity
	EvictionReasonRejected = base.EvictionReasonRejected
)

// EvictionReasons lists every reason this module emits, for collectors that
// pre-register per-reason series.
var EvictionReasons = base.EvictionReasons
