package metrics

// NewCollector creates a Prometheus-backed collector labeled by name;
// capacity and algorithm are exported as settings gauges, not as labels.
// Pass name="" and this still works; labels just collapse to the bare
// metric names.
func NewCollector(name string, capacity int, algorithm string) Collector {
	labels := map[string]string{
		"name": name,
	}
	return NewPrometheusCollector(name, labels, capacity, algorithm)
}

// Collector defines the interface for metric collection operations. This
// allows a caller to swap in a no-op implementation when metrics are
// disabled, without branching at every call site.
type Collector interface {
	IncHit()
	IncMiss()
	IncEviction(reason EvictionReason)
	AddEvictions(reason EvictionReason, count int64)
	SetSizeBytes(bytes int64)
	SetResidentCount(count int64)
}
