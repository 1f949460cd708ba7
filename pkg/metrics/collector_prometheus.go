package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

var _ Collector = (*PrometheusCollector)(nil)

// PrometheusCollector implements Collector using Prometheus metrics.
type PrometheusCollector struct {
	labels prometheus.Labels

	hitCount      int64
	missCount     int64
	evictionCount map[EvictionReason]*int64

	sizeBytes     int64
	residentCount int64

	settingsCapacity  prometheus.Gauge
	settingsAlgorithm prometheus.Gauge

	hitDesc      *prometheus.Desc
	missDesc     *prometheus.Desc
	evictionDesc *prometheus.Desc
	sizeDesc     *prometheus.Desc
	residentDesc *prometheus.Desc
}

// NewPrometheusCollector creates a new Prometheus-based metric collector for
// one policy instance, identified by name and capacity.
func NewPrometheusCollector(name string, labels map[string]string, capacity int, algorithm string) *PrometheusCollector {
	merged := prometheus.Labels{"name": name}
	for k, v := range labels {
		merged[k] = v
	}

	c := &PrometheusCollector{
		labels:        merged,
		evictionCount: make(map[EvictionReason]*int64, len(EvictionReasons)),
	}
	for _, reason := range EvictionReasons {
		var count int64
		c.evictionCount[reason] = &count
	}

	c.hitDesc = prometheus.NewDesc(
		"kvcachepolicy_hit_total",
		"Total number of Access calls that found the key resident",
		nil, merged,
	)
	c.missDesc = prometheus.NewDesc(
		"kvcachepolicy_miss_total",
		"Total number of Access calls that found the key absent",
		nil, merged,
	)
	c.evictionDesc = prometheus.NewDesc(
		"kvcachepolicy_eviction_total",
		"Total number of identifiers that left the resident set, by reason",
		[]string{"reason"}, merged,
	)
	c.sizeDesc = prometheus.NewDesc(
		"kvcachepolicy_size_bytes",
		"Approximate memory footprint of the resident set and policy bookkeeping",
		nil, merged,
	)
	c.residentDesc = prometheus.NewDesc(
		"kvcachepolicy_resident_count",
		"Current number of resident identifiers",
		nil, merged,
	)

	c.settingsCapacity = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "kvcachepolicy_settings_capacity",
		Help:        "Configured Store capacity",
		ConstLabels: merged,
	})
	c.settingsCapacity.Set(float64(capacity))

	c.settingsAlgorithm = prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "kvcachepolicy_settings_algorithm",
		Help:        "Active policy (0=s3fifo, 1=s3fifoattn, 2=lfu, 3=lfutyped, 4=gdsf, 5=s3gdsf)",
		ConstLabels: merged,
	})
	c.settingsAlgorithm.Set(algorithmValue(algorithm))

	return c
}

func algorithmValue(algorithm string) float64 {
	switch algorithm {
	case "s3fifo":
		return 0
	case "s3fifoattn":
		return 1
	case "lfu":
		return 2
	case "lfutyped":
		return 3
	case "gdsf":
		return 4
	case "s3gdsf":
		return 5
	default:
		return -1
	}
}

func (c *PrometheusCollector) IncHit() { atomic.AddInt64(&c.hitCount, 1) }

func (c *PrometheusCollector) IncMiss() { atomic.AddInt64(&c.missCount, 1) }

func (c *PrometheusCollector) IncEviction(reason EvictionReason) {
	c.AddEvictions(reason, 1)
}

func (c *PrometheusCollector) AddEvictions(reason EvictionReason, count int64) {
	counter, ok := c.evictionCount[reason]
	if !ok {
		var fresh int64
		counter = &fresh
		c.evictionCount[reason] = counter
	}
	atomic.AddInt64(counter, count)
}

func (c *PrometheusCollector) SetSizeBytes(bytes int64) {
	atomic.StoreInt64(&c.sizeBytes, bytes)
}

func (c *PrometheusCollector) SetResidentCount(count int64) {
	atomic.StoreInt64(&c.residentCount, count)
}

// SizeBytes returns the most recently set approximate memory footprint, for
// callers that need the value directly rather than scraped off the
// registered gauge.
func (c *PrometheusCollector) SizeBytes() int64 {
	return atomic.LoadInt64(&c.sizeBytes)
}

// ResidentCount returns the most recently set resident identifier count.
func (c *PrometheusCollector) ResidentCount() int64 {
	return atomic.LoadInt64(&c.residentCount)
}

// Describe implements prometheus.Collector.
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitDesc
	ch <- c.missDesc
	ch <- c.evictionDesc
	ch <- c.sizeDesc
	ch <- c.residentDesc
	ch <- c.settingsCapacity.Desc()
	ch <- c.settingsAlgorithm.Desc()
}

// Collect implements prometheus.Collector.
func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.hitDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.hitCount)))
	ch <- prometheus.MustNewConstMetric(c.missDesc, prometheus.CounterValue, float64(atomic.LoadInt64(&c.missCount)))
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&c.sizeBytes)))
	ch <- prometheus.MustNewConstMetric(c.residentDesc, prometheus.GaugeValue, float64(atomic.LoadInt64(&c.residentCount)))

	for reason, counter := range c.evictionCount {
		ch <- prometheus.MustNewConstMetric(c.evictionDesc, prometheus.CounterValue, float64(atomic.LoadInt64(counter)), string(reason))
	}

	c.settingsCapacity.Collect(ch)
	c.settingsAlgorithm.Collect(ch)
}
