package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCollector(t *testing.T) {
	is := assert.New(t)

	c := NewCollector("trace-a", 128, "s3fifo")
	is.NotNil(c)

	pc, ok := c.(*PrometheusCollector)
	is.True(ok)
	is.NotNil(pc.settingsCapacity)
	is.NotNil(pc.settingsAlgorithm)
}

func TestPrometheusCollector_HitMissEvictionCounters(t *testing.T) {
	is := assert.New(t)

	c := NewPrometheusCollector("test", nil, 10, "gdsf")

	c.IncHit()
	c.IncHit()
	c.IncMiss()
	c.IncEviction(EvictionReasonCapacity)
	c.AddEvictions(EvictionReasonRejected, 4)
	c.SetSizeBytes(1024)
	c.SetResidentCount(7)

	is.Equal(int64(2), c.hitCount)
	is.Equal(int64(1), c.missCount)
	is.Equal(int64(1), *c.evictionCount[EvictionReasonCapacity])
	is.Equal(int64(4), *c.evictionCount[EvictionReasonRejected])
	is.Equal(int64(1024), c.SizeBytes())
	is.Equal(int64(7), c.ResidentCount())
}

func TestPrometheusCollector_AlgorithmValues(t *testing.T) {
	is := assert.New(t)

	for _, tc := range []string{"s3fifo", "s3fifoattn", "lfu", "lfutyped", "gdsf", "s3gdsf", "unknown"} {
		is.NotPanics(func() {
			NewPrometheusCollector("test", nil, 10, tc)
		})
	}
}

func TestNoOpCollector_SatisfiesInterface(t *testing.T) {
	var c Collector = &NoOpCollector{}
	assert.NotPanics(t, func() {
		c.IncHit()
		c.IncMiss()
		c.IncEviction(EvictionReasonCapacity)
		c.AddEvictions(EvictionReasonRejected, 1)
		c.SetSizeBytes(0)
		c.SetResidentCount(0)
	})
}
