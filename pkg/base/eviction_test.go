package base

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvictionCallback_Execution(t *testing.T) {
	is := assert.New(t)

	var capturedReason EvictionReason
	var capturedKey uint64

	callback := EvictionCallback(func(reason EvictionReason, key uint64) {
		capturedReason = reason
		capturedKey = key
	})

	callback(EvictionReasonCapacity, 42)

	is.Equal(EvictionReasonCapacity, capturedReason)
	is.Equal(uint64(42), capturedKey)
}

func TestEvictionCallback_NilCallback(t *testing.T) {
	is := assert.New(t)

	var callback EvictionCallback

	is.Panics(func() {
		callback(EvictionReasonCapacity, 1)
	})
}

func TestEvictionCallback_Closure(t *testing.T) {
	is := assert.New(t)

	counter := 0
	callback := EvictionCallback(func(reason EvictionReason, key uint64) {
		counter++
	})

	callback(EvictionReasonCapacity, 1)
	callback(EvictionReasonRejected, 2)
	callback(EvictionReasonCapacity, 3)

	is.Equal(3, counter)
}

func TestEvictionReasons(t *testing.T) {
	is := assert.New(t)

	is.Contains(EvictionReasons, EvictionReasonCapacity)
	is.Contains(EvictionReasons, EvictionReasonRejected)
	is.Len(EvictionReasons, 2)
}
