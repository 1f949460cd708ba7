package ghost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFIFO_BasicMembership(t *testing.T) {
	is := assert.New(t)

	g := New(2)
	is.False(g.Contains(1))

	g.Add(1)
	is.True(g.Contains(1))
	is.Equal(1, g.Len())

	g.Remove(1)
	is.False(g.Contains(1))
	is.Equal(0, g.Len())
}

func TestFIFO_DropsOldestOnOverflow(t *testing.T) {
	is := assert.New(t)

	g := New(2)
	g.Add(1)
	g.Add(2)
	g.Add(3) // evicts 1

	is.False(g.Contains(1))
	is.True(g.Contains(2))
	is.True(g.Contains(3))
	is.Equal(2, g.Len())
}

func TestFIFO_RefreshMovesToHead(t *testing.T) {
	is := assert.New(t)

	g := New(2)
	g.Add(1)
	g.Add(2)
	g.Add(1) // refresh: 1 is now newest, 2 is oldest
	g.Add(3) // should evict 2, not 1

	is.True(g.Contains(1))
	is.False(g.Contains(2))
	is.True(g.Contains(3))
}

func TestFIFO_CapacityClampedToOne(t *testing.T) {
	is := assert.New(t)

	g := New(0)
	g.Add(1)
	g.Add(2)
	is.Equal(1, g.Len())
	is.True(g.Contains(2))
}

func TestFIFO_RemoveAbsentIsNoop(t *testing.T) {
	g := New(4)
	g.Remove(99)
	assert.Equal(t, 0, g.Len())
}
