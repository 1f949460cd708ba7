package store

import (
	"errors"
	"testing"

	"github.com/samber/kvcachepolicy/pkg/base"
	"github.com/stretchr/testify/assert"
)

func TestStore_Basic(t *testing.T) {
	is := assert.New(t)

	s := New(2)
	is.Equal(2, s.Capacity())
	is.Equal(0, s.Size())
	is.False(s.Contains(1))

	is.NoError(s.Add(1))
	is.True(s.Contains(1))
	is.Equal(1, s.Size())

	is.NoError(s.Add(2))
	is.NoError(s.Add(3)) // permissive: never refuses
	is.Equal(3, s.Size())

	s.Delete(2)
	is.False(s.Contains(2))
	is.Equal(2, s.Size())

	s.Delete(999) // no-op
	is.Equal(2, s.Size())
}

func TestStore_NonPositiveCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { New(0) })
	assert.Panics(t, func() { New(-1) })
}

func TestStore_ApproxBytes(t *testing.T) {
	is := assert.New(t)

	s := New(4)
	_ = s.Add(1)
	_ = s.Add(2)
	is.Positive(s.ApproxBytes())
}

func TestStrictStore_RefusesOverflow(t *testing.T) {
	is := assert.New(t)

	s := NewStrict(2)
	is.NoError(s.Add(1))
	is.NoError(s.Add(2))

	err := s.Add(3)
	is.Error(err)
	is.True(errors.Is(err, base.ErrCapacityExceeded))
	is.Equal(2, s.Size())
}

func TestStrictStore_ReAddExistingKeyIsFine(t *testing.T) {
	is := assert.New(t)

	s := NewStrict(1)
	is.NoError(s.Add(1))
	is.NoError(s.Add(1)) // already resident, not an overflow
}
