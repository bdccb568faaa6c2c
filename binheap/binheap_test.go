// Package binheap_test exercises the satellite-indexed heap.
package binheap_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/postway/binheap"
)

func key(i int64) decimal.Decimal { return decimal.NewFromInt(i) }

func TestHeap_InsertAndDeleteMinOrder(t *testing.T) {
	h := binheap.New()
	require.NoError(t, h.Insert(key(5), 50))
	require.NoError(t, h.Insert(key(1), 10))
	require.NoError(t, h.Insert(key(3), 30))
	require.NoError(t, h.Insert(key(2), 20))
	require.NoError(t, h.Insert(key(4), 40))

	var order []int
	for h.Len() > 0 {
		s, err := h.DeleteMin()
		require.NoError(t, err)
		order = append(order, s)
	}
	assert.Equal(t, []int{10, 20, 30, 40, 50}, order)
}

func TestHeap_DuplicateSatellite(t *testing.T) {
	h := binheap.New()
	require.NoError(t, h.Insert(key(1), 7))
	require.ErrorIs(t, h.Insert(key(2), 7), binheap.ErrDuplicateSatellite)
}

func TestHeap_DeleteMinEmpty(t *testing.T) {
	h := binheap.New()
	_, err := h.DeleteMin()
	require.ErrorIs(t, err, binheap.ErrEmptyHeap)
}

func TestHeap_Remove(t *testing.T) {
	h := binheap.New()
	require.NoError(t, h.Insert(key(1), 10))
	require.NoError(t, h.Insert(key(2), 20))
	require.NoError(t, h.Insert(key(3), 30))

	require.NoError(t, h.Remove(20))
	assert.Equal(t, 2, h.Len())
	assert.False(t, h.ContainsSatellite(20))

	s, err := h.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, 10, s)
	s, err = h.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, 30, s)
}

func TestHeap_RemoveUnknownSatellite(t *testing.T) {
	h := binheap.New()
	require.ErrorIs(t, h.Remove(99), binheap.ErrSatelliteNotFound)
}

func TestHeap_ChangeKey(t *testing.T) {
	h := binheap.New()
	require.NoError(t, h.Insert(key(10), 1))
	require.NoError(t, h.Insert(key(20), 2))

	// Raising 1 above 2 flips the extraction order.
	require.NoError(t, h.ChangeKey(key(30), 1))
	s, err := h.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, 2, s)

	// Raising a key that starts below the current minimum works the same way.
	require.NoError(t, h.Insert(key(5), 3))
	require.NoError(t, h.ChangeKey(key(40), 3))
	s, err = h.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, 1, s)
}

func TestHeap_ContainsSatelliteAndLen(t *testing.T) {
	h := binheap.New()
	assert.Equal(t, 0, h.Len())
	require.NoError(t, h.Insert(key(1), 4))

	assert.True(t, h.ContainsSatellite(4))
	assert.False(t, h.ContainsSatellite(5))
	assert.Equal(t, 1, h.Len())
}

func TestHeap_Clear(t *testing.T) {
	h := binheap.New()
	require.NoError(t, h.Insert(key(1), 1))
	require.NoError(t, h.Insert(key(2), 2))

	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.ContainsSatellite(1))
	require.NoError(t, h.Insert(key(3), 1), "cleared heap accepts old satellites")
}

func TestHeap_DecimalKeysCompareExactly(t *testing.T) {
	h := binheap.New()
	a, _ := decimal.NewFromString("0.1")
	b, _ := decimal.NewFromString("0.10000000000000001")
	require.NoError(t, h.Insert(b, 2))
	require.NoError(t, h.Insert(a, 1))

	s, err := h.DeleteMin()
	require.NoError(t, err)
	assert.Equal(t, 1, s, "exact decimal comparison orders near-equal keys")
}
