// Package binheap provides a binary min-heap of (decimal key, int satellite)
// pairs with an index from satellite to heap position.
//
// Satellites are assumed to be unique integers, typically vertex or edge
// indices in the graph algorithms this heap serves. The position index makes
// Remove and ChangeKey O(log n): the plain container/heap interface only
// supports lazy decrease-key, which cannot serve the matching heuristic's
// remove-by-satellite access pattern.
//
// Internals: a 1-based array (index 0 is a sentinel), a satellite→key map,
// and a satellite→position map. All structural operations are O(log n).
//
// Errors:
//
//   - ErrDuplicateSatellite: Insert with a satellite already present.
//   - ErrEmptyHeap: DeleteMin on an empty heap.
//   - ErrSatelliteNotFound: Remove/ChangeKey with an unknown satellite.
package binheap

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors reported by heap operations.
var (
	// ErrDuplicateSatellite indicates an Insert with a satellite that is
	// already stored.
	ErrDuplicateSatellite = errors.New("binheap: satellite already in heap")

	// ErrEmptyHeap indicates a DeleteMin on an empty heap.
	ErrEmptyHeap = errors.New("binheap: empty heap")

	// ErrSatelliteNotFound indicates a Remove or ChangeKey for a satellite
	// that is not stored.
	ErrSatelliteNotFound = errors.New("binheap: satellite not in heap")
)

// Heap is a satellite-indexed binary min-heap. The zero value is not
// usable; call New.
type Heap struct {
	key       map[int]decimal.Decimal // satellite -> key
	pos       map[int]int             // satellite -> position in the array
	satellite []int                   // the heap; index 0 is a sentinel
	size      int
}

// New returns an empty heap.
func New() *Heap {
	return &Heap{
		key:       make(map[int]decimal.Decimal),
		pos:       make(map[int]int),
		satellite: []int{0},
	}
}

// Insert adds the pair (k, s), sifting it up to its position.
// Fails with ErrDuplicateSatellite when s is already stored.
func (h *Heap) Insert(k decimal.Decimal, s int) error {
	if _, ok := h.pos[s]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateSatellite, s)
	}

	h.satellite = append(h.satellite, 0)
	h.size++
	i := h.size
	for i/2 > 0 && h.key[h.satellite[i/2]].Cmp(k) > 0 {
		h.satellite[i] = h.satellite[i/2]
		h.pos[h.satellite[i]] = i
		i /= 2
	}
	h.satellite[i] = s
	h.pos[s] = i
	h.key[s] = k

	return nil
}

// DeleteMin removes the pair with minimum key and returns its satellite.
// Fails with ErrEmptyHeap when nothing is stored.
func (h *Heap) DeleteMin() (int, error) {
	if h.size == 0 {
		return 0, ErrEmptyHeap
	}

	min := h.satellite[1]
	last := h.satellite[h.size]
	h.size--

	// Sift the displaced last element down from the root.
	i := 1
	child := 2
	for child <= h.size {
		if child < h.size && h.key[h.satellite[child]].Cmp(h.key[h.satellite[child+1]]) > 0 {
			child++
		}
		if h.key[last].Cmp(h.key[h.satellite[child]]) > 0 {
			h.satellite[i] = h.satellite[child]
			h.pos[h.satellite[child]] = i
		} else {
			break
		}
		i = child
		child *= 2
	}
	h.satellite[i] = last
	h.pos[last] = i

	delete(h.key, min)
	delete(h.pos, min)
	h.satellite = h.satellite[:len(h.satellite)-1]

	return min, nil
}

// Remove deletes the pair with satellite s: the element is bubbled to the
// root by copying parents down, then removed as the minimum.
func (h *Heap) Remove(s int) error {
	i, ok := h.pos[s]
	if !ok {
		return fmt.Errorf("%w: %d", ErrSatelliteNotFound, s)
	}

	for i/2 > 0 {
		h.satellite[i] = h.satellite[i/2]
		h.pos[h.satellite[i]] = i
		i /= 2
	}
	h.satellite[1] = s
	h.pos[s] = 1

	_, err := h.DeleteMin()

	return err
}

// ChangeKey updates the key of satellite s to k.
func (h *Heap) ChangeKey(k decimal.Decimal, s int) error {
	if err := h.Remove(s); err != nil {
		return err
	}

	return h.Insert(k, s)
}

// ContainsSatellite reports whether s is stored.
func (h *Heap) ContainsSatellite(s int) bool {
	_, ok := h.key[s]

	return ok
}

// Len returns the number of stored pairs.
func (h *Heap) Len() int { return h.size }

// Clear resets the heap to empty.
func (h *Heap) Clear() {
	h.key = make(map[int]decimal.Decimal)
	h.pos = make(map[int]int)
	h.satellite = h.satellite[:0]
	h.satellite = append(h.satellite, 0)
	h.size = 0
}
