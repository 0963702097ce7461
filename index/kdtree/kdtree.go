// Package kdtree implements a balanced 3-dimensional k-d tree over a
// flat coordinate buffer, answering exact k-nearest-neighbor and radius
// queries by storage slot.
//
// The tree is immutable once built. Callers that mutate the backing
// collection must discard the tree and build a new one.
package kdtree

import (
	"errors"
	"sort"

	"github.com/chewxy/math32"

	"github.com/hupe1980/terrago/internal/queue"
)

var (
	// ErrInvalidK is returned when k is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrInvalidRadius is returned when a radius is negative.
	ErrInvalidRadius = errors.New("radius must be non-negative")

	// ErrEmptyTree is returned when a nearest-neighbor query hits a
	// tree built over zero points.
	ErrEmptyTree = errors.New("tree is empty")
)

// Result is a query match: the slot of the matched point and its
// Euclidean distance to the query.
type Result struct {
	Slot     int
	Distance float32
}

// Tree is a balanced k-d tree over a flat xyz coordinate buffer. Nodes
// are stored implicitly: order is a permutation of slots arranged so
// that the median of every subrange splits it on the range's axis,
// cycling x, y, z by depth.
type Tree struct {
	coords []float32 // flat xyz triples, slot-major; not owned, must not be mutated
	order  []int32
}

// Build constructs a balanced tree over the buffer. coords holds one
// xyz triple per slot, in slot order. Cost is O(n log n); an empty
// buffer yields an empty tree.
func Build(coords []float32) *Tree {
	n := len(coords) / 3
	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}

	t := &Tree{coords: coords, order: order}
	t.build(0, n, 0)

	return t
}

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	return len(t.order)
}

func (t *Tree) at(slot int32, axis int) float32 {
	return t.coords[int(slot)*3+axis]
}

func (t *Tree) build(lo, hi, depth int) {
	if hi-lo <= 1 {
		return
	}

	axis := depth % 3
	mid := (lo + hi) / 2
	t.nthElement(lo, hi, mid, axis)

	t.build(lo, mid, depth+1)
	t.build(mid+1, hi, depth+1)
}

// nthElement partially orders order[lo:hi] so that order[mid] holds the
// element that would land at mid under a full sort by the axis
// coordinate (Hoare-style quickselect).
func (t *Tree) nthElement(lo, hi, mid, axis int) {
	for hi-lo > 1 {
		pivot := t.at(t.order[(lo+hi)/2], axis)

		i, j := lo, hi-1
		for i <= j {
			for t.at(t.order[i], axis) < pivot {
				i++
			}
			for t.at(t.order[j], axis) > pivot {
				j--
			}
			if i <= j {
				t.order[i], t.order[j] = t.order[j], t.order[i]
				i++
				j--
			}
		}

		switch {
		case mid <= j:
			hi = j + 1
		case mid >= i:
			lo = i
		default:
			return
		}
	}
}

// KNearest returns the k stored points closest to q under Euclidean
// distance, ordered by (distance, slot). Fewer than k results are
// returned when the tree holds fewer points.
func (t *Tree) KNearest(q [3]float32, k int) ([]Result, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if t.Len() == 0 {
		return nil, ErrEmptyTree
	}

	h := queue.NewMax(k)
	t.search(0, t.Len(), 0, q, k, h)

	// Draining the worst-first heap backwards yields (distance, slot)
	// ascending.
	results := make([]Result, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		item, _ := h.PopItem()
		results[i] = Result{Slot: item.Slot, Distance: math32.Sqrt(item.Distance)}
	}

	return results, nil
}

// WithinRadius returns every stored point within radius of q
// (inclusive), ordered by (distance, slot). An empty tree yields an
// empty result.
func (t *Tree) WithinRadius(q [3]float32, radius float32) ([]Result, error) {
	if radius < 0 {
		return nil, ErrInvalidRadius
	}

	var results []Result
	t.collect(0, t.Len(), 0, q, radius*radius, &results)

	for i := range results {
		results[i].Distance = math32.Sqrt(results[i].Distance)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].Slot < results[j].Slot
	})

	return results, nil
}

// search walks the subrange [lo, hi), keeping the k best candidates in
// h. Distances in the heap are squared.
func (t *Tree) search(lo, hi, depth int, q [3]float32, k int, h *queue.CandidateHeap) {
	if hi <= lo {
		return
	}

	axis := depth % 3
	mid := (lo + hi) / 2
	node := t.order[mid]

	t.consider(node, q, k, h)

	diff := q[axis] - t.at(node, axis)
	if diff < 0 {
		t.search(lo, mid, depth+1, q, k, h)
		if t.planeReachable(diff, k, h) {
			t.search(mid+1, hi, depth+1, q, k, h)
		}
	} else {
		t.search(mid+1, hi, depth+1, q, k, h)
		if t.planeReachable(diff, k, h) {
			t.search(lo, mid, depth+1, q, k, h)
		}
	}
}

// planeReachable reports whether the far side of a splitting plane at
// axis distance diff could still hold a better candidate.
func (t *Tree) planeReachable(diff float32, k int, h *queue.CandidateHeap) bool {
	if h.Len() < k {
		return true
	}
	worst, _ := h.TopItem()
	return diff*diff <= worst.Distance
}

func (t *Tree) consider(node int32, q [3]float32, k int, h *queue.CandidateHeap) {
	dx := q[0] - t.at(node, 0)
	dy := q[1] - t.at(node, 1)
	dz := q[2] - t.at(node, 2)
	cand := queue.Item{Slot: int(node), Distance: dx*dx + dy*dy + dz*dz}

	if h.Len() < k {
		h.PushItem(cand)
		return
	}

	if worst, _ := h.TopItem(); queue.Worse(worst, cand) {
		h.PopItem()
		h.PushItem(cand)
	}
}

func (t *Tree) collect(lo, hi, depth int, q [3]float32, r2 float32, out *[]Result) {
	if hi <= lo {
		return
	}

	axis := depth % 3
	mid := (lo + hi) / 2
	node := t.order[mid]

	dx := q[0] - t.at(node, 0)
	dy := q[1] - t.at(node, 1)
	dz := q[2] - t.at(node, 2)
	if d2 := dx*dx + dy*dy + dz*dz; d2 <= r2 {
		*out = append(*out, Result{Slot: int(node), Distance: d2})
	}

	diff := q[axis] - t.at(node, axis)
	if diff < 0 {
		t.collect(lo, mid, depth+1, q, r2, out)
		if diff*diff <= r2 {
			t.collect(mid+1, hi, depth+1, q, r2, out)
		}
	} else {
		t.collect(mid+1, hi, depth+1, q, r2, out)
		if diff*diff <= r2 {
			t.collect(lo, mid, depth+1, q, r2, out)
		}
	}
}
