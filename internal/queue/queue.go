// Package queue provides a bounded candidate heap for nearest-neighbor
// searches.
package queue

// Item is a search candidate: a storage slot and its distance to the
// query. Value-based (no pointers) for cache locality and zero
// allocations on the hot path.
type Item struct {
	Slot     int     // Slot is the dense storage position of the candidate.
	Distance float32 // Distance is the priority of the candidate.
}

// CandidateHeap is a max-heap of Items ordered lexicographically by
// (Distance, Slot): the top element is the worst candidate in the set,
// and among equal distances the highest slot sorts worst. This keeps
// the retained k candidates resolved in slot order on ties.
type CandidateHeap struct {
	items []Item
}

// NewMax initializes a candidate heap with the given capacity.
func NewMax(capacity int) *CandidateHeap {
	return &CandidateHeap{
		items: make([]Item, 0, capacity),
	}
}

// TopItem returns the worst candidate currently retained.
func (h *CandidateHeap) TopItem() (Item, bool) {
	if len(h.items) == 0 {
		return Item{}, false
	}
	return h.items[0], true
}

// PushItem inserts an item while maintaining the heap invariant.
func (h *CandidateHeap) PushItem(item Item) {
	h.items = append(h.items, item)
	h.siftUp(len(h.items) - 1)
}

// PopItem removes and returns the worst candidate while maintaining the
// heap invariant.
func (h *CandidateHeap) PopItem() (Item, bool) {
	n := len(h.items)
	if n == 0 {
		return Item{}, false
	}
	root := h.items[0]
	last := h.items[n-1]
	h.items[n-1] = Item{}
	h.items = h.items[:n-1]
	if n-1 > 0 {
		h.items[0] = last
		h.siftDown(0)
	}
	return root, true
}

// Worse reports whether a sorts after b, i.e. a is the worse candidate.
func Worse(a, b Item) bool {
	if a.Distance != b.Distance {
		return a.Distance > b.Distance
	}
	return a.Slot > b.Slot
}

func (h *CandidateHeap) less(i, j int) bool {
	return Worse(h.items[i], h.items[j])
}

func (h *CandidateHeap) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *CandidateHeap) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		if r := l + 1; r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}

// Len returns the number of retained candidates.
func (h *CandidateHeap) Len() int { return len(h.items) }

// Reset clears the heap for reuse.
func (h *CandidateHeap) Reset() {
	h.items = h.items[:0]
}
