package kd

import (
	"container/heap"
	"math"
)

// Neighbor is one query result: the caller's identifier for a data point and
// its squared Euclidean distance from the query point.
type Neighbor struct {
	ID       int32
	Distance float32
}

// candidate is an internal entry of the bounded neighbor set. It keeps the
// buffer position rather than the caller identifier: the reference scan
// visits positions left to right, so position is what ties break on.
type candidate struct {
	dist float32
	pos  int32
}

// worse reports whether a ranks after b: farther, or at exactly equal
// distance with the larger buffer position. This single comparison drives
// both heap order and replacement, so the set's contents are independent of
// the order in which the search visits candidates.
func (a candidate) worse(b candidate) bool {
	if a.dist != b.dist {
		return a.dist > b.dist
	}
	return a.pos > b.pos
}

// neighborSet is a bounded set of the best k candidates found so far,
// held as a max-heap so the current worst entry is always at the top.
type neighborSet struct {
	entries candidateHeap
	k       int
}

func newNeighborSet(k int) *neighborSet {
	return &neighborSet{entries: make(candidateHeap, 0, k), k: k}
}

// offer inserts a candidate, evicting the current worst when the set is full
// and the candidate ranks before it. Offering a worse-or-equal candidate to
// a full set is a no-op.
func (s *neighborSet) offer(dist float32, pos int32) {
	if s.k == 0 {
		return
	}
	c := candidate{dist: dist, pos: pos}
	if len(s.entries) < s.k {
		heap.Push(&s.entries, c)
		return
	}
	if s.entries[0].worse(c) {
		s.entries[0] = c
		heap.Fix(&s.entries, 0)
	}
}

func (s *neighborSet) full() bool {
	return len(s.entries) == s.k
}

// worstDistance returns the distance of the current worst entry, or +Inf
// while the set still has room. It is the pruning bound for the search.
func (s *neighborSet) worstDistance() float32 {
	if len(s.entries) < s.k {
		return float32(math.Inf(1))
	}
	return s.entries[0].dist
}

// export drains the set into ascending (distance, position) order and maps
// positions back to caller identifiers. The set is consumed.
func (s *neighborSet) export(store *PointStore) []Neighbor {
	out := make([]Neighbor, len(s.entries))
	for i := len(out) - 1; i >= 0; i-- {
		c := heap.Pop(&s.entries).(candidate)
		out[i] = Neighbor{ID: store.id(c.pos), Distance: c.dist}
	}
	return out
}

// candidateHeap implements heap.Interface as a max-heap over (distance,
// position), worst candidate first.
type candidateHeap []candidate

func (h candidateHeap) Len() int           { return len(h) }
func (h candidateHeap) Less(i, j int) bool { return h[i].worse(h[j]) }
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x interface{}) {
	*h = append(*h, x.(candidate))
}

func (h *candidateHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
