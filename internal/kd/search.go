package kd

import "github.com/viant/kdtree/vector"

// search runs the branch-and-bound traversal over the implicit tree range
// perm[lo:hi) at the given depth, offering candidates into the neighbor set.
// The near child is visited first; the far child only when it could still
// hold a point that ranks before the current worst. The bound is non-strict:
// a far subtree whose splitting plane sits exactly at the worst distance may
// contain an equal-distance point with a smaller buffer position, which the
// tie-break must retain.
func (s *PointStore) search(lo, hi, depth int, query []float32, set *neighborSet) {
	if hi-lo <= 0 {
		return
	}
	mid := lo + (hi-lo)/2
	pivot := s.perm[mid]
	set.offer(vector.SquaredL2(query, s.point(pivot)), pivot)
	if hi-lo == 1 {
		return
	}

	d := depth % s.dim
	gap := query[d] - s.coord(pivot, d)

	nearLo, nearHi := lo, mid
	farLo, farHi := mid+1, hi
	if gap >= 0 {
		nearLo, nearHi, farLo, farHi = farLo, farHi, nearLo, nearHi
	}

	s.search(nearLo, nearHi, depth+1, query, set)
	if !set.full() || gap*gap <= set.worstDistance() {
		s.search(farLo, farHi, depth+1, query, set)
	}
}
