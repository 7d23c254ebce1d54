package kd

// build partitions perm[lo:hi) into an implicit balanced binary tree. The
// middle slot of every range holds the pivot; the splitting dimension cycles
// with depth. Ranges of length 0 or 1 are terminal.
//
// After the recursion, for every range split on dimension d with pivot value
// v, perm[lo:mid) points all have coordinate d <= v and perm[mid+1:hi) all
// have coordinate d >= v; equal values may sit on either side.
func (s *PointStore) build(lo, hi, depth int) {
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		d := depth % s.dim
		s.selectMedian(lo, hi, mid, d)
		depth++
		// Recurse into the smaller half, iterate on the larger one to keep
		// stack depth logarithmic even for adversarial partitions.
		if mid-lo <= hi-(mid+1) {
			s.build(lo, mid, depth)
			lo = mid + 1
		} else {
			s.build(mid+1, hi, depth)
			hi = mid
		}
	}
}

// selectMedian is an iterative quickselect over perm[lo:hi): it places the
// element of rank mid at perm[mid] with all lesser-or-equal values on its
// left and greater-or-equal on its right, comparing by coordinate d.
// Expected linear time per call; no full sort takes place.
func (s *PointStore) selectMedian(lo, hi, mid, d int) {
	for hi-lo > 1 {
		p := s.partition(lo, hi, lo+(hi-lo)/2, d)
		switch {
		case p == mid:
			return
		case mid < p:
			hi = p
		default:
			lo = p + 1
		}
	}
}

// partition reorders perm[lo:hi) around the value at perm[pivot] and returns
// the pivot's final slot: everything left of it compares strictly less on
// dimension d, everything right greater or equal.
func (s *PointStore) partition(lo, hi, pivot, d int) int {
	v := s.coord(s.perm[pivot], d)
	s.perm[pivot], s.perm[hi-1] = s.perm[hi-1], s.perm[pivot]
	i := lo
	for j := lo; j < hi-1; j++ {
		if s.coord(s.perm[j], d) < v {
			s.perm[i], s.perm[j] = s.perm[j], s.perm[i]
			i++
		}
	}
	s.perm[i], s.perm[hi-1] = s.perm[hi-1], s.perm[i]
	return i
}
