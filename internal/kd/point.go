package kd

// PointStore couples a borrowed flat row-major coordinate buffer with the
// caller's identifier array and a permutation of buffer positions. The
// permutation is the only state the store mutates: construction reorders it
// in place, coordinates are never copied or modified.
type PointStore struct {
	coords []float32
	ids    []int32
	perm   []int32
	dim    int
}

func newPointStore(coords []float32, ids []int32, n, dim int) *PointStore {
	perm := make([]int32, n)
	for i := range perm {
		perm[i] = int32(i)
	}
	return &PointStore{coords: coords, ids: ids, perm: perm, dim: dim}
}

// point returns the coordinate slice of the point at buffer position pos.
func (s *PointStore) point(pos int32) []float32 {
	off := int(pos) * s.dim
	return s.coords[off : off+s.dim]
}

// coord returns a single coordinate of the point at buffer position pos.
func (s *PointStore) coord(pos int32, d int) float32 {
	return s.coords[int(pos)*s.dim+d]
}

// id maps a buffer position back to the caller's identifier.
func (s *PointStore) id(pos int32) int32 {
	return s.ids[pos]
}

func (s *PointStore) len() int {
	return len(s.perm)
}
