package bruteforce

import (
	"fmt"

	"github.com/viant/kdtree/index"
	"github.com/viant/kdtree/vector"
)

// Compile-time check that Index satisfies the shared interface.
var _ index.Index = (*Index)(nil)

// Index answers kNN queries by scanning every point. The scan is stable
// left to right, so candidates at exactly equal distance keep insertion
// order. It is the reference implementation the k-d tree is measured
// against, and the better choice for small point sets.
type Index struct {
	ids  []int32
	vecs [][]float32
	dim  int
}

// Build loads ids and points after validating their shape.
func (i *Index) Build(ids []int32, points [][]float32) error {
	if len(ids) != len(points) {
		return fmt.Errorf("bruteforce: ids and points length mismatch: %d != %d", len(ids), len(points))
	}
	if len(ids) == 0 {
		i.ids, i.vecs, i.dim = nil, nil, 0
		return nil
	}
	dim := len(points[0])
	if dim == 0 {
		return fmt.Errorf("bruteforce: zero-dimensional points")
	}
	for j := range points {
		if len(points[j]) != dim {
			return fmt.Errorf("bruteforce: inconsistent point dims %d vs %d", len(points[j]), dim)
		}
	}
	i.ids = append([]int32(nil), ids...)
	i.vecs = append([][]float32(nil), points...)
	i.dim = dim
	return nil
}

// Query returns up to k points by ascending squared Euclidean distance.
// It maintains a working array one slot larger than k: each candidate is
// appended at the extra slot and bubbled left while strictly closer, which
// preserves scan order among equal distances.
func (i *Index) Query(query []float32, k int) ([]int32, []float32, error) {
	if k <= 0 || len(i.vecs) == 0 {
		return nil, nil, nil
	}
	if len(query) != i.dim {
		return nil, nil, fmt.Errorf("bruteforce: query dim %d != index dim %d", len(query), i.dim)
	}
	if k > len(i.vecs) {
		k = len(i.vecs)
	}

	positions := make([]int, k+1)
	distances := make([]float32, k+1)
	filled := 0
	for j := range i.vecs {
		dist := vector.SquaredL2(query, i.vecs[j])
		if filled == k && dist >= distances[k-1] {
			continue
		}
		slot := filled
		if slot == k {
			slot = k - 1
		} else {
			filled++
		}
		positions[slot] = j
		distances[slot] = dist
		for c := slot; c > 0; c-- {
			if distances[c-1] <= distances[c] {
				break
			}
			distances[c-1], distances[c] = distances[c], distances[c-1]
			positions[c-1], positions[c] = positions[c], positions[c-1]
		}
	}

	outIDs := make([]int32, filled)
	outDists := make([]float32, filled)
	for c := 0; c < filled; c++ {
		outIDs[c] = i.ids[positions[c]]
		outDists[c] = distances[c]
	}
	return outIDs, outDists, nil
}

// Len returns the number of indexed points.
func (i *Index) Len() int { return len(i.vecs) }
