package vector

import (
	"fmt"

	"github.com/viant/vec/search"
)

// SquaredL2 returns the squared Euclidean distance between two points of
// equal dimension, accumulated in float32. Every index in this module ranks
// candidates with this one function, which is what makes the accelerated
// and brute-force results bit-identical. Passing slices of different
// lengths is a caller contract violation.
func SquaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

// L2Distance computes the true Euclidean distance between two points. It is
// a convenience for callers that want reported distances in the original
// unit; the indexes themselves never take a square root.
func L2Distance(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: L2 distance dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: L2 distance on empty vectors")
	}
	return search.Float32s(a).EuclideanDistance(b), nil
}

// Magnitude returns the Euclidean norm of v.
func Magnitude(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return search.Float32s(v).Magnitude()
}

// CosineSimilarity computes the cosine similarity between two vectors. It
// returns an error for mismatched lengths or zero-magnitude inputs.
func CosineSimilarity(a, b []float32) (float32, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector: cosine similarity dimension mismatch: %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("vector: cosine similarity on empty vectors")
	}
	ma := Magnitude(a)
	mb := Magnitude(b)
	if ma == 0 || mb == 0 {
		return 0, fmt.Errorf("vector: cosine similarity with zero-magnitude vector")
	}
	return 1 - search.Float32s(a).CosineDistanceWithMagnitudesNeon(b, ma, mb), nil
}
