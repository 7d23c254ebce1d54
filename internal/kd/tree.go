package kd

import (
	"errors"
	"fmt"
)

// ErrClosed is returned by queries against a closed tree.
var ErrClosed = errors.New("kd: tree is closed")

// Tree is a k-d tree over a fixed point set. Construction reorders an
// internal permutation once; afterwards the tree is immutable and any number
// of queries may read it concurrently.
type Tree struct {
	store *PointStore
}

// New builds a tree over n = len(ids) points taken from coords, a flat
// row-major buffer of n consecutive dim-length records. ids maps buffer
// positions to caller identifiers; a nil ids uses positions 0..n-1. The
// coordinate buffer is borrowed for the tree's lifetime, never copied.
func New(coords []float32, ids []int32, dim int) (*Tree, error) {
	if dim < 1 {
		return nil, fmt.Errorf("kd: dimension must be >= 1, got %d", dim)
	}
	if len(coords)%dim != 0 {
		return nil, fmt.Errorf("kd: coordinate buffer length %d is not a multiple of dimension %d", len(coords), dim)
	}
	n := len(coords) / dim
	if ids == nil {
		ids = make([]int32, n)
		for i := range ids {
			ids[i] = int32(i)
		}
	}
	if len(ids) != n {
		return nil, fmt.Errorf("kd: got %d identifiers for %d points", len(ids), n)
	}
	store := newPointStore(coords, ids, n, dim)
	store.build(0, n, 0)
	return &Tree{store: store}, nil
}

// Nearest returns the k nearest data points to query by squared Euclidean
// distance, ascending, ties resolved toward the smaller buffer position. It
// returns fewer than k entries when the tree holds fewer points, and an
// empty result for k <= 0.
func (t *Tree) Nearest(query []float32, k int) ([]Neighbor, error) {
	if t.store == nil {
		return nil, ErrClosed
	}
	if len(query) != t.store.dim {
		return nil, fmt.Errorf("kd: query dimension %d does not match index dimension %d", len(query), t.store.dim)
	}
	if k <= 0 || t.store.len() == 0 {
		return nil, nil
	}
	if k > t.store.len() {
		k = t.store.len()
	}
	set := newNeighborSet(k)
	t.store.search(0, t.store.len(), 0, query, set)
	return set.export(t.store), nil
}

// Len returns the number of indexed points.
func (t *Tree) Len() int {
	if t.store == nil {
		return 0
	}
	return t.store.len()
}

// Dimension returns the coordinate dimensionality.
func (t *Tree) Dimension() int {
	if t.store == nil {
		return 0
	}
	return t.store.dim
}

// Permutation exposes the post-build permutation of buffer positions.
// It is read-only and intended for structural verification.
func (t *Tree) Permutation() []int32 {
	if t.store == nil {
		return nil
	}
	return t.store.perm
}

// Close releases the tree's owned state and the borrowed coordinate view.
// Queries after Close return ErrClosed.
func (t *Tree) Close() error {
	t.store = nil
	return nil
}
