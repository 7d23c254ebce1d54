// Package kd implements the core k-d tree: a pointer-free spatial index
// stored as a reordered permutation over a borrowed coordinate buffer, with
// a branch-and-bound nearest-neighbor search whose results are exactly those
// of a stable left-to-right exhaustive scan, ties included.
package kd
