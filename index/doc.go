// Package index defines a minimal abstraction for exact kNN indexes that are
// built from identifier/point pairs and queried for nearest neighbors.
// Implementations in this module include a brute-force reference scan and a
// k-d tree that reproduces the scan's output exactly.
package index
