// Package vector provides the point-level plumbing shared by the kNN
// indexes: distance functions, a BLOB codec for coordinate records, and a
// SQLite-backed store for named point datasets.
package vector
