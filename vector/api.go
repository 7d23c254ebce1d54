package vector

import (
	"context"
)

// Point couples a caller-meaningful identifier with its coordinates. The
// identifier travels through index construction and comes back unchanged in
// query results, so callers may reference subsets or remapped orderings of
// an external dataset.
type Point struct {
	ID     int32
	Coords []float32
}

// Store defines durable storage for named point datasets. A dataset is the
// unit an index is built from: all points in one dataset share a dimension.
type Store interface {
	// AddPoints inserts points into the named dataset. IDs must be unique
	// within the dataset.
	AddPoints(ctx context.Context, dataset string, points []Point) error

	// LoadDataset returns the dataset's identifiers and coordinates in
	// insertion order, the order that defines tie-breaking at query time.
	LoadDataset(ctx context.Context, dataset string) (ids []int32, points [][]float32, err error)

	// Remove deletes one point from the dataset.
	Remove(ctx context.Context, dataset string, id int32) error
}
