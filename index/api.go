package index

// Index defines a generic exact k-nearest-neighbor index over float32
// points. Implementations are built once from (id, point) pairs and then
// answer read-only queries; construction must complete before the first
// query.
type Index interface {
	// Build constructs the index from the given ids and points. ids and
	// points must have the same length and every point the same dimension.
	// Building replaces any previous contents.
	Build(ids []int32, points [][]float32) error

	// Query runs a kNN search with the provided query point and returns up
	// to k matches as parallel slices of ids and squared Euclidean
	// distances, ascending by distance. Candidates at exactly equal
	// distance rank by their insertion position, earliest first. k <= 0
	// yields an empty result; k beyond the point count returns every point.
	Query(query []float32, k int) (ids []int32, distances []float32, err error)
}
