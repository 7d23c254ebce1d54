package kdtree

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/viant/kdtree/index"
	"github.com/viant/kdtree/internal/kd"
)

// Compile-time check that Index satisfies the shared interface.
var _ index.Index = (*Index)(nil)

// Options configures a k-d tree index.
type Options struct {
	// QueryParallelism bounds the number of concurrent searches QueryBatch
	// runs. Zero or negative means GOMAXPROCS. Single queries are always
	// synchronous.
	QueryParallelism int
}

// Option mutates Options.
type Option func(o *Options)

// WithQueryParallelism sets the QueryBatch concurrency bound.
func WithQueryParallelism(n int) Option {
	return func(o *Options) { o.QueryParallelism = n }
}

// Index is an exact kNN index backed by a k-d tree. Build reorders an
// internal permutation once; afterwards the tree is immutable and queries
// may run concurrently without synchronization.
type Index struct {
	tree *kd.Tree
	opts Options
}

// New creates an empty index; Build populates it.
func New(options ...Option) *Index {
	i := &Index{}
	for _, opt := range options {
		opt(&i.opts)
	}
	return i
}

// Build constructs the tree from ids and points. Points are copied into a
// flat row-major buffer owned by the index.
func (i *Index) Build(ids []int32, points [][]float32) error {
	if len(ids) != len(points) {
		return fmt.Errorf("kdtree: ids and points length mismatch: %d != %d", len(ids), len(points))
	}
	if len(points) == 0 {
		i.tree = nil
		return nil
	}
	dim := len(points[0])
	if dim == 0 {
		return fmt.Errorf("kdtree: zero-dimensional points")
	}
	coords := make([]float32, 0, len(points)*dim)
	for j := range points {
		if len(points[j]) != dim {
			return fmt.Errorf("kdtree: inconsistent point dims %d vs %d", len(points[j]), dim)
		}
		coords = append(coords, points[j]...)
	}
	tree, err := kd.New(coords, append([]int32(nil), ids...), dim)
	if err != nil {
		return err
	}
	i.tree = tree
	return nil
}

// Query returns up to k nearest points by squared Euclidean distance,
// identical in length, order, identifiers, and distance values to a stable
// brute-force scan over the same inputs.
func (i *Index) Query(query []float32, k int) ([]int32, []float32, error) {
	if i.tree == nil {
		return nil, nil, nil
	}
	neighbors, err := i.tree.Nearest(query, k)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]int32, len(neighbors))
	dists := make([]float32, len(neighbors))
	for j, n := range neighbors {
		ids[j] = n.ID
		dists[j] = n.Distance
	}
	return ids, dists, nil
}

// QueryBatch answers one kNN query per entry of queries, concurrently up to
// the configured parallelism. The built tree is read-only, so no locking is
// involved; results are returned in query order.
func (i *Index) QueryBatch(ctx context.Context, queries [][]float32, k int) (ids [][]int32, distances [][]float32, err error) {
	ids = make([][]int32, len(queries))
	distances = make([][]float32, len(queries))
	if len(queries) == 0 {
		return ids, distances, nil
	}
	parallel := i.opts.QueryParallelism
	if parallel <= 0 {
		parallel = runtime.GOMAXPROCS(0)
	}
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for q := range queries {
		q := q
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			qIDs, qDists, err := i.Query(queries[q], k)
			if err != nil {
				return err
			}
			ids[q] = qIDs
			distances[q] = qDists
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return ids, distances, nil
}

// Len returns the number of indexed points.
func (i *Index) Len() int {
	if i.tree == nil {
		return 0
	}
	return i.tree.Len()
}

// Dimension returns the point dimensionality, or 0 before Build.
func (i *Index) Dimension() int {
	if i.tree == nil {
		return 0
	}
	return i.tree.Dimension()
}

// Close releases the tree. The index may be rebuilt with Build.
func (i *Index) Close() error {
	if i.tree == nil {
		return nil
	}
	err := i.tree.Close()
	i.tree = nil
	return err
}
