package knn

import (
	"context"
	"fmt"
	"sync"

	"github.com/viant/kdtree/index"
	"github.com/viant/kdtree/index/bruteforce"
	"github.com/viant/kdtree/index/kdtree"
	"github.com/viant/kdtree/vector"
)

// Kind names an index implementation.
type Kind string

const (
	// KindAuto picks bruteforce below the auto threshold and kdtree above.
	KindAuto Kind = "auto"
	// KindBrute always scans exhaustively.
	KindBrute Kind = "brute"
	// KindKDTree always builds the k-d tree.
	KindKDTree Kind = "kdtree"
)

// defaultAutoThreshold is the dataset size above which KindAuto switches
// from the exhaustive scan to the k-d tree.
const defaultAutoThreshold = 128

// Options configures a Searcher.
type Options struct {
	// Kind selects the index implementation; defaults to KindAuto.
	Kind Kind
	// AutoThreshold overrides the KindAuto switchover size when > 0.
	AutoThreshold int
}

// Option mutates Options.
type Option func(o *Options)

// WithKind pins the index implementation.
func WithKind(kind Kind) Option {
	return func(o *Options) { o.Kind = kind }
}

// WithAutoThreshold sets the KindAuto switchover dataset size.
func WithAutoThreshold(n int) Option {
	return func(o *Options) { o.AutoThreshold = n }
}

// Searcher binds a point store to in-memory kNN indexes, one per dataset.
// Indexes are built lazily from stored points on first use, cached, and
// rebuilt after Invalidate; they are never persisted. Concurrent searches
// for the same dataset share a single build.
type Searcher struct {
	store vector.Store
	opts  Options

	mu      sync.Mutex
	entries map[string]*cacheEntry
}

// cacheEntry coordinates concurrent access to one dataset's index: at most
// one goroutine builds while the others wait on cond.
type cacheEntry struct {
	mu       sync.Mutex
	cond     *sync.Cond
	idx      index.Index
	building bool
}

func newCacheEntry() *cacheEntry {
	e := &cacheEntry{}
	e.cond = sync.NewCond(&e.mu)
	return e
}

func (e *cacheEntry) get() index.Index {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.idx
}

func (e *cacheEntry) set(idx index.Index) {
	e.mu.Lock()
	e.idx = idx
	e.mu.Unlock()
}

func (e *cacheEntry) startBuild() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.idx != nil || e.building {
		return false
	}
	e.building = true
	return true
}

func (e *cacheEntry) waitForBuild() index.Index {
	e.mu.Lock()
	for e.building {
		e.cond.Wait()
	}
	idx := e.idx
	e.mu.Unlock()
	return idx
}

func (e *cacheEntry) finishBuild() {
	e.mu.Lock()
	e.building = false
	e.cond.Broadcast()
	e.mu.Unlock()
}

// NewSearcher creates a Searcher over the given point store.
func NewSearcher(store vector.Store, options ...Option) (*Searcher, error) {
	if store == nil {
		return nil, fmt.Errorf("knn: store is nil")
	}
	opts := Options{Kind: KindAuto}
	for _, opt := range options {
		opt(&opts)
	}
	switch opts.Kind {
	case KindAuto, KindBrute, KindKDTree:
	default:
		return nil, fmt.Errorf("knn: unknown index kind %q", opts.Kind)
	}
	return &Searcher{
		store:   store,
		opts:    opts,
		entries: make(map[string]*cacheEntry),
	}, nil
}

// Search answers one kNN query against the named dataset, building the
// dataset's index first if no cached one exists.
func (s *Searcher) Search(ctx context.Context, dataset string, query []float32, k int) ([]int32, []float32, error) {
	idx, err := s.ensureIndex(ctx, dataset)
	if err != nil {
		return nil, nil, err
	}
	return idx.Query(query, k)
}

// Invalidate drops the cached index for a dataset, forcing a rebuild from
// stored points on next use. It returns true when an index was cached.
func (s *Searcher) Invalidate(dataset string) bool {
	s.mu.Lock()
	entry := s.entries[dataset]
	s.mu.Unlock()
	if entry == nil {
		return false
	}
	had := entry.get() != nil
	entry.set(nil)
	return had
}

func (s *Searcher) entry(dataset string) *cacheEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry := s.entries[dataset]
	if entry == nil {
		entry = newCacheEntry()
		s.entries[dataset] = entry
	}
	return entry
}

func (s *Searcher) ensureIndex(ctx context.Context, dataset string) (index.Index, error) {
	if dataset == "" {
		return nil, fmt.Errorf("knn: dataset name is required")
	}
	entry := s.entry(dataset)
	for {
		if idx := entry.get(); idx != nil {
			return idx, nil
		}
		if entry.startBuild() {
			break
		}
		if idx := entry.waitForBuild(); idx != nil {
			return idx, nil
		}
	}
	defer entry.finishBuild()

	ids, points, err := s.store.LoadDataset(ctx, dataset)
	if err != nil {
		return nil, err
	}
	built, err := s.buildIndex(ids, points)
	if err != nil {
		return nil, err
	}
	entry.set(built)
	return built, nil
}

func (s *Searcher) buildIndex(ids []int32, points [][]float32) (index.Index, error) {
	var idx index.Index
	switch s.resolveKind(len(points)) {
	case KindKDTree:
		idx = kdtree.New()
	default:
		idx = &bruteforce.Index{}
	}
	if err := idx.Build(ids, points); err != nil {
		return nil, err
	}
	return idx, nil
}

func (s *Searcher) resolveKind(count int) Kind {
	switch s.opts.Kind {
	case KindBrute, KindKDTree:
		return s.opts.Kind
	}
	threshold := s.opts.AutoThreshold
	if threshold <= 0 {
		threshold = defaultAutoThreshold
	}
	if count >= threshold {
		return KindKDTree
	}
	return KindBrute
}
