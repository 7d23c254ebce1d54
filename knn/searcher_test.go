package knn

import (
	"context"
	"fmt"
	"testing"

	"github.com/viant/kdtree/engine"
	"github.com/viant/kdtree/vector"
)

func newTestStore(t *testing.T) vector.Store {
	t.Helper()
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := vector.EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	store, err := vector.NewSQLiteStore(db)
	if err != nil {
		t.Fatalf("NewSQLiteStore failed: %v", err)
	}
	return store
}

func seedDataset(t *testing.T, store vector.Store, dataset string, points []vector.Point) {
	t.Helper()
	if err := store.AddPoints(context.Background(), dataset, points); err != nil {
		t.Fatalf("AddPoints failed: %v", err)
	}
}

func TestSearcher_Search(t *testing.T) {
	store := newTestStore(t)
	seedDataset(t, store, "d", []vector.Point{
		{ID: 1, Coords: []float32{0, 0}},
		{ID: 2, Coords: []float32{10, 10}},
		{ID: 3, Coords: []float32{1, 1}},
	})
	searcher, err := NewSearcher(store)
	if err != nil {
		t.Fatalf("NewSearcher failed: %v", err)
	}

	ids, distances, err := searcher.Search(context.Background(), "d", []float32{0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("Search ids = %v, want [1 3]", ids)
	}
	if distances[0] != 0 || distances[1] != 2 {
		t.Fatalf("Search distances = %v, want [0 2]", distances)
	}
}

func TestSearcher_InvalidateRebuilds(t *testing.T) {
	store := newTestStore(t)
	seedDataset(t, store, "d", []vector.Point{{ID: 1, Coords: []float32{0, 0}}})
	searcher, err := NewSearcher(store)
	if err != nil {
		t.Fatalf("NewSearcher failed: %v", err)
	}
	ctx := context.Background()

	ids, _, err := searcher.Search(ctx, "d", []float32{0, 0}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("Search returned %d ids, want 1", len(ids))
	}

	// The cached index does not see new points until invalidated.
	seedDataset(t, store, "d", []vector.Point{{ID: 2, Coords: []float32{1, 1}}})
	ids, _, err = searcher.Search(ctx, "d", []float32{0, 0}, 5)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(ids) != 1 {
		t.Fatalf("stale index returned %d ids, want 1", len(ids))
	}
	if !searcher.Invalidate("d") {
		t.Fatal("Invalidate should report a cached index")
	}
	ids, _, err = searcher.Search(ctx, "d", []float32{0, 0}, 5)
	if err != nil {
		t.Fatalf("Search after Invalidate failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("rebuilt index returned %d ids, want 2", len(ids))
	}
	if searcher.Invalidate("missing") {
		t.Fatal("Invalidate on unknown dataset should report false")
	}
}

func TestSearcher_ConcurrentSearch(t *testing.T) {
	store := newTestStore(t)
	points := make([]vector.Point, 200)
	for i := range points {
		points[i] = vector.Point{ID: int32(i), Coords: []float32{float32(i), float32(i % 7)}}
	}
	seedDataset(t, store, "d", points)
	searcher, err := NewSearcher(store)
	if err != nil {
		t.Fatalf("NewSearcher failed: %v", err)
	}

	const workers = 8
	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			ids, _, err := searcher.Search(context.Background(), "d", []float32{3, 3}, 4)
			if err == nil && len(ids) != 4 {
				err = fmt.Errorf("got %d ids, want 4", len(ids))
			}
			errs <- err
		}()
	}
	for w := 0; w < workers; w++ {
		if err := <-errs; err != nil {
			t.Fatalf("concurrent Search failed: %v", err)
		}
	}
}

func TestSearcher_KindResolution(t *testing.T) {
	searcher := &Searcher{opts: Options{Kind: KindAuto, AutoThreshold: 10}}
	if kind := searcher.resolveKind(9); kind != KindBrute {
		t.Fatalf("resolveKind(9) = %v, want brute", kind)
	}
	if kind := searcher.resolveKind(10); kind != KindKDTree {
		t.Fatalf("resolveKind(10) = %v, want kdtree", kind)
	}
	searcher = &Searcher{opts: Options{Kind: KindBrute}}
	if kind := searcher.resolveKind(1 << 20); kind != KindBrute {
		t.Fatalf("pinned brute resolved to %v", kind)
	}
}

func TestNewSearcher_Validation(t *testing.T) {
	if _, err := NewSearcher(nil); err == nil {
		t.Fatal("NewSearcher(nil) should fail")
	}
	store := newTestStore(t)
	if _, err := NewSearcher(store, WithKind(Kind("bogus"))); err == nil {
		t.Fatal("NewSearcher with unknown kind should fail")
	}
}
