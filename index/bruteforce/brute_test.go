package bruteforce

import "testing"

// TestQuery_Ordering checks ascending distance order and scan-order ties.
func TestQuery_Ordering(t *testing.T) {
	idx := &Index{}
	ids := []int32{100, 200, 300, 400}
	points := [][]float32{{2, 0}, {1, 0}, {-1, 0}, {3, 0}}
	if err := idx.Build(ids, points); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	gotIDs, gotDists, err := idx.Query([]float32{0, 0}, 3)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	// (1,0) and (-1,0) tie at squared distance 1; (1,0) was inserted first.
	if len(gotIDs) != 3 || gotIDs[0] != 200 || gotIDs[1] != 300 || gotIDs[2] != 100 {
		t.Fatalf("Query ids = %v, want [200 300 100]", gotIDs)
	}
	if gotDists[0] != 1 || gotDists[1] != 1 || gotDists[2] != 4 {
		t.Fatalf("Query distances = %v, want [1 1 4]", gotDists)
	}
}

// TestQuery_Boundaries covers k = 0, the empty index, and k beyond n.
func TestQuery_Boundaries(t *testing.T) {
	idx := &Index{}
	if err := idx.Build(nil, nil); err != nil {
		t.Fatalf("Build(empty) failed: %v", err)
	}
	if ids, dists, err := idx.Query([]float32{1}, 5); err != nil || ids != nil || dists != nil {
		t.Fatalf("Query on empty index = %v, %v, %v; want nil, nil, nil", ids, dists, err)
	}

	if err := idx.Build([]int32{1, 2}, [][]float32{{0}, {1}}); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if ids, _, err := idx.Query([]float32{0}, 0); err != nil || len(ids) != 0 {
		t.Fatalf("Query(k=0) = %v, %v; want empty", ids, err)
	}
	ids, _, err := idx.Query([]float32{0}, 9)
	if err != nil {
		t.Fatalf("Query(k=9) failed: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("Query(k=9) returned %d neighbors, want 2", len(ids))
	}
}

// TestBuild_Validation exercises the shape checks.
func TestBuild_Validation(t *testing.T) {
	idx := &Index{}
	if err := idx.Build([]int32{1}, [][]float32{{1}, {2}}); err == nil {
		t.Fatal("Build with mismatched lengths should fail")
	}
	if err := idx.Build([]int32{1, 2}, [][]float32{{1, 2}, {3}}); err == nil {
		t.Fatal("Build with ragged points should fail")
	}
	if err := idx.Build([]int32{1}, [][]float32{{1, 2}}); err != nil {
		t.Fatalf("valid Build failed: %v", err)
	}
	if _, _, err := idx.Query([]float32{1}, 1); err == nil {
		t.Fatal("Query with mismatched dimension should fail")
	}
}
