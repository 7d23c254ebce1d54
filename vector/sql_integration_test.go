package vector

import (
	"testing"

	"github.com/viant/kdtree/engine"
)

// TestSQLOrderByKnnSqDist validates that the knn_sqdist SQL function can be
// used in an ORDER BY clause over the points table, with coordinates stored
// as BLOBs via EncodePoint.
func TestSQLOrderByKnnSqDist(t *testing.T) {
	// Register functions before any connection work.
	if err := engine.RegisterVectorFunctions(nil); err != nil {
		t.Fatalf("RegisterVectorFunctions: %v", err)
	}
	db, err := engine.Open(":memory:")
	if err != nil {
		t.Fatalf("engine.Open(:memory:) failed: %v", err)
	}
	defer db.Close()

	if err := EnsureSchema(db); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	for i, coords := range [][]float32{{4, 0}, {1, 0}, {2, 0}} {
		blob, err := EncodePoint(coords)
		if err != nil {
			t.Fatalf("EncodePoint failed: %v", err)
		}
		if _, err := db.Exec(`INSERT INTO points(dataset_id, id, coords) VALUES('d', ?, ?)`, i, blob); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	qBlob, err := EncodePoint([]float32{0, 0})
	if err != nil {
		t.Fatalf("EncodePoint query failed: %v", err)
	}
	rows, err := db.Query(`SELECT id FROM points WHERE dataset_id = 'd' ORDER BY knn_sqdist(coords, ?)`, qBlob)
	if err != nil {
		t.Fatalf("ORDER BY knn_sqdist query failed: %v", err)
	}
	defer rows.Close()

	var order []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		order = append(order, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows error: %v", err)
	}
	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 0 {
		t.Fatalf("order = %v, want [1 2 0]", order)
	}
}
