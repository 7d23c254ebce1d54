// Command knnbench generates a synthetic dataset, runs the brute-force
// reference scan and the k-d tree index over identical inputs, verifies that
// their results agree exactly, and reports timings.
//
// Configuration comes from KNNBENCH_* environment variables, e.g.:
//
//	KNNBENCH_DATA_POINTS=20000 KNNBENCH_QUERY_POINTS=500 KNNBENCH_DIM=8 knnbench
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/viant/kdtree/engine"
	"github.com/viant/kdtree/index/bruteforce"
	"github.com/viant/kdtree/index/kdtree"
	"github.com/viant/kdtree/internal/xrand"
	"github.com/viant/kdtree/vector"
)

// Config holds the benchmark parameters.
type Config struct {
	Seed        uint32 `envconfig:"SEED" default:"305419896"` // 0x12345678
	DataPoints  int    `envconfig:"DATA_POINTS" default:"10000"`
	QueryPoints int    `envconfig:"QUERY_POINTS" default:"200"`
	Dim         int    `envconfig:"DIM" default:"4"`
	K           int    `envconfig:"K" default:"8"`
	Parallel    int    `envconfig:"PARALLEL" default:"0"` // 0 = GOMAXPROCS
	// DSN, when set, round-trips the dataset through the SQLite point store
	// before indexing (e.g. "./bench.sqlite" or ":memory:").
	DSN string `envconfig:"DSN"`
}

func main() {
	var cfg Config
	if err := envconfig.Process("KNNBENCH", &cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Dim < 1 || cfg.DataPoints < 0 || cfg.QueryPoints < 0 || cfg.K < 0 {
		log.Fatalf("config: invalid parameters %+v", cfg)
	}

	fmt.Printf("knnbench:\n")
	fmt.Printf("  Seed:         %#x\n", cfg.Seed)
	fmt.Printf("  Data points:  %d\n", cfg.DataPoints)
	fmt.Printf("  Query points: %d\n", cfg.QueryPoints)
	fmt.Printf("  Dimension:    %d\n", cfg.Dim)
	fmt.Printf("  K:            %d\n", cfg.K)

	rng := xrand.New(cfg.Seed)
	ids, points := generateData(rng, cfg.DataPoints, cfg.Dim)
	queries := generateQueries(rng, cfg.QueryPoints, cfg.Dim)

	ctx := context.Background()
	if cfg.DSN != "" {
		var err error
		ids, points, err = roundTripStore(ctx, cfg.DSN, ids, points)
		if err != nil {
			log.Fatalf("sqlite round-trip: %v", err)
		}
		fmt.Printf("  Store:        %s (round-tripped %d points)\n", cfg.DSN, len(ids))
	}

	oracle := &bruteforce.Index{}
	if err := oracle.Build(ids, points); err != nil {
		log.Fatalf("bruteforce build: %v", err)
	}

	buildStart := time.Now()
	tree := kdtree.New(kdtree.WithQueryParallelism(cfg.Parallel))
	if err := tree.Build(ids, points); err != nil {
		log.Fatalf("kdtree build: %v", err)
	}
	fmt.Printf("  Tree build:   %s\n", time.Since(buildStart))

	oracleStart := time.Now()
	wantIDs := make([][]int32, len(queries))
	wantDists := make([][]float32, len(queries))
	for i, q := range queries {
		var err error
		wantIDs[i], wantDists[i], err = oracle.Query(q, cfg.K)
		if err != nil {
			log.Fatalf("bruteforce query %d: %v", i, err)
		}
	}
	oracleElapsed := time.Since(oracleStart)

	treeStart := time.Now()
	gotIDs, gotDists, err := tree.QueryBatch(ctx, queries, cfg.K)
	if err != nil {
		log.Fatalf("kdtree queries: %v", err)
	}
	treeElapsed := time.Since(treeStart)

	for i := range queries {
		if err := compare(wantIDs[i], wantDists[i], gotIDs[i], gotDists[i]); err != nil {
			log.Fatalf("query %d: results diverge: %v", i, err)
		}
	}

	fmt.Printf("  Brute scan:   %s (%d queries)\n", oracleElapsed, len(queries))
	fmt.Printf("  Tree search:  %s (%d queries)\n", treeElapsed, len(queries))
	fmt.Printf("  Results:      identical\n")
}

// generateData fills a dataset with uniform coordinates in [0, 1).
func generateData(rng *xrand.Source, n, dim int) ([]int32, [][]float32) {
	ids := make([]int32, n)
	points := make([][]float32, n)
	for i := 0; i < n; i++ {
		ids[i] = int32(i)
		p := make([]float32, dim)
		for d := range p {
			p[d] = rng.Float32()
		}
		points[i] = p
	}
	return ids, points
}

// generateQueries creates query points, occasionally duplicating an earlier
// one so exact-tie paths get exercised.
func generateQueries(rng *xrand.Source, n, dim int) [][]float32 {
	queries := make([][]float32, n)
	for i := 0; i < n; i++ {
		if i > 0 && rng.Intn(100) == 0 {
			dup := rng.Intn(i)
			queries[i] = queries[dup]
			continue
		}
		q := make([]float32, dim)
		for d := range q {
			q[d] = rng.Float32()
		}
		queries[i] = q
	}
	return queries
}

// roundTripStore writes the dataset to the SQLite point store and reads it
// back, exercising the durable path end to end.
func roundTripStore(ctx context.Context, dsn string, ids []int32, points [][]float32) ([]int32, [][]float32, error) {
	db, err := engine.Open(dsn)
	if err != nil {
		return nil, nil, err
	}
	defer db.Close()

	store, err := vector.NewSQLiteStore(db)
	if err != nil {
		return nil, nil, err
	}
	dataset := fmt.Sprintf("bench-%d", time.Now().UnixNano())
	records := make([]vector.Point, len(ids))
	for i := range ids {
		records[i] = vector.Point{ID: ids[i], Coords: points[i]}
	}
	if err := store.AddPoints(ctx, dataset, records); err != nil {
		return nil, nil, err
	}
	return store.LoadDataset(ctx, dataset)
}

func compare(wantIDs []int32, wantDists []float32, gotIDs []int32, gotDists []float32) error {
	if len(gotIDs) != len(wantIDs) {
		return fmt.Errorf("got %d neighbors, want %d", len(gotIDs), len(wantIDs))
	}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] || gotDists[i] != wantDists[i] {
			return fmt.Errorf("neighbor %d: got (%d, %v), want (%d, %v)", i, gotIDs[i], gotDists[i], wantIDs[i], wantDists[i])
		}
	}
	return nil
}
