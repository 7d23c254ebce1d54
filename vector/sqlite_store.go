package vector

import (
	"context"
	"database/sql"
	"fmt"
)

// SQLiteStore is a Store backed by a SQLite database. It persists point
// datasets only; indexes are always rebuilt in memory from the stored
// points and are never written to disk.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed Store and ensures the points
// schema exists.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, fmt.Errorf("vector: db is nil")
	}
	if err := EnsureSchema(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// AddPoints inserts points into the named dataset in one transaction.
func (s *SQLiteStore) AddPoints(ctx context.Context, dataset string, points []Point) error {
	if dataset == "" {
		return fmt.Errorf("vector: dataset name is required")
	}
	if len(points) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points(dataset_id, id, coords) VALUES(?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range points {
		if len(p.Coords) == 0 {
			return fmt.Errorf("vector: point %d has no coordinates", p.ID)
		}
		blob, err := EncodePoint(p.Coords)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, dataset, p.ID, blob); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// LoadDataset returns identifiers and coordinates in rowid order, which is
// insertion order for this schema.
func (s *SQLiteStore) LoadDataset(ctx context.Context, dataset string) ([]int32, [][]float32, error) {
	if dataset == "" {
		return nil, nil, fmt.Errorf("vector: dataset name is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, coords FROM points WHERE dataset_id = ? ORDER BY rowid`, dataset)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var ids []int32
	var points [][]float32
	for rows.Next() {
		var id int32
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, nil, err
		}
		coords, err := DecodePoint(blob)
		if err != nil {
			return nil, nil, err
		}
		ids = append(ids, id)
		points = append(points, coords)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return ids, points, nil
}

// Remove deletes a point from the dataset.
func (s *SQLiteStore) Remove(ctx context.Context, dataset string, id int32) error {
	if dataset == "" {
		return fmt.Errorf("vector: dataset name is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM points WHERE dataset_id = ? AND id = ?`, dataset, id)
	return err
}

// Ensure SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
