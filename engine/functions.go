package engine

import (
	"database/sql"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
	"math"

	sqlite "modernc.org/sqlite"
)

// RegisterVectorFunctions registers knn_sqdist and knn_l2 with the driver so
// they are available on connections opened after this call. Both take two
// coordinate BLOBs (little-endian float32 sequences) of equal dimension;
// knn_sqdist returns the squared Euclidean distance, the unit every index
// in this module reports, and knn_l2 its square root.
// Note: existing open connections will not see new functions.
func RegisterVectorFunctions(_ *sql.DB) error {
	// Idempotent registration; the driver rejects duplicates.
	_ = sqlite.RegisterDeterministicScalarFunction("knn_sqdist", 2, knnSqDistImpl)
	_ = sqlite.RegisterDeterministicScalarFunction("knn_l2", 2, knnL2Impl)
	return nil
}

func asPoint(arg driver.Value) ([]float32, error) {
	switch v := arg.(type) {
	case nil:
		return nil, nil
	case []byte:
		return decodePoint(v)
	default:
		return nil, fmt.Errorf("engine: unsupported argument type %T for point; want BLOB", arg)
	}
}

func knnSqDistImpl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoPoints("knn_sqdist", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	d, err := sqdist(a, b)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func knnL2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	a, b, err := twoPoints("knn_l2", args)
	if err != nil || a == nil || b == nil {
		return nil, err
	}
	d, err := sqdist(a, b)
	if err != nil {
		return nil, err
	}
	return math.Sqrt(d), nil
}

func twoPoints(fn string, args []driver.Value) ([]float32, []float32, error) {
	if len(args) != 2 {
		return nil, nil, fmt.Errorf("%s: expected 2 arguments, got %d", fn, len(args))
	}
	a, err := asPoint(args[0])
	if err != nil {
		return nil, nil, err
	}
	b, err := asPoint(args[1])
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

// Local minimal helpers to avoid import cycles in tests.
func decodePoint(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("engine: invalid point blob length %d", len(b))
	}
	n := len(b) / 4
	v := make([]float32, n)
	for i := 0; i < n; i++ {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v, nil
}

func sqdist(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("engine: dimension mismatch %d vs %d", len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("engine: distance on empty points")
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum, nil
}
