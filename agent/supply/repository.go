package supply

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

var supplierColumns = []string{"supplier", "cost", "delivery_time", "past_delays", "quality_score", "reliability"}

type Supplier struct {
	Name         string
	Cost         float64
	DeliveryTime float64
	PastDelays   float64
	QualityScore float64
	Reliability  float64
}

func (s Supplier) features() []float64 {
	return []float64{s.Cost, s.DeliveryTime, s.PastDelays, s.QualityScore}
}

// SupplierRepository loads and saves the whole supplier table.
type SupplierRepository interface {
	LoadSuppliers(ctx context.Context) ([]Supplier, error)
	SaveSuppliers(ctx context.Context, suppliers []Supplier) error
}

type CSVSupplierRepository struct {
	path string
}

func NewCSVSupplierRepository(path string) *CSVSupplierRepository {
	return &CSVSupplierRepository{path: path}
}

func (r *CSVSupplierRepository) Path() string {
	return r.path
}

func (r *CSVSupplierRepository) LoadSuppliers(ctx context.Context) ([]Supplier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t, err := readTable(r.path)
	if err != nil {
		return nil, err
	}

	out := make([]Supplier, 0, t.len())
	for i := 0; i < t.len(); i++ {
		name, err := t.cell(i, "supplier")
		if err != nil {
			return nil, err
		}
		s := Supplier{Name: name}
		for col, dst := range map[string]*float64{
			"cost":          &s.Cost,
			"delivery_time": &s.DeliveryTime,
			"past_delays":   &s.PastDelays,
			"quality_score": &s.QualityScore,
			"reliability":   &s.Reliability,
		} {
			v, err := t.float(i, col)
			if err != nil {
				return nil, err
			}
			*dst = v
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *CSVSupplierRepository) SaveSuppliers(ctx context.Context, suppliers []Supplier) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(supplierColumns); err != nil {
		return err
	}
	for _, s := range suppliers {
		record := []string{
			s.Name,
			formatFloat(s.Cost),
			formatFloat(s.DeliveryTime),
			formatFloat(s.PastDelays),
			formatFloat(s.QualityScore),
			formatFloat(s.Reliability),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create supplier dir: %w", err)
		}
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", r.path, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type InMemorySupplierRepository struct {
	mu        sync.Mutex
	suppliers []Supplier
	Saves     int
}

func NewInMemorySupplierRepository(seed ...Supplier) *InMemorySupplierRepository {
	return &InMemorySupplierRepository{suppliers: append([]Supplier(nil), seed...)}
}

func (r *InMemorySupplierRepository) LoadSuppliers(context.Context) ([]Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Supplier(nil), r.suppliers...), nil
}

func (r *InMemorySupplierRepository) SaveSuppliers(_ context.Context, suppliers []Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers = append([]Supplier(nil), suppliers...)
	r.Saves++
	return nil
}
