package supply

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	contractx "github.com/mithran92/Agentic-AI-In-Supply-Chain/agent/contract"
)

// table is a header-indexed CSV file held in memory.
type table struct {
	path   string
	header []string
	index  map[string]int
	rows   [][]string
}

func readTable(path string) (*table, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", contractx.ErrDataMissing, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no header", contractx.ErrInsufficientData, path)
	}

	t := &table{
		path:  path,
		index: make(map[string]int, len(records[0])),
		rows:  records[1:],
	}
	for i, name := range records[0] {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		t.header = append(t.header, name)
		t.index[name] = i
	}
	return t, nil
}

func (t *table) len() int {
	return len(t.rows)
}

func (t *table) has(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *table) column(name string) (int, error) {
	i, ok := t.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s has no column %q", contractx.ErrDataMissing, t.path, name)
	}
	return i, nil
}

func (t *table) cell(row int, name string) (string, error) {
	col, err := t.column(name)
	if err != nil {
		return "", err
	}
	if col >= len(t.rows[row]) {
		return "", nil
	}
	return strings.TrimSpace(t.rows[row][col]), nil
}

func (t *table) float(row int, name string) (float64, error) {
	raw, err := t.cell(row, name)
	if err != nil {
		return 0, err
	}
	v, err := parseNumber(raw)
	if err != nil {
		return 0, fmt.Errorf("%s row %d column %q: %w", t.path, row+1, name, err)
	}
	return v, nil
}

func (t *table) strings(name string) ([]string, error) {
	out := make([]string, 0, len(t.rows))
	for i := range t.rows {
		v, err := t.cell(i, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (t *table) floats(name string) ([]float64, error) {
	out := make([]float64, 0, len(t.rows))
	for i := range t.rows {
		v, err := t.float(i, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// matrix returns one row per record with the requested columns in order.
func (t *table) matrix(cols ...string) ([][]float64, error) {
	out := make([][]float64, len(t.rows))
	for i := range t.rows {
		row := make([]float64, len(cols))
		for j, c := range cols {
			v, err := t.float(i, c)
			if err != nil {
				return nil, err
			}
			row[j] = v
		}
		out[i] = row
	}
	return out, nil
}

func parseNumber(raw string) (float64, error) {
	switch strings.ToLower(raw) {
	case "true":
		return 1, nil
	case "false", "":
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}
