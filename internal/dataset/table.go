// Package dataset loads, cleans and aggregates tabular sales records.
//
// Cells are kept as raw strings so a table round-trips through CSV unchanged; numeric
// views are produced on demand with missing cells mapped to NaN.
package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Column types reported by Summary
const (
	TypeInt    = "int64"
	TypeFloat  = "float64"
	TypeObject = "object"
)

// missingTokens are the cell values treated as missing
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
}

// IsMissing reports whether a raw cell value counts as missing
func IsMissing(cell string) bool {
	return missingTokens[strings.TrimSpace(cell)]
}

// Table is an in-memory table with a header row
type Table struct {
	Columns []string
	Rows    [][]string
}

// Shape is the (rows, columns) size of a table
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// String renders the shape as "(rows, cols)"
func (s Shape) String() string {
	return fmt.Sprintf("(%d, %d)", s.Rows, s.Cols)
}

// Summary describes a table
type Summary struct {
	Shape   Shape             `json:"shape"`
	Columns []string          `json:"columns"`
	Types   map[string]string `json:"dtypes"`
	Missing map[string]int    `json:"missing"`
}

// NewTable creates a table and checks every row has one cell per column
func NewTable(columns []string, rows [][]string) (*Table, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("table has no columns")
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return nil, fmt.Errorf("duplicate column: %s", c)
		}
		seen[c] = true
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d cells, expected %d", i+1, len(row), len(columns))
		}
	}
	return &Table{Columns: columns, Rows: rows}, nil
}

// Shape returns the number of rows and columns
func (t *Table) Shape() Shape {
	return Shape{Rows: len(t.Rows), Cols: len(t.Columns)}
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	cols := append([]string(nil), t.Columns...)
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = append([]string(nil), r...)
	}
	return &Table{Columns: cols, Rows: rows}
}

// ColumnIndex returns the position of a column
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, c := range t.Columns {
		if c == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("unknown column: %s", name)
}

// Column returns the raw cells of a column
func (t *Table) Column(name string) ([]string, error) {
	idx, err := t.ColumnIndex(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = r[idx]
	}
	return out, nil
}

// Float64Column parses a column as float64; missing cells become NaN.
func (t *Table) Float64Column(name string) ([]float64, error) {
	cells, err := t.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(cells))
	for i, cell := range cells {
		if IsMissing(cell) {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, fmt.Errorf("column %s row %d: %q is not numeric", name, i+1, cell)
		}
		out[i] = v
	}
	return out, nil
}

// columnType infers the type of a column from its non-missing cells
func (t *Table) columnType(idx int) string {
	kind := TypeInt
	for _, r := range t.Rows {
		cell := strings.TrimSpace(r[idx])
		if IsMissing(cell) {
			// Integer columns with gaps are reported as float
			if kind == TypeInt {
				kind = TypeFloat
			}
			continue
		}
		if kind == TypeInt {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = TypeFloat
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return TypeObject
		}
	}
	if len(t.Rows) == 0 {
		return TypeObject
	}
	return kind
}

// NumericColumns returns the columns whose non-missing cells all parse as numbers
func (t *Table) NumericColumns() []string {
	var out []string
	for i, c := range t.Columns {
		if t.columnType(i) != TypeObject {
			out = append(out, c)
		}
	}
	return out
}

// NumericData returns the parsed numeric columns keyed by name
func (t *Table) NumericData() (map[string][]float64, error) {
	out := make(map[string][]float64)
	for _, c := range t.NumericColumns() {
		vals, err := t.Float64Column(c)
		if err != nil {
			return nil, err
		}
		out[c] = vals
	}
	return out, nil
}

// Summary returns shape, columns, inferred types and missing counts
func (t *Table) Summary() Summary {
	s := Summary{
		Shape:   t.Shape(),
		Columns: append([]string(nil), t.Columns...),
		Types:   make(map[string]string, len(t.Columns)),
		Missing: make(map[string]int, len(t.Columns)),
	}
	for i, c := range t.Columns {
		s.Types[c] = t.columnType(i)
		missing := 0
		for _, r := range t.Rows {
			if IsMissing(r[i]) {
				missing++
			}
		}
		s.Missing[c] = missing
	}
	return s
}
