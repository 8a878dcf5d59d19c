package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Load reads a table from a .csv or .xlsx file
func Load(path string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".txt":
		return LoadCSV(path)
	case ".xlsx", ".xlsm":
		return LoadXLSX(path, "")
	default:
		return nil, fmt.Errorf("unsupported file type: %s (supported: .csv, .xlsx)", filepath.Ext(path))
	}
}

// LoadCSV reads a CSV file whose first row is the header
func LoadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return t, nil
}

// ReadCSV reads CSV records from r
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("file is empty")
		}
		return nil, err
	}
	// Strip a UTF-8 BOM written by spreadsheet exports
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return NewTable(header, rows)
}

// LoadXLSX reads a worksheet; an empty sheet name selects the first sheet.
// Short rows are padded with empty cells.
func LoadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheet)
	}

	header := rows[0]
	body := make([][]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		if len(r) > len(header) {
			return nil, fmt.Errorf("sheet %s: row has %d cells, header has %d", sheet, len(r), len(header))
		}
		padded := make([]string, len(header))
		copy(padded, r)
		body = append(body, padded)
	}
	return NewTable(header, body)
}

// WriteCSV writes the table with its header to path, creating parent directories
func (t *Table) WriteCSV(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := t.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// Write writes the table as CSV to w
func (t *Table) Write(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range t.Rows {
		if err := writer.Write(r); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
