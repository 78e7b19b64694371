// Package table loads and saves the tabular datasets the batch operates on.
// Two format families are supported: delimited text (.csv) and spreadsheet
// workbooks (.xls/.xlsx). A dataset always round-trips within its own family.
package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Format identifies the serialization family of a table.
type Format int

const (
	FormatCSV Format = iota
	FormatXLSX
)

// Ext returns the file extension conventionally used for the format.
func (f Format) Ext() string {
	if f == FormatXLSX {
		return "xlsx"
	}
	return "csv"
}

// UnsupportedFormatError is the one batch-fatal input condition: a file whose
// extension maps to no known format family.
type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format: %s (want .csv, .xls, or .xlsx)", filepath.Base(e.Path))
}

// Table is an in-memory dataset: a header row plus data rows. Rows may be
// ragged; Cell pads reads with empty strings.
type Table struct {
	Header []string
	Rows   [][]string
	Format Format
}

// DetectFormat maps a file extension to its format family.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xls", ".xlsx":
		return FormatXLSX, nil
	default:
		return 0, &UnsupportedFormatError{Path: path}
	}
}

// Load reads a CSV or XLSX file into a Table. The first row is the header.
func Load(path string) (*Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	var rows [][]string
	switch format {
	case FormatCSV:
		rows, err = loadCSV(path)
	case FormatXLSX:
		rows, err = loadXLSX(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("read %s: file has no header row", filepath.Base(path))
	}
	return &Table{Header: rows[0], Rows: rows[1:], Format: format}, nil
}

func loadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	// Tolerate ragged rows; Cell pads short ones on access.
	r.FieldsPerRecord = -1
	return r.ReadAll()
}

func loadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return f.GetRows(sheets[0])
}

// ColumnIndex resolves a header name to its position. Lookup is exact first,
// then case-insensitive.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, h := range t.Header {
		if h == name {
			return i, true
		}
	}
	for i, h := range t.Header {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the value at (row, col), or "" when the row is too short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Column returns all values of one column in row order, padded for ragged
// rows.
func (t *Table) Column(col int) []string {
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out
}

// AppendColumn adds a named column on the right. values must carry exactly one
// entry per data row.
func (t *Table) AppendColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}
	t.Header = append(t.Header, name)
	width := len(t.Header)
	for i, row := range t.Rows {
		for len(row) < width-1 {
			row = append(row, "")
		}
		t.Rows[i] = append(row, values[i])
	}
	return nil
}

// Save writes the table to path in the table's own format family.
func (t *Table) Save(path string) error {
	switch t.Format {
	case FormatXLSX:
		return t.saveXLSX(path)
	default:
		return t.saveCSV(path)
	}
}

func (t *Table) saveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("write output: %w", err)
	}
	return f.Close()
}

func (t *Table) saveXLSX(path string) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := setRow(f, sheet, 1, t.Header); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	for i, row := range t.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return f.SetSheetRow(sheet, cell, &cells)
}
