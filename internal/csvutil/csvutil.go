// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package csvutil provides the header-addressed CSV reading and writing
// shared by the pipeline stages. All generated tables carry a header row;
// readers address cells by column name so column order never matters.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table is a parsed CSV file: the cleaned header and the rows under it.
type Table struct {
	Header []string
	Rows   [][]string

	cols map[string]int
}

// Read parses the CSV file at path. The first row is taken as the header.
// Rows may have fewer or more cells than the header; readers tolerate both.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("reading %s: file is empty", filepath.Base(path))
	}

	t := &Table{
		Header: make([]string, len(rows[0])),
		Rows:   rows[1:],
		cols:   make(map[string]int, len(rows[0])),
	}
	for i, cell := range rows[0] {
		name := cleanCell(cell)
		t.Header[i] = name
		if _, dup := t.cols[strings.ToLower(name)]; !dup {
			t.cols[strings.ToLower(name)] = i
		}
	}
	return t, nil
}

// Column returns the index of the named column, matched case-insensitively.
func (t *Table) Column(name string) (int, bool) {
	i, ok := t.cols[strings.ToLower(name)]
	return i, ok
}

// Require returns an error naming every listed column missing from the header.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if _, ok := t.Column(n); !ok {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s (header: %s)",
			strings.Join(missing, ", "), strings.Join(t.Header, ","))
	}
	return nil
}

// Get returns the named cell of a row, or "" when the column is absent or
// the row is short. Cell values are trimmed.
func (t *Table) Get(row []string, name string) string {
	i, ok := t.Column(name)
	if !ok || i >= len(row) {
		return ""
	}
	return cleanCell(row[i])
}

// Write creates the CSV file at path with the given header and rows,
// creating parent directories as needed.
func Write(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// cleanCell trims whitespace and a leading byte-order mark. Hand-maintained
// inputs frequently arrive as spreadsheet exports carrying both.
func cleanCell(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "\uFEFF")
	return v
}
