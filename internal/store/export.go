// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one conversion row joined with the ICD-9 part record it
// was derived from. Category comes from the records table; the conversion
// CSV does not carry it.
type ExportEntry struct {
	Code             string `json:"code" yaml:"code"`
	Description      string `json:"description" yaml:"description"`
	Category         string `json:"category,omitempty" yaml:"category,omitempty"`
	Subcategory      string `json:"subcategory" yaml:"subcategory"`
	CommonCategory   string `json:"commoncat" yaml:"commoncat"`
	ICD10Subcategory string `json:"icd10subcategory" yaml:"icd10subcategory"`
	Provenance       string `json:"provenance,omitempty" yaml:"provenance,omitempty"`
}

// ExportYAML writes the conversion table to w as YAML, in code order.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// ExportJSON writes the conversion table to w as indented JSON, in code
// order.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	entries, err := s.exportEntries(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

func (s *Store) exportEntries(ctx context.Context) ([]ExportEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.code, c.description, r.category, c.subcategory, c.commoncat,
			c.icd10subcategory, c.provenance
		FROM conversions c
		LEFT JOIN records r ON r.edition = 'icd9' AND r.variant = 'part' AND r.code = c.code
		ORDER BY c.code`)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	defer rows.Close()

	var entries []ExportEntry
	for rows.Next() {
		var (
			e        ExportEntry
			category sql.NullString
		)
		if err := rows.Scan(
			&e.Code, &e.Description, &category, &e.Subcategory,
			&e.CommonCategory, &e.ICD10Subcategory, &e.Provenance,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if category.Valid {
			e.Category = category.String
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
