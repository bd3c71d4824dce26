// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// Reference input file names under the ref directory.
const (
	CategorizationFile     = "icdcategorisation.csv"
	ValidSubcategoriesFile = "icd10_subcategories.txt"
)

// ParseBook runs the parse stage for one edition: reads the converted
// codebook text, builds the lookup table, joins common categories, and
// writes the full and part CSVs into cfg.TablesDir. Progress and the flags
// report go to w.
func ParseBook(edition types.Edition, cfg types.ParseConfig, w io.Writer) (*Table, error) {
	textPath := filepath.Join(cfg.TextDir, string(edition)+".txt")
	lines, err := ReadLines(textPath)
	if err != nil {
		return nil, fmt.Errorf("reading codebook text: %w", err)
	}
	fmt.Fprintf(w, "parsing %s (%d lines)\n", filepath.Base(textPath), len(lines))

	g, err := grammarForConfig(edition, cfg)
	if err != nil {
		return nil, err
	}

	t := Build(lines, g, cfg.SampleLimit)

	mappings, err := LoadCategoryMappings(filepath.Join(cfg.RefDir, CategorizationFile))
	if err != nil {
		return nil, fmt.Errorf("loading categorization table: %w", err)
	}
	ApplyCommonCategories(t, mappings)

	part, duplicates := t.Part()
	for _, code := range duplicates {
		t.Flags.flag(&t.Flags.DuplicatePartCodes, code)
	}

	fullPath := filepath.Join(cfg.TablesDir, TableFilename(edition, types.VariantFull))
	if err := WriteTable(fullPath, t.Full()); err != nil {
		return nil, fmt.Errorf("writing full table: %w", err)
	}
	fmt.Fprintf(w, "wrote %s (%d records)\n", fullPath, len(t.Records))

	partPath := filepath.Join(cfg.TablesDir, TableFilename(edition, types.VariantPart))
	if err := WriteTable(partPath, part); err != nil {
		return nil, fmt.Errorf("writing part table: %w", err)
	}
	fmt.Fprintf(w, "wrote %s (%d records)\n", partPath, len(part))

	fmt.Fprintln(w)
	t.Flags.Report(w)
	return t, nil
}

// grammarForConfig builds the edition's grammar, loading the
// valid-subcategory list for ICD-10.
func grammarForConfig(edition types.Edition, cfg types.ParseConfig) (Grammar, error) {
	switch edition {
	case types.EditionICD9:
		return NewICD9Grammar(), nil
	case types.EditionICD10:
		valid, err := LoadValidSubcategories(filepath.Join(cfg.RefDir, ValidSubcategoriesFile))
		if err != nil {
			return nil, fmt.Errorf("loading valid subcategories: %w", err)
		}
		return NewICD10Grammar(valid), nil
	default:
		return nil, fmt.Errorf("unknown edition %q", edition)
	}
}

// ReadLines reads a text file into its physical lines. Carriage returns
// are stripped; a trailing final newline does not produce an empty line.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines, nil
}

// LoadValidSubcategories reads the hand-checked ICD-10 subcategory list,
// one header line per entry, blanks skipped.
func LoadValidSubcategories(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	var valid []string
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			valid = append(valid, trimmed)
		}
	}
	return valid, nil
}
