// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"fmt"
	"strings"

	"github.com/pdiddy/icd-engine/internal/csvutil"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// tableHeader is the column set of every generated lookup table.
var tableHeader = []string{"code", "description", "category", "subcategory", "commoncat"}

// TableFilename returns the conventional file name for a lookup table,
// e.g. icd9_part.csv.
func TableFilename(edition types.Edition, variant types.TableVariant) string {
	return fmt.Sprintf("%s_%s.csv", edition, variant)
}

// ParseTableFilename recovers the edition and variant from a lookup table
// file name. ok is false for names outside the convention.
func ParseTableFilename(name string) (types.Edition, types.TableVariant, bool) {
	base := strings.TrimSuffix(name, ".csv")
	if base == name {
		return "", "", false
	}
	parts := strings.SplitN(base, "_", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	edition, err := types.ParseEdition(parts[0])
	if err != nil {
		return "", "", false
	}
	variant, err := types.ParseVariant(parts[1])
	if err != nil {
		return "", "", false
	}
	return edition, variant, true
}

// WriteTable writes records as a lookup-table CSV at path.
func WriteTable(path string, records []types.CodeRecord) error {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = []string{r.Code, r.Description, r.Category, r.Subcategory, r.CommonCategory}
	}
	return csvutil.Write(path, tableHeader, rows)
}

// ReadTable reads a lookup-table CSV written by WriteTable. The commoncat
// column is optional; tables written before the categorization join lack it.
func ReadTable(path string) ([]types.CodeRecord, error) {
	tbl, err := csvutil.Read(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("code", "description", "category", "subcategory"); err != nil {
		return nil, fmt.Errorf("lookup table %s: %w", path, err)
	}

	records := make([]types.CodeRecord, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		records = append(records, types.CodeRecord{
			Code:           tbl.Get(row, "code"),
			Description:    tbl.Get(row, "description"),
			Category:       tbl.Get(row, "category"),
			Subcategory:    tbl.Get(row, "subcategory"),
			CommonCategory: tbl.Get(row, "commoncat"),
		})
	}
	return records, nil
}
