// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"

	"github.com/pdiddy/icd-engine/internal/csvutil"
	"github.com/pdiddy/icd-engine/internal/textnorm"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// Conventional file names under the tables and ref directories.
const (
	ConversionFilename = "conversion.csv"
	OverridesFilename  = "manual_overrides.csv"
)

// conversionHeader is the final table's column set. The provenance column
// keeps the historical MatchStage name; downstream consumers select it by
// name.
var conversionHeader = []string{"code", "description", "subcategory", "commoncat", "icd10subcategory", "MatchStage"}

// WriteConversions writes the merged conversion table as a CSV at path.
func WriteConversions(path string, rows []types.Conversion) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{r.Code, r.Description, r.Subcategory, r.CommonCategory, r.ICD10Subcategory, r.Provenance}
	}
	return csvutil.Write(path, conversionHeader, records)
}

// ReadConversions reads a CSV written by WriteConversions.
func ReadConversions(path string) ([]types.Conversion, error) {
	tbl, err := csvutil.Read(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("code", "icd10subcategory", "MatchStage"); err != nil {
		return nil, fmt.Errorf("conversion table %s: %w", path, err)
	}

	rows := make([]types.Conversion, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		rows = append(rows, types.Conversion{
			Code:             tbl.Get(row, "code"),
			Description:      tbl.Get(row, "description"),
			Subcategory:      tbl.Get(row, "subcategory"),
			CommonCategory:   tbl.Get(row, "commoncat"),
			ICD10Subcategory: tbl.Get(row, "icd10subcategory"),
			Provenance:       tbl.Get(row, "MatchStage"),
		})
	}
	return rows, nil
}

// ReadOverrides reads the hand-maintained override table. All cells are
// lowercased so hand-typed codes and subcategories compare against parsed
// table text; the sentinel check relies on this.
func ReadOverrides(path string) ([]types.ManualOverride, error) {
	tbl, err := csvutil.Read(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("code", "manual_icd10", "subcategory_icd10"); err != nil {
		return nil, fmt.Errorf("override table %s: %w", path, err)
	}

	overrides := make([]types.ManualOverride, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		overrides = append(overrides, types.ManualOverride{
			Code:             textnorm.Lower(tbl.Get(row, "code")),
			ManualICD10:      textnorm.Lower(tbl.Get(row, "manual_icd10")),
			SubcategoryICD10: textnorm.Lower(tbl.Get(row, "subcategory_icd10")),
		})
	}
	return overrides, nil
}
