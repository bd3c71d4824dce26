// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"

	"github.com/pdiddy/icd-engine/internal/csvutil"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// EquivalenceFilename is the matcher's output table under the tables
// directory.
const EquivalenceFilename = "equivalence.csv"

// equivalenceHeader is the equivalence table's column set. MatchStage and
// MatchedDescription keep their historical capitalization; downstream
// notebooks select them by name. Scores are run diagnostics and are not
// persisted.
var equivalenceHeader = []string{
	"code", "description", "category", "subcategory", "commoncat",
	"icd10subcategory", "MatchStage", "MatchedDescription",
}

// WriteEquivalences writes the matcher output as a CSV at path.
func WriteEquivalences(path string, rows []types.Equivalence) error {
	records := make([][]string, len(rows))
	for i, r := range rows {
		records[i] = []string{
			r.Code, r.Description, r.Category, r.Subcategory, r.CommonCategory,
			r.ICD10Subcategory, string(r.Stage), r.MatchedDescription,
		}
	}
	return csvutil.Write(path, equivalenceHeader, records)
}

// ReadEquivalences reads a CSV written by WriteEquivalences.
func ReadEquivalences(path string) ([]types.Equivalence, error) {
	tbl, err := csvutil.Read(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("code", "description", "subcategory", "commoncat", "icd10subcategory", "MatchStage"); err != nil {
		return nil, fmt.Errorf("equivalence table %s: %w", path, err)
	}

	rows := make([]types.Equivalence, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		rows = append(rows, types.Equivalence{
			CodeRecord: types.CodeRecord{
				Code:           tbl.Get(row, "code"),
				Description:    tbl.Get(row, "description"),
				Category:       tbl.Get(row, "category"),
				Subcategory:    tbl.Get(row, "subcategory"),
				CommonCategory: tbl.Get(row, "commoncat"),
			},
			ICD10Subcategory:   tbl.Get(row, "icd10subcategory"),
			Stage:              types.MatchStage(tbl.Get(row, "MatchStage")),
			MatchedDescription: tbl.Get(row, "MatchedDescription"),
		})
	}
	return rows, nil
}
