// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"fmt"

	"github.com/pdiddy/icd-engine/internal/csvutil"
	"github.com/pdiddy/icd-engine/internal/textnorm"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// LoadCategoryMappings reads the hand-maintained categorization table
// linking ICD-9 and ICD-10 chapter headings through a shared commoncat key.
// All cells are lowercased to match parsed text.
func LoadCategoryMappings(path string) ([]types.CategoryMapping, error) {
	tbl, err := csvutil.Read(path)
	if err != nil {
		return nil, err
	}
	if err := tbl.Require("icd9cat", "icd10cat", "commoncat"); err != nil {
		return nil, fmt.Errorf("categorization table %s: %w", path, err)
	}

	mappings := make([]types.CategoryMapping, 0, len(tbl.Rows))
	for _, row := range tbl.Rows {
		mappings = append(mappings, types.CategoryMapping{
			ICD9Category:   textnorm.Lower(tbl.Get(row, "icd9cat")),
			ICD10Category:  textnorm.Lower(tbl.Get(row, "icd10cat")),
			CommonCategory: textnorm.Lower(tbl.Get(row, "commoncat")),
		})
	}
	return mappings, nil
}

// ApplyCommonCategories left-joins the commoncat key onto every record by
// category. ICD-9 tables join on the icd9cat column, ICD-10 on icd10cat.
// Records whose category has no mapping keep an empty CommonCategory;
// each distinct unmapped category is flagged once.
func ApplyCommonCategories(t *Table, mappings []types.CategoryMapping) {
	byCategory := make(map[string]string, len(mappings))
	for _, m := range mappings {
		key := m.ICD9Category
		if t.Edition == types.EditionICD10 {
			key = m.ICD10Category
		}
		if _, taken := byCategory[key]; !taken {
			byCategory[key] = m.CommonCategory
		}
	}

	unmapped := make(map[string]bool)
	for i := range t.Records {
		common, ok := byCategory[t.Records[i].Category]
		if !ok {
			if cat := t.Records[i].Category; cat != "" && !unmapped[cat] {
				unmapped[cat] = true
				t.Flags.flag(&t.Flags.UnmappedCategories, cat)
			}
			continue
		}
		t.Records[i].CommonCategory = common
	}
}
