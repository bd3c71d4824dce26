// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"strings"

	"github.com/pdiddy/icd-engine/internal/textnorm"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// Table is the result of one build pass over a codebook: the emitted
// records in input order plus the anomalies flagged along the way.
type Table struct {
	Edition types.Edition
	Records []types.CodeRecord
	Flags   Flags
}

// Build folds the classified line stream into code records. The accumulator
// is the current category and subcategory; each code entry is stamped with
// both and lowercased on emission. The walk is strictly forward: a record
// is never corrected when a later line reveals the header assignment was
// wrong (a description wrapped onto a second physical line classifies as a
// new header and is flagged, not repaired).
func Build(lines []string, g Grammar, sampleLimit int) *Table {
	t := &Table{
		Edition: g.Edition(),
		Flags:   NewFlags(sampleLimit),
	}

	var category, subcategory string
	subcategoryOpen := false
	skipNext := false

	for i, raw := range lines {
		if skipNext {
			skipNext = false
			continue
		}

		line := strings.TrimSpace(raw)
		next := ""
		if i+1 < len(lines) {
			next = strings.TrimSpace(lines[i+1])
		}

		cl := g.Classify(line, next)
		cl.Line = i + 1

		switch cl.Kind {
		case KindBlank:

		case KindChapterHeader:
			// The chapter title sits on the following line; both lines are
			// consumed as one unit.
			if cl.Title == "" {
				t.Flags.flag(&t.Flags.Unrecognized, line)
				continue
			}
			category = cl.Title
			subcategory = ""
			subcategoryOpen = false
			skipNext = true

		case KindCategoryHeader:
			category = cl.Title
			subcategory = cl.PresetSubcategory
			subcategoryOpen = cl.PresetSubcategory != ""

		case KindSubcategoryHeader:
			if !cl.Valid {
				t.Flags.flag(&t.Flags.InvalidSubcategories, cl.Title)
				continue
			}
			subcategory = cl.Title
			subcategoryOpen = true

		case KindCodeEntry:
			if g.RequireSubcategory() && !subcategoryOpen {
				t.Flags.flag(&t.Flags.CodesOutsideSubcategory, line)
				continue
			}
			if cl.DecimalInserted {
				t.Flags.flag(&t.Flags.InsertedDecimals, strings.ToLower(cl.Code))
			}
			t.Records = append(t.Records, types.CodeRecord{
				Code:        textnorm.Lower(cl.Code),
				Description: textnorm.Lower(cl.Description),
				Category:    textnorm.Lower(category),
				Subcategory: textnorm.Lower(subcategory),
			})

		case KindUnrecognized:
			if cl.CategoryCandidate {
				t.Flags.flag(&t.Flags.CategoriesWithoutSubcategory, line)
			} else {
				t.Flags.flag(&t.Flags.Unrecognized, line)
			}
		}
	}

	return t
}

// Full returns every record the build pass emitted.
func (t *Table) Full() []types.CodeRecord {
	return t.Records
}

// Part returns the bare-rubric subset of the table: records whose code the
// grammar's part rule accepts, deduplicated keep-first. The second return
// lists the codes of the dropped duplicates, in input order.
func (t *Table) Part() ([]types.CodeRecord, []string) {
	g := grammarFor(t.Edition)

	seen := make(map[string]bool)
	var part []types.CodeRecord
	var duplicates []string

	for _, rec := range t.Records {
		if !g.IsPartCode(rec.Code) {
			continue
		}
		if seen[rec.Code] {
			duplicates = append(duplicates, rec.Code)
			continue
		}
		seen[rec.Code] = true
		part = append(part, rec)
	}
	return part, duplicates
}

// grammarFor returns a grammar for code-shape checks only. The ICD-10
// instance carries no valid-subcategory list, which IsPartCode never needs.
func grammarFor(e types.Edition) Grammar {
	if e == types.EditionICD10 {
		return NewICD10Grammar(nil)
	}
	return NewICD9Grammar()
}
