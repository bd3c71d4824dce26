// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"regexp"
	"strings"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// ICD-10 line patterns. Chapters print a bare "Chapter N" marker with the
// title on the following line; subcategory headers end in a parenthesized
// alphanumeric code range like (A00-A09).
var (
	icd10ChapterRe = regexp.MustCompile(`^Chapter\s+\d+\s*$`)
	icd10SubcatRe  = regexp.MustCompile(`^([A-Z][\w\s,\[\]()\-]*?)\s*\((([A-Z]\d[A-Z0-9]?)(-[A-Z]\d[A-Z0-9]?)?)\)$`)
	icd10CodeRe    = regexp.MustCompile(`^([A-Z]\d[A-Z0-9]?(\.\d+)?)\s+(.*)$`)
	icd10PartRe    = regexp.MustCompile(`^[a-z]\d[a-z0-9]$`)
)

type icd10Grammar struct {
	// validSubcategories holds the hand-checked block headings. A candidate
	// header is accepted only when its title appears within one of these;
	// the codebook prints many range-shaped lines that are not headings.
	validSubcategories []string
}

// NewICD10Grammar returns the grammar for the ICD-10 tabular list. The
// valid-subcategory list gates which range-shaped lines count as headers;
// an empty list rejects every candidate.
func NewICD10Grammar(validSubcategories []string) Grammar {
	return &icd10Grammar{validSubcategories: validSubcategories}
}

func (*icd10Grammar) Edition() types.Edition { return types.EditionICD10 }

// RequireSubcategory: ICD-10 code lines count only beneath an open
// subcategory; anything code-shaped before the first block heading is a
// front-matter artifact.
func (*icd10Grammar) RequireSubcategory() bool { return true }

// IsPartCode keeps letter-digit-alphanumeric rubrics such as a01 or c9z.
func (*icd10Grammar) IsPartCode(code string) bool {
	return icd10PartRe.MatchString(code)
}

func (g *icd10Grammar) Classify(line, next string) ClassifiedLine {
	if line == "" {
		return ClassifiedLine{Kind: KindBlank}
	}

	// "Chapter N" with the chapter title on the next line. The title is
	// captured here so the builder can consume both lines as one unit.
	if icd10ChapterRe.MatchString(line) {
		return ClassifiedLine{Kind: KindChapterHeader, Title: next}
	}

	if m := icd10SubcatRe.FindStringSubmatch(line); m != nil {
		title := strings.TrimSpace(m[1])
		return ClassifiedLine{
			Kind:  KindSubcategoryHeader,
			Title: title,
			Range: m[2],
			Valid: g.isValidSubcategory(title),
		}
	}

	if m := icd10CodeRe.FindStringSubmatch(line); m != nil {
		return ClassifiedLine{Kind: KindCodeEntry, Code: m[1], Description: m[3]}
	}

	return ClassifiedLine{Kind: KindUnrecognized}
}

// isValidSubcategory reports whether the candidate title appears within any
// entry of the valid-subcategory list. Containment rather than equality:
// the list carries full header lines including their code ranges.
func (g *icd10Grammar) isValidSubcategory(title string) bool {
	for _, valid := range g.validSubcategories {
		if strings.Contains(valid, title) {
			return true
		}
	}
	return false
}
