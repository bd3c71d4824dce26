// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"regexp"
	"strings"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// ICD-9 line patterns. Codes are numeric, V- or E-prefixed, or two digits
// plus a letter; subcategory headers end in a parenthesized code range
// (ASCII hyphen or en dash, as the source prints both).
var (
	icd9CodeRe   = regexp.MustCompile(`^([0-9]+|[VE][0-9]+|[0-9]{2}[A-Z])(\.[0-9]+)?\s+(.*)$`)
	icd9SubcatRe = regexp.MustCompile(`^(.*?)\s+\(([VE]?[0-9]+(\.[0-9]+)?\s*[-–]\s*[VE]?[0-9]+(\.[0-9]+)?)\)$`)
)

// Two headings of the tabular list follow neither the category nor the
// subcategory shape and are matched literally, source typo included.
const (
	icd9AdditionalCodes = "ADDITIONAL DIAGNOSTIC CODES"
	icd9Supplementary   = "SUPPLEMENTARY CLASSIFICATION OF FACTORS INFLUENCING HEATLH STATUS AND CONTACT WITH HEALTH SERVICES"

	// icd9SupplementarySubcategory is the first block of the supplementary
	// classification, which the codebook never prints as its own header.
	icd9SupplementarySubcategory = "PERSONS WITH HEALTH HAZARDS RELATED TO COMMUNICABLE DISEASES (V01 – V07.9)"
)

type icd9Grammar struct{}

// NewICD9Grammar returns the grammar for the ICD-9 tabular list.
func NewICD9Grammar() Grammar { return icd9Grammar{} }

func (icd9Grammar) Edition() types.Edition { return types.EditionICD9 }

func (icd9Grammar) RequireSubcategory() bool { return false }

// IsPartCode keeps the bare three-character rubrics.
func (icd9Grammar) IsPartCode(code string) bool {
	return len(code) == 3 && !strings.Contains(code, ".")
}

func (icd9Grammar) Classify(line, next string) ClassifiedLine {
	if line == "" {
		return ClassifiedLine{Kind: KindBlank}
	}

	switch strings.ToUpper(line) {
	case icd9AdditionalCodes:
		// Acts as category and subcategory at once.
		return ClassifiedLine{Kind: KindCategoryHeader, Title: line, PresetSubcategory: line}
	case icd9Supplementary:
		return ClassifiedLine{Kind: KindCategoryHeader, Title: line, PresetSubcategory: icd9SupplementarySubcategory}
	}

	if m := icd9CodeRe.FindStringSubmatch(line); m != nil {
		code, decimal, desc := m[1], m[2], m[3]
		cl := ClassifiedLine{Kind: KindCodeEntry, Description: desc}
		// Four bare digits mean the printed decimal point was lost during
		// text conversion; well-formed numeric rubrics carry three.
		if decimal == "" && len(code) == 4 && code[0] >= '0' && code[0] <= '9' {
			cl.Code = code[:3] + "." + code[3:]
			cl.DecimalInserted = true
		} else {
			cl.Code = code + decimal
		}
		return cl
	}

	if m := icd9SubcatRe.FindStringSubmatch(line); m != nil {
		return ClassifiedLine{
			Kind:  KindSubcategoryHeader,
			Title: strings.TrimSpace(m[1]),
			Range: m[2],
			Valid: true,
		}
	}

	// A category heading has no shape of its own; it is recognized by the
	// subcategory header printed directly beneath it. Without that anchor
	// the line cannot be told apart from stray text and is only flagged.
	if next != "" && icd9SubcatRe.MatchString(next) {
		return ClassifiedLine{Kind: KindCategoryHeader, Title: line}
	}

	return ClassifiedLine{Kind: KindUnrecognized, CategoryCandidate: true}
}
