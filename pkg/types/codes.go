// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// Edition identifies which ICD revision a codebook or table belongs to.
type Edition string

const (
	EditionICD9  Edition = "icd9"
	EditionICD10 Edition = "icd10"
)

// AllEditions lists the supported editions in canonical order.
var AllEditions = []Edition{EditionICD9, EditionICD10}

// ParseEdition converts a flag or filename token into an Edition.
func ParseEdition(s string) (Edition, error) {
	for _, e := range AllEditions {
		if string(e) == s {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown edition %q (valid: icd9, icd10)", s)
}

// TableVariant selects which projection of a parsed codebook a table holds.
type TableVariant string

const (
	// VariantFull keeps every code entry emitted by the parser.
	VariantFull TableVariant = "full"

	// VariantPart keeps only the bare rubric codes (no decimal part),
	// the granularity used for equivalence matching.
	VariantPart TableVariant = "part"
)

// AllVariants lists the table variants in canonical order.
var AllVariants = []TableVariant{VariantFull, VariantPart}

// ParseVariant converts a flag or filename token into a TableVariant.
func ParseVariant(s string) (TableVariant, error) {
	for _, v := range AllVariants {
		if string(v) == s {
			return v, nil
		}
	}
	return "", fmt.Errorf("unknown table variant %q (valid: full, part)", s)
}

// CodeRecord is one row of a parsed codebook lookup table. All text fields
// are lowercase; the parser normalizes them on emission.
type CodeRecord struct {
	// Code is the ICD code as printed, e.g. "250.0" or "a09".
	Code string `json:"code" yaml:"code"`

	// Description is the code's descriptive text.
	Description string `json:"description" yaml:"description"`

	// Category is the chapter-level heading the code appeared under.
	Category string `json:"category" yaml:"category"`

	// Subcategory is the block heading the code appeared under, with the
	// printed code range stripped.
	Subcategory string `json:"subcategory" yaml:"subcategory"`

	// CommonCategory is the hand-assigned cross-edition category key,
	// empty until the categorization join runs.
	CommonCategory string `json:"commoncat" yaml:"commoncat"`
}

// CategoryMapping is one row of the hand-maintained categorization table
// linking ICD-9 and ICD-10 chapter headings through a shared key.
type CategoryMapping struct {
	// ICD9Category is the ICD-9 chapter heading, lowercase.
	ICD9Category string `json:"icd9cat" yaml:"icd9cat"`

	// ICD10Category is the ICD-10 chapter heading, lowercase.
	ICD10Category string `json:"icd10cat" yaml:"icd10cat"`

	// CommonCategory is the shared key both headings map to.
	CommonCategory string `json:"commoncat" yaml:"commoncat"`
}
