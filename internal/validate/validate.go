// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package validate runs data-quality checks over the generated tables:
// duplicate codes, part/full containment, records outside any heading,
// unmapped categories, and conversion-table contract violations. Findings
// carry a severity; only errors should fail a pipeline run.
package validate

import (
	"fmt"
	"io"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// Severity ranks a finding. Errors break downstream consumers of the
// tables; warnings are data-quality notes.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Kind identifies a class of validation finding.
type Kind string

const (
	// KindDuplicateCode: a code appears more than once within one table.
	KindDuplicateCode Kind = "duplicate-code"

	// KindPartNotInFull: a part-table code is missing from the full table
	// of the same edition.
	KindPartNotInFull Kind = "part-not-in-full"

	// KindEmptyCategory and KindEmptySubcategory: a record carries no
	// category or subcategory heading.
	KindEmptyCategory    Kind = "empty-category"
	KindEmptySubcategory Kind = "empty-subcategory"

	// KindUnmappedCategory: a category whose records have no commoncat,
	// meaning the categorization table does not cover it.
	KindUnmappedCategory Kind = "unmapped-category"

	// KindDuplicateConversion: more than one conversion row for a code.
	KindDuplicateConversion Kind = "duplicate-conversion"

	// KindMissingConversion: an ICD-9 part code with no conversion row.
	KindMissingConversion Kind = "missing-conversion"

	// KindUnknownConversionCode: a conversion row whose code is not in
	// the ICD-9 part table.
	KindUnknownConversionCode Kind = "unknown-conversion-code"

	// KindSentinelMismatch: a conversion row violating the pairing rule:
	// the sentinel carries no provenance, real values carry a label.
	KindSentinelMismatch Kind = "sentinel-mismatch"

	// KindUnknownProvenance: a provenance label outside the vocabulary.
	KindUnknownProvenance Kind = "unknown-provenance"
)

// Severity returns the kind's severity. Containment failures and
// duplicate conversion rows break the one-row-per-code contract;
// everything else is survivable.
func (k Kind) Severity() Severity {
	switch k {
	case KindPartNotInFull, KindDuplicateConversion:
		return SeverityError
	default:
		return SeverityWarning
	}
}

// Issue is one validation finding.
type Issue struct {
	// Table names the table the finding is about, e.g. "icd9_part".
	Table string

	// Kind classifies the finding.
	Kind Kind

	// Code is the offending code, empty for aggregate findings.
	Code string

	// Detail is a human-readable explanation.
	Detail string
}

var knownProvenance = map[string]bool{
	types.ProvenanceFuzzySubcategory: true,
	types.ProvenanceFuzzyCode:        true,
	types.ProvenanceManualCategory:   true,
	types.ProvenanceManualCode:       true,
}

// Run checks every table present in the set and returns the findings in
// deterministic order: lookup tables in edition/variant order, then the
// conversion table.
func Run(set TableSet) []Issue {
	var issues []Issue

	for _, edition := range types.AllEditions {
		if full, ok := set.Full[edition]; ok {
			issues = append(issues, checkRecords(tableName(edition, types.VariantFull), full)...)
		}
		if part, ok := set.Part[edition]; ok {
			issues = append(issues, checkRecords(tableName(edition, types.VariantPart), part)...)
			if full, ok := set.Full[edition]; ok {
				issues = append(issues, checkContainment(edition, part, full)...)
			}
		}
	}

	if set.HasConversions {
		issues = append(issues, checkConversions(set.Conversions, set.Part[types.EditionICD9])...)
	}

	return issues
}

func tableName(edition types.Edition, variant types.TableVariant) string {
	return fmt.Sprintf("%s_%s", edition, variant)
}

func checkRecords(table string, records []types.CodeRecord) []Issue {
	var issues []Issue

	counts := make(map[string]int, len(records))
	for _, r := range records {
		counts[r.Code]++
	}
	reported := make(map[string]bool)
	for _, r := range records {
		if counts[r.Code] > 1 && !reported[r.Code] {
			reported[r.Code] = true
			issues = append(issues, Issue{
				Table:  table,
				Kind:   KindDuplicateCode,
				Code:   r.Code,
				Detail: fmt.Sprintf("appears %d times", counts[r.Code]),
			})
		}
	}

	for _, r := range records {
		if r.Category == "" {
			issues = append(issues, Issue{
				Table:  table,
				Kind:   KindEmptyCategory,
				Code:   r.Code,
				Detail: "record has no category heading",
			})
		}
		if r.Subcategory == "" {
			issues = append(issues, Issue{
				Table:  table,
				Kind:   KindEmptySubcategory,
				Code:   r.Code,
				Detail: "record has no subcategory heading",
			})
		}
	}

	// Unmapped commoncats are grouped by category so one gap in the
	// categorization table is one finding, not thousands.
	unmapped := make(map[string]int)
	var order []string
	for _, r := range records {
		if r.CommonCategory == "" && r.Category != "" {
			if unmapped[r.Category] == 0 {
				order = append(order, r.Category)
			}
			unmapped[r.Category]++
		}
	}
	for _, category := range order {
		issues = append(issues, Issue{
			Table:  table,
			Kind:   KindUnmappedCategory,
			Detail: fmt.Sprintf("category %q has %d records without a commoncat", category, unmapped[category]),
		})
	}

	return issues
}

func checkContainment(edition types.Edition, part, full []types.CodeRecord) []Issue {
	fullCodes := make(map[string]bool, len(full))
	for _, r := range full {
		fullCodes[r.Code] = true
	}

	var issues []Issue
	seen := make(map[string]bool)
	for _, r := range part {
		if !fullCodes[r.Code] && !seen[r.Code] {
			seen[r.Code] = true
			issues = append(issues, Issue{
				Table:  tableName(edition, types.VariantPart),
				Kind:   KindPartNotInFull,
				Code:   r.Code,
				Detail: fmt.Sprintf("missing from %s", tableName(edition, types.VariantFull)),
			})
		}
	}
	return issues
}

const conversionTable = "conversion"

func checkConversions(rows []types.Conversion, icd9Part []types.CodeRecord) []Issue {
	var issues []Issue

	counts := make(map[string]int, len(rows))
	for _, c := range rows {
		counts[c.Code]++
	}
	reported := make(map[string]bool)
	for _, c := range rows {
		if counts[c.Code] > 1 && !reported[c.Code] {
			reported[c.Code] = true
			issues = append(issues, Issue{
				Table:  conversionTable,
				Kind:   KindDuplicateConversion,
				Code:   c.Code,
				Detail: fmt.Sprintf("appears %d times", counts[c.Code]),
			})
		}
	}

	for _, c := range rows {
		switch {
		case c.ICD10Subcategory == types.NoConversion && c.Provenance != "":
			issues = append(issues, Issue{
				Table:  conversionTable,
				Kind:   KindSentinelMismatch,
				Code:   c.Code,
				Detail: fmt.Sprintf("sentinel row carries provenance %q", c.Provenance),
			})
		case c.ICD10Subcategory == "":
			issues = append(issues, Issue{
				Table:  conversionTable,
				Kind:   KindSentinelMismatch,
				Code:   c.Code,
				Detail: "empty icd10subcategory; unmatched codes must carry the sentinel",
			})
		case c.ICD10Subcategory != types.NoConversion && c.Provenance == "":
			issues = append(issues, Issue{
				Table:  conversionTable,
				Kind:   KindSentinelMismatch,
				Code:   c.Code,
				Detail: "resolved row has no provenance",
			})
		}

		if c.Provenance != "" && !knownProvenance[c.Provenance] {
			issues = append(issues, Issue{
				Table:  conversionTable,
				Kind:   KindUnknownProvenance,
				Code:   c.Code,
				Detail: fmt.Sprintf("provenance %q is not a known label", c.Provenance),
			})
		}
	}

	if icd9Part != nil {
		partCodes := make(map[string]bool, len(icd9Part))
		for _, r := range icd9Part {
			partCodes[r.Code] = true
		}

		missing := make(map[string]bool)
		for _, r := range icd9Part {
			if counts[r.Code] == 0 && !missing[r.Code] {
				missing[r.Code] = true
				issues = append(issues, Issue{
					Table:  conversionTable,
					Kind:   KindMissingConversion,
					Code:   r.Code,
					Detail: "icd9 part code has no conversion row",
				})
			}
		}

		unknown := make(map[string]bool)
		for _, c := range rows {
			if !partCodes[c.Code] && !unknown[c.Code] {
				unknown[c.Code] = true
				issues = append(issues, Issue{
					Table:  conversionTable,
					Kind:   KindUnknownConversionCode,
					Code:   c.Code,
					Detail: "code is not in the icd9 part table",
				})
			}
		}
	}

	return issues
}

// Report writes one line per issue to w, then a severity tally.
func Report(issues []Issue, w io.Writer) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "no issues found")
		return
	}

	var errors, warnings int
	for _, issue := range issues {
		severity := issue.Kind.Severity()
		if severity == SeverityError {
			errors++
		} else {
			warnings++
		}
		if issue.Code != "" {
			fmt.Fprintf(w, "%-8s %s: %s: %s\n", severity, issue.Table, issue.Code, issue.Detail)
		} else {
			fmt.Fprintf(w, "%-8s %s: %s\n", severity, issue.Table, issue.Detail)
		}
	}

	fmt.Fprintf(w, "\n%d issues (%d errors, %d warnings)\n", len(issues), errors, warnings)
}

// HasErrors reports whether any issue has error severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Kind.Severity() == SeverityError {
			return true
		}
	}
	return false
}
