// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge reconciles the fuzzy equivalence table with the
// hand-maintained override table into the final conversion table: one row
// per ICD-9 part code, each carrying either an ICD-10 subcategory with a
// provenance label or the "no conversion" sentinel with none.
package merge

import (
	"fmt"
	"io"

	"github.com/pdiddy/icd-engine/pkg/types"
)

// Summary holds counts from one reconciliation run.
type Summary struct {
	// Total is the number of conversion rows produced.
	Total int

	// ManualByCode counts rows resolved by a per-code override.
	ManualByCode int

	// NoConversion counts rows carrying the sentinel.
	NoConversion int

	// ByStage counts rows kept from the fuzzy table, keyed by their
	// relabeled provenance.
	ByStage map[string]int

	// DuplicateOverrides counts override rows dropped because an earlier
	// row already claimed the code.
	DuplicateOverrides int

	// UnknownOverrides counts override codes with no row in the fuzzy
	// table to apply to.
	UnknownOverrides int
}

// Report prints the reconciliation counts to w.
func (s Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "total codes: %d\n", s.Total)
	fmt.Fprintf(w, "%s: %d\n", types.ProvenanceFuzzySubcategory, s.ByStage[types.ProvenanceFuzzySubcategory])
	fmt.Fprintf(w, "%s: %d\n", types.ProvenanceFuzzyCode, s.ByStage[types.ProvenanceFuzzyCode])
	fmt.Fprintf(w, "%s: %d\n", types.ProvenanceManualCategory, s.ByStage[types.ProvenanceManualCategory])
	fmt.Fprintf(w, "%s: %d\n", types.ProvenanceManualCode, s.ManualByCode)
	fmt.Fprintf(w, "%s: %d\n", types.NoConversion, s.NoConversion)
	if s.DuplicateOverrides > 0 {
		fmt.Fprintf(w, "duplicate override codes dropped: %d\n", s.DuplicateOverrides)
	}
	if s.UnknownOverrides > 0 {
		fmt.Fprintf(w, "override codes not in the fuzzy table: %d\n", s.UnknownOverrides)
	}
}

// Reconcile joins the override table onto the fuzzy table by code and
// produces the final conversion rows in fuzzy input order. An override
// verdict of the sentinel suppresses the fuzzy proposal outright; any
// other non-empty verdict substitutes the override's hand-picked
// subcategory; absent or empty verdicts keep the fuzzy proposal under a
// relabeled provenance. Rows that end without a subcategory carry the
// sentinel and an empty provenance, never a stage label.
//
// Duplicate override codes keep the first row; override codes absent from
// the fuzzy table are reported to w. A duplicate code in the fuzzy table
// itself is an error: the part table upstream guarantees one row per code.
func Reconcile(fuzzy []types.Equivalence, overrides []types.ManualOverride, w io.Writer) ([]types.Conversion, Summary, error) {
	summary := Summary{ByStage: make(map[string]int)}

	byCode := make(map[string]types.ManualOverride, len(overrides))
	var overrideOrder []string
	for _, o := range overrides {
		if _, taken := byCode[o.Code]; taken {
			summary.DuplicateOverrides++
			fmt.Fprintf(w, "duplicate override for %s dropped\n", o.Code)
			continue
		}
		byCode[o.Code] = o
		overrideOrder = append(overrideOrder, o.Code)
	}

	seen := make(map[string]bool, len(fuzzy))
	conversions := make([]types.Conversion, 0, len(fuzzy))

	for _, eq := range fuzzy {
		if seen[eq.Code] {
			return nil, Summary{}, fmt.Errorf("duplicate code %s in fuzzy table", eq.Code)
		}
		seen[eq.Code] = true

		conv := types.Conversion{
			Code:           eq.Code,
			Description:    eq.Description,
			Subcategory:    eq.Subcategory,
			CommonCategory: eq.CommonCategory,
		}

		o, hasOverride := byCode[eq.Code]
		switch {
		case hasOverride && o.ManualICD10 == types.NoConversion:
			// Sentinel verdict: suppress whatever the matcher proposed.

		case hasOverride && o.ManualICD10 != "":
			conv.ICD10Subcategory = o.SubcategoryICD10
			conv.Provenance = types.ProvenanceManualCode

		default:
			label, err := provenanceFor(eq.Stage)
			if err != nil {
				return nil, Summary{}, fmt.Errorf("code %s: %w", eq.Code, err)
			}
			conv.ICD10Subcategory = eq.ICD10Subcategory
			conv.Provenance = label
		}

		// Whatever the path, an empty result is recorded as the sentinel
		// with no provenance.
		if conv.ICD10Subcategory == "" {
			conv.ICD10Subcategory = types.NoConversion
			conv.Provenance = ""
		}

		summary.Total++
		switch conv.Provenance {
		case types.ProvenanceManualCode:
			summary.ManualByCode++
		case "":
			summary.NoConversion++
		default:
			summary.ByStage[conv.Provenance]++
		}

		conversions = append(conversions, conv)
	}

	for _, code := range overrideOrder {
		if !seen[code] {
			summary.UnknownOverrides++
			fmt.Fprintf(w, "override code %s not in the fuzzy table\n", code)
		}
	}

	return conversions, summary, nil
}

// provenanceFor relabels a matcher stage as a conversion provenance.
// Subcategory matches were made at block level; description matches
// (skip-listed or not) were made at code level; curated subcategory
// assignments count as manual work at category level.
func provenanceFor(stage types.MatchStage) (string, error) {
	switch stage {
	case types.StageSubcategory:
		return types.ProvenanceFuzzySubcategory, nil
	case types.StageDescription, types.StageSkippedSubcategory:
		return types.ProvenanceFuzzyCode, nil
	case types.StageManual:
		return types.ProvenanceManualCategory, nil
	case types.StageNone:
		return "", nil
	}
	return "", fmt.Errorf("unknown match stage %q", stage)
}
