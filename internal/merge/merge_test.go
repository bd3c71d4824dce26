// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pdiddy/icd-engine/pkg/types"
)

func eqRow(code, icd10subcategory string, stage types.MatchStage) types.Equivalence {
	return types.Equivalence{
		CodeRecord: types.CodeRecord{
			Code:           code,
			Description:    "description of " + code,
			Subcategory:    "subcategory of " + code,
			CommonCategory: "commoncat of " + code,
		},
		ICD10Subcategory: icd10subcategory,
		Stage:            stage,
	}
}

func TestReconcileRelabelsStages(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("001", "intestinal infectious diseases", types.StageSubcategory),
		eqRow("210", "benign neoplasms", types.StageSkippedSubcategory),
		eqRow("250", "diabetes mellitus", types.StageDescription),
		eqRow("540", "diseases of appendix", types.StageManual),
		eqRow("346", "", types.StageNone),
	}

	conversions, summary, err := Reconcile(fuzzy, nil, new(bytes.Buffer))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	wantProvenance := []string{
		types.ProvenanceFuzzySubcategory,
		types.ProvenanceFuzzyCode,
		types.ProvenanceFuzzyCode,
		types.ProvenanceManualCategory,
		"",
	}
	for i, conv := range conversions {
		if conv.Provenance != wantProvenance[i] {
			t.Errorf("row %s provenance = %q, want %q", conv.Code, conv.Provenance, wantProvenance[i])
		}
		// The sentinel and an empty provenance always travel together.
		if (conv.ICD10Subcategory == types.NoConversion) != (conv.Provenance == "") {
			t.Errorf("row %s breaks the sentinel/provenance pairing: %+v", conv.Code, conv)
		}
	}

	if conversions[4].ICD10Subcategory != types.NoConversion {
		t.Errorf("unmatched row = %q, want the sentinel", conversions[4].ICD10Subcategory)
	}
	if summary.Total != 5 || summary.NoConversion != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.ByStage[types.ProvenanceFuzzyCode] != 2 {
		t.Errorf("fuzzy by code = %d, want 2", summary.ByStage[types.ProvenanceFuzzyCode])
	}
}

func TestReconcileOverrideSentinelMasksFuzzy(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("999", "some fuzzy proposal", types.StageSubcategory),
	}
	overrides := []types.ManualOverride{
		{Code: "999", ManualICD10: types.NoConversion},
	}

	conversions, summary, err := Reconcile(fuzzy, overrides, new(bytes.Buffer))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	got := conversions[0]
	if got.ICD10Subcategory != types.NoConversion {
		t.Errorf("value = %q, want the sentinel despite the fuzzy match", got.ICD10Subcategory)
	}
	if got.Provenance != "" {
		t.Errorf("provenance = %q, want empty", got.Provenance)
	}
	if summary.NoConversion != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestReconcileOverrideSubstitutes(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("038", "wrong block", types.StageSubcategory),
		eqRow("346", "", types.StageNone),
	}
	overrides := []types.ManualOverride{
		{Code: "038", ManualICD10: "a41", SubcategoryICD10: "other bacterial diseases"},
		{Code: "346", ManualICD10: "g43", SubcategoryICD10: "episodic and paroxysmal disorders"},
	}

	conversions, summary, err := Reconcile(fuzzy, overrides, new(bytes.Buffer))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	for i, want := range []string{"other bacterial diseases", "episodic and paroxysmal disorders"} {
		if conversions[i].ICD10Subcategory != want {
			t.Errorf("row %d value = %q, want %q", i, conversions[i].ICD10Subcategory, want)
		}
		if conversions[i].Provenance != types.ProvenanceManualCode {
			t.Errorf("row %d provenance = %q", i, conversions[i].Provenance)
		}
	}
	if summary.ManualByCode != 2 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestReconcileEmptyVerdictKeepsFuzzy(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("001", "intestinal infectious diseases", types.StageSubcategory),
	}
	// A row left in the override file with no verdict is a no-op.
	overrides := []types.ManualOverride{
		{Code: "001", ManualICD10: "", SubcategoryICD10: "should be ignored"},
	}

	conversions, _, err := Reconcile(fuzzy, overrides, new(bytes.Buffer))
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if conversions[0].ICD10Subcategory != "intestinal infectious diseases" {
		t.Errorf("value = %q, want the fuzzy proposal", conversions[0].ICD10Subcategory)
	}
	if conversions[0].Provenance != types.ProvenanceFuzzySubcategory {
		t.Errorf("provenance = %q", conversions[0].Provenance)
	}
}

func TestReconcileDuplicateOverride(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("038", "wrong block", types.StageSubcategory),
	}
	overrides := []types.ManualOverride{
		{Code: "038", ManualICD10: "a41", SubcategoryICD10: "first verdict"},
		{Code: "038", ManualICD10: "a49", SubcategoryICD10: "second verdict"},
	}

	var out bytes.Buffer
	conversions, summary, err := Reconcile(fuzzy, overrides, &out)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if conversions[0].ICD10Subcategory != "first verdict" {
		t.Errorf("value = %q, want the first override", conversions[0].ICD10Subcategory)
	}
	if summary.DuplicateOverrides != 1 {
		t.Errorf("DuplicateOverrides = %d, want 1", summary.DuplicateOverrides)
	}
	if !strings.Contains(out.String(), "duplicate override for 038") {
		t.Errorf("output missing duplicate warning: %s", out.String())
	}
}

func TestReconcileUnknownOverride(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("001", "intestinal infectious diseases", types.StageSubcategory),
	}
	overrides := []types.ManualOverride{
		{Code: "younameit", ManualICD10: "a00", SubcategoryICD10: "somewhere"},
	}

	var out bytes.Buffer
	conversions, summary, err := Reconcile(fuzzy, overrides, &out)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if len(conversions) != 1 {
		t.Errorf("got %d rows, want 1; overrides never add rows", len(conversions))
	}
	if summary.UnknownOverrides != 1 {
		t.Errorf("UnknownOverrides = %d, want 1", summary.UnknownOverrides)
	}
	if !strings.Contains(out.String(), "younameit") {
		t.Errorf("output missing unknown-code report: %s", out.String())
	}
}

func TestReconcileDuplicateFuzzyCode(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("001", "intestinal infectious diseases", types.StageSubcategory),
		eqRow("001", "intestinal infectious diseases", types.StageSubcategory),
	}
	if _, _, err := Reconcile(fuzzy, nil, new(bytes.Buffer)); err == nil {
		t.Error("expected error for duplicate fuzzy code")
	}
}

func TestReconcileUnknownStage(t *testing.T) {
	fuzzy := []types.Equivalence{
		eqRow("001", "x", types.MatchStage("wizardry")),
	}
	if _, _, err := Reconcile(fuzzy, nil, new(bytes.Buffer)); err == nil {
		t.Error("expected error for unknown match stage")
	}
}

func TestSummaryReport(t *testing.T) {
	s := Summary{
		Total:        4,
		ManualByCode: 1,
		NoConversion: 1,
		ByStage: map[string]int{
			types.ProvenanceFuzzySubcategory: 2,
		},
	}

	var out bytes.Buffer
	s.Report(&out)

	for _, fragment := range []string{"total codes: 4", "fuzzy by subcategory: 2", "manual by code: 1", "no conversion: 1"} {
		if !strings.Contains(out.String(), fragment) {
			t.Errorf("report missing %q:\n%s", fragment, out.String())
		}
	}
}
