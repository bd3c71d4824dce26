// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// MatchStage records which matcher stage produced an equivalence proposal.
type MatchStage string

const (
	// StageSubcategory: fuzzy match of the ICD-9 subcategory name against
	// the distinct ICD-10 subcategory names.
	StageSubcategory MatchStage = "subcategory"

	// StageDescription: fuzzy match of the code description against
	// individual ICD-10 code descriptions.
	StageDescription MatchStage = "description"

	// StageSkippedSubcategory: description match for a subcategory on the
	// curated skip list, where name matching is known to mislead.
	StageSkippedSubcategory MatchStage = "skipped_subcategory"

	// StageManual: curated per-subcategory assignment.
	StageManual MatchStage = "manual"

	// StageNone: no stage produced a proposal.
	StageNone MatchStage = "none"
)

// Equivalence is one matcher output row: an ICD-9 part record with its
// proposed ICD-10 subcategory and the stage that proposed it.
type Equivalence struct {
	CodeRecord `yaml:",inline"`

	// ICD10Subcategory is the proposed ICD-10 subcategory, empty when
	// Stage is StageNone.
	ICD10Subcategory string `json:"icd10subcategory" yaml:"icd10subcategory"`

	// Stage identifies the matcher stage that produced the proposal.
	Stage MatchStage `json:"match_stage" yaml:"match_stage"`

	// MatchedDescription is the ICD-10 description the description stages
	// matched against, empty for the other stages.
	MatchedDescription string `json:"matched_description,omitempty" yaml:"matched_description,omitempty"`

	// Score is the accepted candidate's similarity on a 0-100 scale:
	// 100 for manual assignments, 0 when Stage is StageNone.
	Score int `json:"score" yaml:"score"`
}

// NoConversion is the sentinel value recorded when a code has no ICD-10
// equivalent, either because no stage matched or because the override
// table says so explicitly.
const NoConversion = "no conversion"

// ManualOverride is one row of the hand-maintained override table applied
// during the merge stage.
type ManualOverride struct {
	// Code is the ICD-9 part code the override applies to.
	Code string `json:"code" yaml:"code"`

	// ManualICD10 is the reviewer's verdict: empty keeps the fuzzy
	// proposal, NoConversion suppresses it, any other value accepts the
	// hand-picked subcategory below.
	ManualICD10 string `json:"manual_icd10" yaml:"manual_icd10"`

	// SubcategoryICD10 is the hand-picked ICD-10 subcategory used when
	// ManualICD10 is set and not NoConversion.
	SubcategoryICD10 string `json:"subcategory_icd10" yaml:"subcategory_icd10"`
}

// Provenance labels recorded in the merged conversion table. Empty
// provenance always pairs with the NoConversion sentinel.
const (
	ProvenanceFuzzySubcategory = "fuzzy by subcategory"
	ProvenanceFuzzyCode        = "fuzzy by code"
	ProvenanceManualCategory   = "manual by category"
	ProvenanceManualCode       = "manual by code"
)

// Conversion is one row of the final merged conversion table.
type Conversion struct {
	// Code is the ICD-9 part code.
	Code string `json:"code" yaml:"code"`

	// Description is the ICD-9 description.
	Description string `json:"description" yaml:"description"`

	// Subcategory is the ICD-9 subcategory the code was parsed under.
	Subcategory string `json:"subcategory" yaml:"subcategory"`

	// CommonCategory is the cross-edition category key.
	CommonCategory string `json:"commoncat" yaml:"commoncat"`

	// ICD10Subcategory is the resolved ICD-10 subcategory, or the
	// NoConversion sentinel.
	ICD10Subcategory string `json:"icd10subcategory" yaml:"icd10subcategory"`

	// Provenance records how the value was resolved, one of the
	// Provenance labels, empty when ICD10Subcategory is NoConversion.
	Provenance string `json:"match_stage" yaml:"match_stage"`
}
