// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match proposes an ICD-10 subcategory for every ICD-9 part code
// by running curated lookups and fuzzy similarity stages over the two
// parsed part tables. A code no stage can place is recorded with the
// explicit stage "none", never silently dropped: the downstream merge
// stage needs one row per code to reconcile against the override table.
package match

import (
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/icd-engine/internal/textnorm"
	"github.com/pdiddy/icd-engine/pkg/types"
)

// Default acceptance cutoffs on the 0-100 similarity scale, calibrated
// for token_set against the 2024 review of the full code list.
const (
	DefaultSubcategoryCutoff = 80
	DefaultDescriptionCutoff = 50
)

// ManualScore is the similarity recorded for curated assignments.
const ManualScore = 100

// progressInterval is the number of codes between progress lines.
const progressInterval = 1000

// Matcher holds the resolved scorer, cutoffs, and curated tables for one
// matching run.
type Matcher struct {
	cfg     types.MatchConfig
	scorer  Scorer
	skipped map[string]bool
	manual  map[string]string
}

// NewMatcher resolves cfg against the scorer registry and curated tables.
// Zero cutoffs select the calibrated defaults; a nil curated set selects
// the shipped one.
func NewMatcher(cfg types.MatchConfig, curated *Curated) (*Matcher, error) {
	scorer, err := LookupScorer(cfg.Scorer)
	if err != nil {
		return nil, err
	}
	if cfg.SubcategoryCutoff == 0 {
		cfg.SubcategoryCutoff = DefaultSubcategoryCutoff
	}
	if cfg.DescriptionCutoff == 0 {
		cfg.DescriptionCutoff = DefaultDescriptionCutoff
	}
	if curated == nil {
		curated = DefaultCurated()
	}

	skipped := make(map[string]bool, len(curated.SkipSubcategories))
	for _, s := range curated.SkipSubcategories {
		skipped[s] = true
	}
	return &Matcher{
		cfg:     cfg,
		scorer:  scorer,
		skipped: skipped,
		manual:  curated.ManualSubcategories,
	}, nil
}

// Summary holds per-stage counts from one matching run.
type Summary struct {
	Total              int
	Manual             int
	BySubcategory      int
	ByDescription      int
	SkippedSubcategory int
	Unmatched          int
}

// Matched returns the number of codes some stage placed.
func (s Summary) Matched() int {
	return s.Total - s.Unmatched
}

// Report prints the per-stage counts to w.
func (s Summary) Report(w io.Writer) {
	fmt.Fprintf(w, "total codes: %d\n", s.Total)
	fmt.Fprintf(w, "manual assignment: %d\n", s.Manual)
	fmt.Fprintf(w, "fuzzy subcategory: %d\n", s.BySubcategory)
	fmt.Fprintf(w, "fuzzy description: %d\n", s.ByDescription)
	fmt.Fprintf(w, "fuzzy description (skip list): %d\n", s.SkippedSubcategory)
	fmt.Fprintf(w, "unmatched: %d\n", s.Unmatched)
}

// Match proposes an ICD-10 subcategory for every ICD-9 record, in input
// order. Progress lines go to w.
func (m *Matcher) Match(icd9, icd10 []types.CodeRecord, w io.Writer) ([]types.Equivalence, Summary, error) {
	idx := buildIndex(icd10)
	if len(idx.subcategories) == 0 && len(idx.descriptions) == 0 {
		return nil, Summary{}, errors.New("icd10 table has no match candidates; was the part table parsed?")
	}

	rows := make([]types.Equivalence, 0, len(icd9))
	var summary Summary

	for i, rec := range icd9 {
		eq := m.matchRecord(rec, idx)
		rows = append(rows, eq)

		summary.Total++
		switch eq.Stage {
		case types.StageManual:
			summary.Manual++
		case types.StageSubcategory:
			summary.BySubcategory++
		case types.StageDescription:
			summary.ByDescription++
		case types.StageSkippedSubcategory:
			summary.SkippedSubcategory++
		case types.StageNone:
			summary.Unmatched++
		}

		if (i+1)%progressInterval == 0 {
			fmt.Fprintf(w, "matched %d/%d codes\n", i+1, len(icd9))
		}
	}

	return rows, summary, nil
}

// matchRecord runs the stages for one record. The first stage producing a
// subcategory wins; a record nothing places keeps stage none with an
// empty proposal and score zero.
func (m *Matcher) matchRecord(rec types.CodeRecord, idx *icd10Index) types.Equivalence {
	eq := types.Equivalence{CodeRecord: rec, Stage: types.StageNone}

	// Skip-listed subcategories fuzzy-match into the wrong blocks, so
	// their codes are placed by description alone.
	if m.skipped[rec.Subcategory] {
		if info, score, ok := m.matchByDescription(rec, idx); ok {
			eq.ICD10Subcategory = info.subcategory
			eq.Stage = types.StageSkippedSubcategory
			eq.MatchedDescription = info.description
			eq.Score = score
		}
		return eq
	}

	if subcategory, ok := m.manual[rec.Subcategory]; ok {
		eq.ICD10Subcategory = subcategory
		eq.Stage = types.StageManual
		eq.Score = ManualScore
		return eq
	}

	if rec.Subcategory != "" {
		if subcategory, score, ok := m.bestMatch(rec.Subcategory, idx.subcategories, m.cfg.SubcategoryCutoff); ok {
			// The name match must be backed by at least one ICD-10 record
			// in the same common category; a lookalike from another
			// chapter falls through to description matching. The
			// runner-up candidate is never consulted.
			if idx.subcatCommon[subcategory][rec.CommonCategory] {
				eq.ICD10Subcategory = subcategory
				eq.Stage = types.StageSubcategory
				eq.Score = score
				return eq
			}
		}
	}

	if info, score, ok := m.matchByDescription(rec, idx); ok {
		eq.ICD10Subcategory = info.subcategory
		eq.Stage = types.StageDescription
		eq.MatchedDescription = info.description
		eq.Score = score
	}
	return eq
}

// matchByDescription scores the record's cleaned description against the
// distinct cleaned ICD-10 descriptions and returns the best candidate's
// row info. The candidate must share the record's common category.
func (m *Matcher) matchByDescription(rec types.CodeRecord, idx *icd10Index) (descriptionInfo, int, bool) {
	clean := textnorm.CleanDescription(rec.Description)
	best, score, ok := m.bestMatch(clean, idx.descriptions, m.cfg.DescriptionCutoff)
	if !ok {
		return descriptionInfo{}, 0, false
	}
	info := idx.byDescription[best]
	if info.commonCategory != rec.CommonCategory {
		return descriptionInfo{}, 0, false
	}
	return info, score, true
}

// bestMatch returns the best-scoring candidate at or above cutoff. Ties
// keep the first candidate in list order, which together with the
// first-seen index order makes reruns deterministic.
func (m *Matcher) bestMatch(query string, candidates []string, cutoff int) (string, int, bool) {
	best, bestScore := "", -1
	for _, c := range candidates {
		if score := m.scorer(query, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore < cutoff {
		return "", 0, false
	}
	return best, bestScore, true
}

// icd10Index holds the candidate lists for one run, built once from the
// ICD-10 part table.
type icd10Index struct {
	// subcategories is the distinct subcategory names in first-seen order.
	subcategories []string

	// subcatCommon maps a subcategory to the set of common categories its
	// records carry, for the subcategory-stage guard.
	subcatCommon map[string]map[string]bool

	// descriptions is the distinct cleaned descriptions in first-seen order.
	descriptions []string

	// byDescription maps a cleaned description to the first record bearing
	// it.
	byDescription map[string]descriptionInfo
}

// descriptionInfo is the slice of an ICD-10 record the description stage
// reports: the proposed subcategory, the original description, and the
// common category for the guard.
type descriptionInfo struct {
	subcategory    string
	description    string
	commonCategory string
}

func buildIndex(icd10 []types.CodeRecord) *icd10Index {
	idx := &icd10Index{
		subcatCommon:  make(map[string]map[string]bool),
		byDescription: make(map[string]descriptionInfo),
	}
	for _, rec := range icd10 {
		if rec.Subcategory != "" {
			commons, seen := idx.subcatCommon[rec.Subcategory]
			if !seen {
				commons = make(map[string]bool)
				idx.subcatCommon[rec.Subcategory] = commons
				idx.subcategories = append(idx.subcategories, rec.Subcategory)
			}
			commons[rec.CommonCategory] = true
		}

		clean := textnorm.CleanDescription(rec.Description)
		if clean == "" {
			continue
		}
		if _, seen := idx.byDescription[clean]; !seen {
			idx.byDescription[clean] = descriptionInfo{
				subcategory:    rec.Subcategory,
				description:    rec.Description,
				commonCategory: rec.CommonCategory,
			}
			idx.descriptions = append(idx.descriptions, clean)
		}
	}
	return idx
}
