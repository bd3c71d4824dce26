// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/icd-engine/pkg/types"
)

func TestEquivalenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), EquivalenceFilename)
	rows := []types.Equivalence{
		{
			CodeRecord:       icd9Rec("001", "cholera", "intestinal infectious diseases", "infectious diseases"),
			ICD10Subcategory: "intestinal infectious diseases",
			Stage:            types.StageSubcategory,
		},
		{
			CodeRecord:         icd9Rec("210", "benign neoplasm of mouth", "benign neoplasm", "neoplasms"),
			ICD10Subcategory:   "benign neoplasms",
			Stage:              types.StageSkippedSubcategory,
			MatchedDescription: "benign neoplasm of mouth and pharynx",
		},
		{
			CodeRecord: icd9Rec("346", "migraine", "migraine disorders", "nervous system diseases"),
			Stage:      types.StageNone,
		},
	}

	if err := WriteEquivalences(path, rows); err != nil {
		t.Fatalf("WriteEquivalences: %v", err)
	}
	got, err := ReadEquivalences(path)
	if err != nil {
		t.Fatalf("ReadEquivalences: %v", err)
	}

	// Scores are not persisted; everything else survives the round trip.
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip = %+v, want %+v", got, rows)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "code,description,category,subcategory,commoncat,icd10subcategory,MatchStage,MatchedDescription" {
		t.Errorf("header = %q", header)
	}
}

func TestReadEquivalencesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	if err := os.WriteFile(path, []byte("code,description\n001,cholera\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadEquivalences(path); err == nil {
		t.Error("expected error for missing columns")
	}
}
