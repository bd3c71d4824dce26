// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/icd-engine/pkg/types"
)

func TestConversionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConversionFilename)
	rows := []types.Conversion{
		{
			Code:             "001",
			Description:      "cholera",
			Subcategory:      "intestinal infectious diseases",
			CommonCategory:   "infectious diseases",
			ICD10Subcategory: "intestinal infectious diseases",
			Provenance:       types.ProvenanceFuzzySubcategory,
		},
		{
			Code:             "346",
			Description:      "migraine",
			Subcategory:      "migraine disorders",
			CommonCategory:   "nervous system diseases",
			ICD10Subcategory: types.NoConversion,
		},
	}

	if err := WriteConversions(path, rows); err != nil {
		t.Fatalf("WriteConversions: %v", err)
	}
	got, err := ReadConversions(path)
	if err != nil {
		t.Fatalf("ReadConversions: %v", err)
	}
	if !reflect.DeepEqual(got, rows) {
		t.Errorf("round trip = %+v, want %+v", got, rows)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	header := strings.SplitN(string(data), "\n", 2)[0]
	if header != "code,description,subcategory,commoncat,icd10subcategory,MatchStage" {
		t.Errorf("header = %q", header)
	}
}

func TestReadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), OverridesFilename)
	content := "code,manual_icd10,subcategory_icd10\n" +
		"V01,A00,Intestinal Infectious Diseases\n" +
		"999,No Conversion,\n" +
		"038,,\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	overrides, err := ReadOverrides(path)
	if err != nil {
		t.Fatalf("ReadOverrides: %v", err)
	}

	want := []types.ManualOverride{
		{Code: "v01", ManualICD10: "a00", SubcategoryICD10: "intestinal infectious diseases"},
		{Code: "999", ManualICD10: types.NoConversion, SubcategoryICD10: ""},
		{Code: "038", ManualICD10: "", SubcategoryICD10: ""},
	}
	if !reflect.DeepEqual(overrides, want) {
		t.Errorf("overrides = %+v, want %+v", overrides, want)
	}
}

func TestReadOverridesMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv")
	if err := os.WriteFile(path, []byte("code,verdict\n001,keep\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadOverrides(path); err == nil {
		t.Error("expected error for missing columns")
	}
}
