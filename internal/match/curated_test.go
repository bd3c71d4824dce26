// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCurated(t *testing.T) {
	c := DefaultCurated()

	if len(c.SkipSubcategories) != 50 {
		t.Errorf("skip list has %d entries, want 50", len(c.SkipSubcategories))
	}
	if len(c.ManualSubcategories) != 11 {
		t.Errorf("manual map has %d entries, want 11", len(c.ManualSubcategories))
	}

	// Entries must mirror the parsed subcategory text exactly, source
	// spelling quirks included; a corrected spelling would never match.
	skip := make(map[string]bool)
	for _, s := range c.SkipSubcategories {
		skip[s] = true
	}
	for _, quirk := range []string{
		"nephritis, nephrotic syndrome ans nephrosis",
		"osteopathies, chondropathies and ac quired musculoskeletal deformities",
		"certain traumatic complications and unpspecified injuries",
	} {
		if !skip[quirk] {
			t.Errorf("skip list missing %q", quirk)
		}
	}

	if got := c.ManualSubcategories["carcinoma in situ"]; got != "in situ neoplasms" {
		t.Errorf("manual[carcinoma in situ] = %q", got)
	}
	if got := c.ManualSubcategories["internal injury of chest, abdoment and pelvis"]; got != "injuries to the abdomen, lower back, lumber spine, pelvis and external genitals" {
		t.Errorf("manual[internal injury...] = %q", got)
	}
}

func TestDefaultCuratedIsACopy(t *testing.T) {
	a := DefaultCurated()
	a.ManualSubcategories["appendicitis"] = "mutated"
	a.SkipSubcategories[0] = "mutated"

	b := DefaultCurated()
	if b.ManualSubcategories["appendicitis"] == "mutated" || b.SkipSubcategories[0] == "mutated" {
		t.Error("mutating one DefaultCurated result leaks into the next")
	}
}

func TestLoadCurated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curated.yaml")
	content := "skip_subcategories:\n  - only entry\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadCurated(path)
	if err != nil {
		t.Fatalf("LoadCurated: %v", err)
	}

	if len(c.SkipSubcategories) != 1 || c.SkipSubcategories[0] != "only entry" {
		t.Errorf("skip list = %v, want the file's entry alone", c.SkipSubcategories)
	}
	// The file held no manual map, so the shipped one stays.
	if len(c.ManualSubcategories) != 11 {
		t.Errorf("manual map has %d entries, want shipped 11", len(c.ManualSubcategories))
	}
}

func TestLoadCuratedInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curated.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadCurated(path); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadCuratedMissing(t *testing.T) {
	if _, err := LoadCurated(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
