// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"strings"
	"testing"
)

func TestLookupScorer(t *testing.T) {
	for _, name := range ScorerNames() {
		s, err := LookupScorer(name)
		if err != nil {
			t.Errorf("LookupScorer(%q): %v", name, err)
			continue
		}
		// Every scorer is a 0-100 similarity; identity pins the top end.
		if got := s("diabetes mellitus", "diabetes mellitus"); got != 100 {
			t.Errorf("%s identity score = %d, want 100", name, got)
		}
		if got := s("cholera", "tuberculosis"); got < 0 || got > 100 {
			t.Errorf("%s score = %d, outside 0-100", name, got)
		}
	}
}

func TestLookupScorerDefault(t *testing.T) {
	s, err := LookupScorer("")
	if err != nil {
		t.Fatalf("LookupScorer(\"\"): %v", err)
	}
	if s == nil {
		t.Fatal("default scorer is nil")
	}
}

func TestLookupScorerUnknown(t *testing.T) {
	_, err := LookupScorer("soundex")
	if err == nil {
		t.Fatal("expected error for unknown scorer")
	}
	// The error names the alternatives so a config typo is self-explaining.
	if !strings.Contains(err.Error(), DefaultScorer) {
		t.Errorf("error does not list valid scorers: %v", err)
	}
}

func TestTokenSetWordOrder(t *testing.T) {
	s, err := LookupScorer("token_set")
	if err != nil {
		t.Fatal(err)
	}
	// Reordered tokens are what the cutoffs were calibrated against.
	if got := s("diabetes mellitus", "mellitus diabetes"); got != 100 {
		t.Errorf("reordered tokens = %d, want 100", got)
	}
	if got := s("diabetes", "diabetes mellitus"); got != 100 {
		t.Errorf("token subset = %d, want 100", got)
	}
}
