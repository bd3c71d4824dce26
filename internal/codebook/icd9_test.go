// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import "testing"

func TestICD9Classify(t *testing.T) {
	g := NewICD9Grammar()

	tests := []struct {
		name string
		line string
		next string
		want ClassifiedLine
	}{
		{
			name: "blank line",
			line: "",
			want: ClassifiedLine{Kind: KindBlank},
		},
		{
			name: "integer code",
			line: "250 diabetes mellitus",
			want: ClassifiedLine{Kind: KindCodeEntry, Code: "250", Description: "diabetes mellitus"},
		},
		{
			name: "decimal code",
			line: "250.0 diabetes mellitus without mention of complication",
			want: ClassifiedLine{Kind: KindCodeEntry, Code: "250.0", Description: "diabetes mellitus without mention of complication"},
		},
		{
			name: "v-prefixed code",
			line: "V01 contact with or exposure to communicable diseases",
			want: ClassifiedLine{Kind: KindCodeEntry, Code: "V01", Description: "contact with or exposure to communicable diseases"},
		},
		{
			name: "e-prefixed code",
			line: "E850 accidental poisoning by analgesics",
			want: ClassifiedLine{Kind: KindCodeEntry, Code: "E850", Description: "accidental poisoning by analgesics"},
		},
		{
			name: "two digits plus letter code",
			line: "00A cholera vaccine reaction",
			want: ClassifiedLine{Kind: KindCodeEntry, Code: "00A", Description: "cholera vaccine reaction"},
		},
		{
			name: "subcategory header with hyphen range",
			line: "INTESTINAL INFECTIOUS DISEASES (001 - 009)",
			want: ClassifiedLine{Kind: KindSubcategoryHeader, Title: "INTESTINAL INFECTIOUS DISEASES", Range: "001 - 009", Valid: true},
		},
		{
			name: "subcategory header with en dash range",
			line: "DISORDERS OF THYROID GLAND (240 – 246)",
			want: ClassifiedLine{Kind: KindSubcategoryHeader, Title: "DISORDERS OF THYROID GLAND", Range: "240 – 246", Valid: true},
		},
		{
			name: "subcategory header with v-prefixed range",
			line: "PERSONS WITH NEED FOR ISOLATION (V07 – V09.9)",
			want: ClassifiedLine{Kind: KindSubcategoryHeader, Title: "PERSONS WITH NEED FOR ISOLATION", Range: "V07 – V09.9", Valid: true},
		},
		{
			name: "category anchored by following subcategory",
			line: "INFECTIOUS AND PARASITIC DISEASES",
			next: "INTESTINAL INFECTIOUS DISEASES (001 - 009)",
			want: ClassifiedLine{Kind: KindCategoryHeader, Title: "INFECTIOUS AND PARASITIC DISEASES"},
		},
		{
			name: "category candidate without anchor",
			line: "SOME STRAY HEADING",
			next: "250 diabetes mellitus",
			want: ClassifiedLine{Kind: KindUnrecognized, CategoryCandidate: true},
		},
		{
			name: "category candidate at end of input",
			line: "TRAILING TEXT",
			next: "",
			want: ClassifiedLine{Kind: KindUnrecognized, CategoryCandidate: true},
		},
		{
			name: "additional diagnostic codes acts as category and subcategory",
			line: "ADDITIONAL DIAGNOSTIC CODES",
			want: ClassifiedLine{
				Kind:              KindCategoryHeader,
				Title:             "ADDITIONAL DIAGNOSTIC CODES",
				PresetSubcategory: "ADDITIONAL DIAGNOSTIC CODES",
			},
		},
		{
			name: "supplementary classification presets its first subcategory",
			line: "SUPPLEMENTARY CLASSIFICATION OF FACTORS INFLUENCING HEATLH STATUS AND CONTACT WITH HEALTH SERVICES",
			want: ClassifiedLine{
				Kind:              KindCategoryHeader,
				Title:             "SUPPLEMENTARY CLASSIFICATION OF FACTORS INFLUENCING HEATLH STATUS AND CONTACT WITH HEALTH SERVICES",
				PresetSubcategory: "PERSONS WITH HEALTH HAZARDS RELATED TO COMMUNICABLE DISEASES (V01 – V07.9)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Classify(tt.line, tt.next)
			if got != tt.want {
				t.Errorf("Classify(%q, %q) = %+v, want %+v", tt.line, tt.next, got, tt.want)
			}
		})
	}
}

func TestICD9ClassifyDecimalInsertion(t *testing.T) {
	g := NewICD9Grammar()

	tests := []struct {
		name         string
		line         string
		wantCode     string
		wantInserted bool
	}{
		{"four digits gain a decimal", "2500 diabetes mellitus without mention of complication", "250.0", true},
		{"three digits untouched", "250 diabetes mellitus", "250", false},
		{"existing decimal untouched", "250.0 diabetes mellitus", "250.0", false},
		{"v-prefixed four characters untouched", "V012 contact with tuberculosis", "V012", false},
		{"five digits untouched", "25000 stray table number", "25000", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Classify(tt.line, "")
			if got.Kind != KindCodeEntry {
				t.Fatalf("Kind = %v, want code entry", got.Kind)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", got.Code, tt.wantCode)
			}
			if got.DecimalInserted != tt.wantInserted {
				t.Errorf("DecimalInserted = %v, want %v", got.DecimalInserted, tt.wantInserted)
			}
		})
	}
}

func TestICD9IsPartCode(t *testing.T) {
	g := NewICD9Grammar()

	tests := []struct {
		code string
		want bool
	}{
		{"250", true},
		{"v01", true},
		{"e85", true},
		{"250.0", false},
		{"2.5", false},
		{"25", false},
		{"e850", false},
	}

	for _, tt := range tests {
		if got := g.IsPartCode(tt.code); got != tt.want {
			t.Errorf("IsPartCode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}
