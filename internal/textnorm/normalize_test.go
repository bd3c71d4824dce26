// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLower(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"mixed case", "Cholera Due To Vibrio", "cholera due to vibrio"},
		{"surrounding whitespace", "  TYPHOID FEVER  ", "typhoid fever"},
		{"already lower", "plague", "plague"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Lower(tt.in))
		})
	}
}

func TestFoldAccents(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"umlaut", "sjögren syndrome", "sjogren syndrome"},
		{"acute accent", "guillain-barré", "guillain-barre"},
		{"plain ascii unchanged", "malaria", "malaria"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FoldAccents(tt.in))
		})
	}
}

func TestStripPunctuation(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"commas and parens", "diabetes mellitus, type ii (adult)", "diabetes mellitus type ii adult"},
		{"hyphen removed without space", "adult-onset", "adultonset"},
		{"apostrophe", "chagas' disease", "chagas disease"},
		{"digits kept", "stage 3 ulcer", "stage 3 ulcer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripPunctuation(tt.in))
		})
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "acute upper respiratory infection",
		CollapseSpaces("acute   upper\trespiratory\n infection"))
}

func TestCleanDescription(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "full pipeline",
			in:   "  Ménière's disease,   UNSPECIFIED (386.00) ",
			want: "menieres disease unspecified 38600",
		},
		{
			name: "clean input unchanged",
			in:   "cholera due to vibrio cholerae",
			want: "cholera due to vibrio cholerae",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanDescription(tt.in))
		})
	}
}
