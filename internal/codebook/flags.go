// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package codebook

import (
	"fmt"
	"io"
)

// DefaultSampleLimit caps the flagged-line samples kept per anomaly kind.
const DefaultSampleLimit = 10

// FlagList counts occurrences of one parse anomaly and keeps the first few
// samples for the report.
type FlagList struct {
	Count   int
	Samples []string
}

// Flags aggregates the anomalies surfaced while building and post-processing
// one codebook table. Every anomaly is absorbed here rather than aborting
// the pass; a malformed line must not block the rest of the codebook.
type Flags struct {
	limit int

	// Unrecognized counts non-blank lines matching no pattern, wrapped
	// description continuations included.
	Unrecognized FlagList

	// CategoriesWithoutSubcategory counts would-be category headers with no
	// subcategory header beneath them to anchor on.
	CategoriesWithoutSubcategory FlagList

	// InsertedDecimals counts codes that lost their decimal point during
	// text conversion and had one restored. Samples hold the restored codes.
	InsertedDecimals FlagList

	// InvalidSubcategories counts range-shaped headers absent from the
	// valid-subcategory list.
	InvalidSubcategories FlagList

	// CodesOutsideSubcategory counts code-shaped lines before any block
	// heading opened.
	CodesOutsideSubcategory FlagList

	// DuplicatePartCodes counts part-table records dropped because their
	// code was already taken; the first occurrence wins.
	DuplicatePartCodes FlagList

	// UnmappedCategories counts distinct categories with no commoncat row
	// in the categorization table.
	UnmappedCategories FlagList
}

// NewFlags returns an empty flag set keeping at most sampleLimit samples
// per kind (zero or negative selects the default).
func NewFlags(sampleLimit int) Flags {
	if sampleLimit <= 0 {
		sampleLimit = DefaultSampleLimit
	}
	return Flags{limit: sampleLimit}
}

func (f *Flags) flag(list *FlagList, sample string) {
	list.Count++
	if len(list.Samples) < f.limit {
		list.Samples = append(list.Samples, sample)
	}
}

// Total returns the number of flagged anomalies across all kinds.
func (f *Flags) Total() int {
	return f.Unrecognized.Count +
		f.CategoriesWithoutSubcategory.Count +
		f.InsertedDecimals.Count +
		f.InvalidSubcategories.Count +
		f.CodesOutsideSubcategory.Count +
		f.DuplicatePartCodes.Count +
		f.UnmappedCategories.Count
}

// Report prints a per-kind summary with samples to w.
func (f *Flags) Report(w io.Writer) {
	if f.Total() == 0 {
		fmt.Fprintln(w, "no parse anomalies")
		return
	}
	section(w, "unrecognized lines", f.Unrecognized)
	section(w, "categories without subcategories (ignored)", f.CategoriesWithoutSubcategory)
	section(w, "codes with inserted decimal point", f.InsertedDecimals)
	section(w, "invalid or unrecognized subcategories", f.InvalidSubcategories)
	section(w, "code lines outside an active subcategory", f.CodesOutsideSubcategory)
	section(w, "duplicate part codes (first kept)", f.DuplicatePartCodes)
	section(w, "categories with no commoncat mapping", f.UnmappedCategories)
}

func section(w io.Writer, label string, list FlagList) {
	if list.Count == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %d\n", label, list.Count)
	for _, s := range list.Samples {
		fmt.Fprintf(w, "- %s\n", s)
	}
	if more := list.Count - len(list.Samples); more > 0 {
		fmt.Fprintf(w, "  ... and %d more\n", more)
	}
}
