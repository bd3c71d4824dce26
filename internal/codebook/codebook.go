// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codebook parses converted codebook text into lookup tables.
// A per-edition Grammar classifies each line; Build folds the classified
// stream into code records carrying the current category and subcategory.
package codebook

import (
	"github.com/pdiddy/icd-engine/pkg/types"
)

// LineKind tags the role of one line of codebook text.
type LineKind string

const (
	// KindBlank is an empty or whitespace-only line.
	KindBlank LineKind = "blank"

	// KindChapterHeader is a chapter marker whose following line holds the
	// chapter title (ICD-10 prints "Chapter 1" above the title).
	KindChapterHeader LineKind = "chapter"

	// KindCategoryHeader is a chapter-level heading on a single line.
	KindCategoryHeader LineKind = "category"

	// KindSubcategoryHeader is a block heading with a parenthesized code
	// range.
	KindSubcategoryHeader LineKind = "subcategory"

	// KindCodeEntry is a leaf code with its description.
	KindCodeEntry LineKind = "code"

	// KindUnrecognized is a non-blank line matching no pattern.
	KindUnrecognized LineKind = "unrecognized"
)

// ClassifiedLine is the classifier's verdict for one line. Captured text is
// kept as printed; the builder lowercases on emission.
type ClassifiedLine struct {
	// Kind tags the line's role.
	Kind LineKind

	// Line is the 1-based source line number, set by the builder.
	Line int

	// Code and Description are set for KindCodeEntry.
	Code        string
	Description string

	// Title is the heading text for header kinds: the chapter title, the
	// category line, or the subcategory name with its range stripped.
	Title string

	// Range is the parenthesized code range of a subcategory header.
	Range string

	// PresetSubcategory carries a subcategory some category headers open
	// implicitly (the ICD-9 supplementary-classification exceptions).
	PresetSubcategory string

	// Valid reports whether a subcategory header passed the grammar's
	// validity check. Headers failing it are flagged and do not update
	// builder state.
	Valid bool

	// DecimalInserted marks a code entry whose printed code lost its
	// decimal point and had one restored.
	DecimalInserted bool

	// CategoryCandidate marks an unrecognized line that would have been a
	// category header had a subcategory header followed it.
	CategoryCandidate bool
}

// Grammar classifies codebook lines for one ICD edition. Classification is
// stateless; one line of lookahead covers the rules that anchor on the
// following line.
type Grammar interface {
	// Edition identifies the codebook revision the grammar parses.
	Edition() types.Edition

	// Classify tags one trimmed line. next is the trimmed following line,
	// empty at end of input.
	Classify(line, next string) ClassifiedLine

	// RequireSubcategory reports whether code entries count only beneath
	// an open subcategory header.
	RequireSubcategory() bool

	// IsPartCode reports whether a lowercased code belongs in the part
	// table variant.
	IsPartCode(code string) bool
}
