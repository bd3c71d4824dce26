// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textnorm provides the text cleaning shared by the parse and match
// stages. Records keep the text as parsed; cleaning applies at comparison
// time only.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Lower trims surrounding whitespace and lowercases.
func Lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FoldAccents strips combining marks so accented and plain spellings
// compare equal (e.g. "sjögren" and "sjogren").
func FoldAccents(s string) string {
	result, _, _ := transform.String(stripAccents, s)
	return result
}

// CollapseSpaces reduces any whitespace run to a single space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripPunctuation removes every rune that is not a letter, digit, or space.
func StripPunctuation(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CleanDescription returns the canonical comparison form: lowercase,
// accents folded, punctuation stripped, whitespace collapsed.
func CleanDescription(s string) string {
	return CollapseSpaces(StripPunctuation(FoldAccents(Lower(s))))
}
