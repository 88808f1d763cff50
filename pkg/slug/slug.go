// Copyright (c) 2026 marsAI. All rights reserved.

// Package slug generates ASCII URL slugs from festival names.
//
// Festival instances are addressed by slug (e.g., "marsai-marseille-2026").
// Accents are folded to their base letter; any other character outside
// [a-z0-9] becomes a word separator.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds generated slugs. Longer names are cut at a word boundary.
const MaxLength = 64

var (
	separators = regexp.MustCompile(`[^a-z0-9]+`)
	wellFormed = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// foldAccents decomposes (é → e + U+0301) and drops the combining marks.
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
// It returns "" when nothing usable remains.
func From(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}

	result := separators.ReplaceAllString(strings.ToLower(folded), "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if cut := strings.LastIndexByte(result, '-'); cut > 0 {
			result = result[:cut]
		}
		result = strings.TrimRight(result, "-")
	}
	return result
}

// Valid reports whether s is already a slug: lowercase words of letters and
// digits joined by single hyphens.
func Valid(s string) bool {
	return wellFormed.MatchString(s)
}
