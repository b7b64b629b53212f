// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize cleans scraped catalog text and standardizes product
// names against the fixed lumber vocabulary.
package normalize

import (
	"regexp"
	"strings"
)

// Cleaning rules, applied in order. Later rules see the output of earlier
// ones, so "-inch" must be handled before the bare " inch" word.
var (
	// feetSuffixRe matches the scraped "-ft" unit suffix, any case.
	feetSuffixRe = regexp.MustCompile(`(?i)-ft`)

	// inchSuffixRe matches the scraped "-inch" unit suffix, any case.
	inchSuffixRe = regexp.MustCompile(`(?i)-inch`)

	// inchWordRe matches a standalone " inch" word with its leading space.
	inchWordRe = regexp.MustCompile(`(?i)\b inch\b`)

	// perEachRe matches the "/ each" pricing qualifier.
	perEachRe = regexp.MustCompile(`(?i)/ each`)

	// whitespaceRe matches runs of whitespace left behind by the removals.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Clean strips unit noise from one scraped cell: "-ft" becomes the foot
// mark, "-inch", " inch", and "/ each" are removed, and whitespace runs
// collapse to single spaces with the ends trimmed. The rule list and its
// order are a fixed contract; sorted output files depend on them.
func Clean(s string) string {
	s = feetSuffixRe.ReplaceAllString(s, "'")
	s = inchSuffixRe.ReplaceAllString(s, "")
	s = inchWordRe.ReplaceAllString(s, "")
	s = perEachRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
