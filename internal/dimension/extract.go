// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dimension

import (
	"regexp"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/normalize"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// triplePattern locates the first "A x B x C" run in a product name. Each
// value is an integer with an optional -N/D fraction part and an optional
// decimal part; the joining "x" is either case and may carry spaces.
var triplePattern = regexp.MustCompile(
	`(\d+(?:-\d+/\d+)?(?:\.\d+)?)\s*[xX]\s*` +
		`(\d+(?:-\d+/\d+)?(?:\.\d+)?)\s*[xX]\s*` +
		`(\d+(?:-\d+/\d+)?(?:\.\d+)?)`)

// Extract pulls the canonical dimension triple out of a product name. The
// name is cleaned first so unit suffixes cannot split the pattern. The
// first two captured values are ordered smallest-first into thickness and
// width; the third is always the length. ok is false when the name holds
// no triple or a captured value fails to parse.
func Extract(name string) (types.Dimensions, bool) {
	m := triplePattern.FindStringSubmatch(normalize.Clean(name))
	if m == nil {
		return types.Dimensions{}, false
	}
	first, err := Parse(m[1])
	if err != nil {
		return types.Dimensions{}, false
	}
	second, err := Parse(m[2])
	if err != nil {
		return types.Dimensions{}, false
	}
	length, err := Parse(m[3])
	if err != nil {
		return types.Dimensions{}, false
	}
	if first > second {
		first, second = second, first
	}
	return types.Dimensions{Thickness: first, Width: second, Length: length}, true
}

// Key maps a product name to its sort key: the extracted triple, or the
// sentinel for names without one. Sorting by Key puts dimensionless
// records after every dimensioned record.
func Key(name string) types.Dimensions {
	if d, ok := Extract(name); ok {
		return d
	}
	return types.SentinelDimensions()
}
