// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dimension parses numeric measurement tokens and extracts
// (thickness, width, length) triples from free-text product names.
package dimension

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnparseable reports a token that is not a recognized numeric form.
var ErrUnparseable = errors.New("unparseable numeric token")

// Parse converts one measurement token to a float64. Recognized forms,
// tried in order: a mixed number ("104-5/8" is 104.625), a simple
// fraction ("5/4" is 1.25), and a plain integer or decimal ("8", "12.5").
// Surrounding whitespace is ignored. Anything else, including a zero
// denominator, fails with ErrUnparseable.
func Parse(token string) (float64, error) {
	s := strings.TrimSpace(token)
	switch {
	case strings.Contains(s, "-") && strings.Contains(s, "/"):
		// Mixed number: whole part before the first dash, fraction after.
		whole, frac, _ := strings.Cut(s, "-")
		w, err := strconv.ParseFloat(whole, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
		f, err := parseFraction(frac)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
		return w + f, nil
	case strings.Contains(s, "/"):
		f, err := parseFraction(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
		return f, nil
	default:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnparseable, token)
		}
		return v, nil
	}
}

func parseFraction(s string) (float64, error) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, errors.New("missing fraction separator")
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, err
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, errors.New("zero denominator")
	}
	return n / d, nil
}
