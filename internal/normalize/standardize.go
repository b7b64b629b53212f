// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"regexp"
	"sort"
	"strings"
)

// sizeTokenRe captures each numeric size token in a product name together
// with its optional trailing unit: "3/4 in", "96\"", "8 ft", "12.5".
var sizeTokenRe = regexp.MustCompile(`(?i)(\d+/\d+|\d+\.?\d*)\s*[-"]?\s*(inch|in|ft|feet|mm|cm|")?`)

// melamineColorRe captures the color word of a "Melamine - White" marker.
var melamineColorRe = regexp.MustCompile(`(?i)Melamine\s*-\s*(\w+)`)

// materials is the recognition vocabulary for panel materials, in match
// priority order: the first case-insensitive substring hit wins.
var materials = []string{
	"Birch", "Pine", "Maple", "Oak", "Walnut", "Mahogany", "Spruce",
	"Cedar", "Fir", "Aspen", "Poplar", "HDF", "MDF", "OSB", "Hardboard",
	"Melamine", "Particle Board",
}

// productTypes is the recognition vocabulary for panel types. Names that
// match none are assumed to be plywood.
var productTypes = []string{
	"Plywood", "Handy Panel", "Pegboard", "Slotwall", "Sheathing",
}

// MatchMaterial returns the first vocabulary material found in name by
// case-insensitive substring search, or "" when none matches.
func MatchMaterial(name string) string {
	return matchVocab(name, materials, "")
}

// MatchProductType returns the first vocabulary panel type found in name,
// or "Plywood", the standardizer's default, when none matches.
func MatchProductType(name string) string {
	return matchVocab(name, productTypes, "Plywood")
}

func matchVocab(name string, vocab []string, fallback string) string {
	lower := strings.ToLower(name)
	for _, v := range vocab {
		if strings.Contains(lower, strings.ToLower(v)) {
			return v
		}
	}
	return fallback
}

// Standardize rebuilds a product name in the canonical
// "<sizes> <material> <type> - <features>" form: size tokens joined with
// " x " and glued to their units, the first matching material and panel
// type from the vocabularies, and recognized feature markers sorted
// alphabetically. Unmatched parts of the original name are dropped.
func Standardize(name string) string {
	var sizes []string
	for _, m := range sizeTokenRe.FindAllStringSubmatch(name, -1) {
		if m[2] != "" {
			sizes = append(sizes, m[1]+"-"+m[2])
		} else {
			sizes = append(sizes, m[1])
		}
	}

	material := MatchMaterial(name)
	productType := MatchProductType(name)

	std := strings.TrimSpace(strings.Join(sizes, " x ") + " " + material + " " + productType)
	if features := collectFeatures(name, material); len(features) > 0 {
		std += " - " + strings.Join(features, " ")
	}
	return std
}

// collectFeatures gathers the feature markers present in name. Marker
// detection is case sensitive, matching how the vendor writes them. The
// melamine color is suppressed when it only restates the material.
func collectFeatures(name, material string) []string {
	set := make(map[string]struct{})
	if strings.Contains(name, "Sanded") {
		set["Sanded"] = struct{}{}
	}
	if strings.Contains(name, "Fire Retardant") {
		set["Fire Retardant"] = struct{}{}
	}
	if strings.Contains(name, "Pressure Treated") {
		set["Pressure Treated"] = struct{}{}
	}
	if strings.Contains(name, "Melamine") {
		color := "Melamine"
		if m := melamineColorRe.FindStringSubmatch(name); m != nil {
			color = m[1]
		}
		if color != material {
			set["Melamine - "+color] = struct{}{}
		}
	}
	if strings.Contains(name, "Tongue & Groove") || strings.Contains(name, "T&G") {
		set["Tongue & Groove"] = struct{}{}
	}
	if strings.Contains(name, "Handy Panel") {
		set["Handy Panel"] = struct{}{}
	}

	features := make([]string, 0, len(set))
	for f := range set {
		features = append(features, f)
	}
	sort.Strings(features)
	return features
}
