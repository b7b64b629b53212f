// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SentinelDimension is the coordinate assigned to every axis of a record
// whose name yields no dimension triple. It is larger than any plausible
// lumber measurement, so such records sort after all dimensioned ones.
const SentinelDimension = 999999

// Record is one catalog listing as scraped: the free-text product name and
// the price column verbatim. Cleaning never mutates a Record in place; it
// produces a new value.
type Record struct {
	// Name is the product name cell, e.g. "2 x 4 x 104-5/8 Stud Grade Lumber".
	Name string `json:"product_name" yaml:"product_name"`

	// Price is the price cell verbatim, e.g. "$4.28 / each".
	Price string `json:"price" yaml:"price"`
}

// Dimensions is an extracted (thickness, width, length) triple in the
// units the listing used, typically inches for the cross-section and feet
// for the length. Thickness <= Width always holds for extracted triples;
// Length keeps the position it had in the product name.
type Dimensions struct {
	// Thickness is the smaller of the first two dimensions in the name.
	Thickness float64 `json:"thickness" yaml:"thickness"`

	// Width is the larger of the first two dimensions in the name.
	Width float64 `json:"width" yaml:"width"`

	// Length is the third dimension in the name, never reordered.
	Length float64 `json:"length" yaml:"length"`
}

// SentinelDimensions returns the triple assigned to records without an
// extractable dimension pattern.
func SentinelDimensions() Dimensions {
	return Dimensions{
		Thickness: SentinelDimension,
		Width:     SentinelDimension,
		Length:    SentinelDimension,
	}
}

// IsSentinel reports whether d is the dimensionless marker.
func (d Dimensions) IsSentinel() bool {
	return d == SentinelDimensions()
}

// Less orders triples by thickness, then width, then length.
func (d Dimensions) Less(other Dimensions) bool {
	if d.Thickness != other.Thickness {
		return d.Thickness < other.Thickness
	}
	if d.Width != other.Width {
		return d.Width < other.Width
	}
	return d.Length < other.Length
}
