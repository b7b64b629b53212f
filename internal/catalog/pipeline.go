// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"sort"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/dimension"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/normalize"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// SortRecords returns a copy of records ordered by their dimension keys.
// The sort is stable, so records with equal keys, including every
// dimensionless record, keep their input order. Fields are left in their
// scraped form; CleanRecord prepares them for output.
func SortRecords(records []types.Record) []types.Record {
	type keyed struct {
		rec types.Record
		key types.Dimensions
	}
	ks := make([]keyed, len(records))
	for i, r := range records {
		ks[i] = keyed{rec: r, key: dimension.Key(r.Name)}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key.Less(ks[j].key) })

	out := make([]types.Record, len(ks))
	for i, k := range ks {
		out[i] = k.rec
	}
	return out
}

// CleanRecord returns r with both fields cleaned for output.
func CleanRecord(r types.Record) types.Record {
	return types.Record{
		Name:  normalize.Clean(r.Name),
		Price: normalize.Clean(r.Price),
	}
}

// Sort runs the full sorting pipeline: order records by dimension key,
// then clean every field. Output is deterministic for a given input.
func Sort(records []types.Record) []types.Record {
	sorted := SortRecords(records)
	out := make([]types.Record, len(sorted))
	for i, r := range sorted {
		out[i] = CleanRecord(r)
	}
	return out
}

// Standardize runs the standardizing pipeline: rebuild every name with
// the vocabulary standardizer, then order records lexically by the
// rebuilt name. Prices pass through verbatim. The sort is stable, so
// records whose names standardize identically keep their input order.
func Standardize(records []types.Record) []types.Record {
	out := make([]types.Record, len(records))
	for i, r := range records {
		out[i] = types.Record{Name: normalize.Standardize(r.Name), Price: r.Price}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
