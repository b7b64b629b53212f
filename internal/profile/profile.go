// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package profile summarizes a scraped catalog: dimension coverage, price
// statistics, and vocabulary value counts, rendered as a Markdown report.
package profile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/dimension"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/normalize"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// ValueCount is one vocabulary value with its row count.
type ValueCount struct {
	Value string
	Count int
}

// CleanChange records a product name before and after cleaning.
type CleanChange struct {
	Before string
	After  string
}

// PriceStats summarizes the parseable prices of a catalog.
type PriceStats struct {
	Count  int
	Min    float64
	Median float64
	Mean   float64
	Max    float64
}

// Summary holds the computed catalog statistics.
type Summary struct {
	// Rows is the number of records read.
	Rows int

	// BlankNames counts records whose product name is empty or whitespace.
	BlankNames int

	// Dimensioned and Dimensionless split Rows by whether a dimension
	// triple can be extracted from the name.
	Dimensioned   int
	Dimensionless int

	// CleanChanged counts records whose name cleaning alters.
	// CleanChanges lists those names before and after, in input order.
	CleanChanged int
	CleanChanges []CleanChange

	// Prices summarizes the price cells that parse as numbers.
	Prices PriceStats

	// Materials and ProductTypes count vocabulary matches over names,
	// ordered by count descending, ties by value.
	Materials    []ValueCount
	ProductTypes []ValueCount
}

// Summarize computes catalog statistics from scraped records.
func Summarize(records []types.Record) Summary {
	s := Summary{Rows: len(records)}
	materials := map[string]int{}
	ptypes := map[string]int{}
	var prices []float64
	for _, r := range records {
		if strings.TrimSpace(r.Name) == "" {
			s.BlankNames++
		}
		if _, ok := dimension.Extract(r.Name); ok {
			s.Dimensioned++
		} else {
			s.Dimensionless++
		}
		if cleaned := normalize.Clean(r.Name); cleaned != r.Name {
			s.CleanChanged++
			s.CleanChanges = append(s.CleanChanges, CleanChange{Before: r.Name, After: cleaned})
		}
		if p, ok := parsePrice(r.Price); ok {
			prices = append(prices, p)
		}
		key := "<none>"
		if m := normalize.MatchMaterial(r.Name); m != "" {
			key = m
		}
		materials[key]++
		ptypes[normalize.MatchProductType(r.Name)]++
	}

	sort.Float64s(prices)
	if len(prices) > 0 {
		s.Prices = PriceStats{
			Count:  len(prices),
			Min:    prices[0],
			Median: median(prices),
			Mean:   mean(prices),
			Max:    prices[len(prices)-1],
		}
	}
	s.Materials = sortedCounts(materials)
	s.ProductTypes = sortedCounts(ptypes)
	return s
}

// parsePrice pulls a number out of a scraped price cell like
// "$4.28 / each". Cleaning drops the "/ each" qualifier; currency marks,
// thousands separators, and spaces are stripped before parsing.
func parsePrice(price string) (float64, bool) {
	s := normalize.Clean(price)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func sortedCounts(counts map[string]int) []ValueCount {
	items := make([]ValueCount, 0, len(counts))
	for k, v := range counts {
		items = append(items, ValueCount{Value: k, Count: v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Value < items[j].Value
		}
		return items[i].Count > items[j].Count
	})
	return items
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// median expects xs sorted.
func median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	n := len(xs)
	if n%2 == 1 {
		return xs[n/2]
	}
	return (xs[n/2-1] + xs[n/2]) / 2
}

// Render formats the summary as a Markdown report. source names the
// profiled file; topValues caps each listing section, 0 meaning no cap.
func Render(s Summary, source string, topValues int) string {
	lines := []string{
		"# Catalog profile: " + source,
		"",
		"## Dataset shape",
		fmt.Sprintf("- Rows: %d", s.Rows),
		fmt.Sprintf("- Blank product names: %d", s.BlankNames),
		fmt.Sprintf("- Names changed by cleaning: %d", s.CleanChanged),
		"",
		"## Dimension coverage",
		fmt.Sprintf("- With dimension triple: %d (%.1f%%)", s.Dimensioned, pct(s.Dimensioned, s.Rows)),
		fmt.Sprintf("- Without dimension triple: %d (%.1f%%)", s.Dimensionless, pct(s.Dimensionless, s.Rows)),
		"",
		"## Price summary",
	}
	if s.Prices.Count == 0 {
		lines = append(lines, "- No parseable prices")
	} else {
		lines = append(lines, fmt.Sprintf("- count=%d, min=%s, median=%s, mean=%s, max=%s",
			s.Prices.Count, fmt4g(s.Prices.Min), fmt4g(s.Prices.Median), fmt4g(s.Prices.Mean), fmt4g(s.Prices.Max)))
	}
	lines = append(lines, "")

	lines = append(lines, valueCountSection("Materials", s.Materials, topValues)...)
	lines = append(lines, valueCountSection("Product types", s.ProductTypes, topValues)...)
	lines = append(lines, cleanChangeSection(s.CleanChanges, topValues)...)
	return strings.Join(lines, "\n")
}

func cleanChangeSection(changes []CleanChange, top int) []string {
	lines := []string{"## Cleaning changes"}
	if len(changes) == 0 {
		lines = append(lines, "- No names changed")
	}
	n := len(changes)
	if top > 0 && top < n {
		n = top
	}
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("- %q -> %q", changes[i].Before, changes[i].After))
	}
	lines = append(lines, "")
	return lines
}

func valueCountSection(title string, items []ValueCount, top int) []string {
	lines := []string{"## " + title}
	n := len(items)
	if top > 0 && top < n {
		n = top
	}
	for i := 0; i < n; i++ {
		lines = append(lines, fmt.Sprintf("- %s: %d", items[i].Value, items[i].Count))
	}
	lines = append(lines, "")
	return lines
}

func pct(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func fmt4g(v float64) string { return strconv.FormatFloat(v, 'g', 4, 64) }
