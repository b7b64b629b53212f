package profile

import (
	"strings"
	"testing"

	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

func sampleRecords() []types.Record {
	return []types.Record{
		{Name: "2 x 4 x 8 Stud", Price: "$5.00"},
		{Name: "1/2 x 4 x 8 Birch Plywood", Price: "$45.00 / each"},
		{Name: "4-inch x 4-inch x 8-ft Post", Price: "$12.00"},
		{Name: "Mystery Item", Price: "call for price"},
		{Name: "   ", Price: ""},
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleRecords())

	if s.Rows != 5 {
		t.Errorf("Rows = %d, want 5", s.Rows)
	}
	if s.BlankNames != 1 {
		t.Errorf("BlankNames = %d, want 1", s.BlankNames)
	}
	if s.Dimensioned != 3 || s.Dimensionless != 2 {
		t.Errorf("coverage = %d/%d, want 3/2", s.Dimensioned, s.Dimensionless)
	}
	if s.CleanChanged != 2 {
		t.Errorf("CleanChanged = %d, want 2", s.CleanChanged)
	}
	want := CleanChange{Before: "4-inch x 4-inch x 8-ft Post", After: "4 x 4 x 8' Post"}
	if len(s.CleanChanges) != 2 || s.CleanChanges[0] != want {
		t.Errorf("CleanChanges = %+v, want the Post change first", s.CleanChanges)
	}
}

func TestSummarizePrices(t *testing.T) {
	s := Summarize(sampleRecords())

	if s.Prices.Count != 3 {
		t.Fatalf("Count = %d, want 3", s.Prices.Count)
	}
	if s.Prices.Min != 5 {
		t.Errorf("Min = %v, want 5", s.Prices.Min)
	}
	if s.Prices.Max != 45 {
		t.Errorf("Max = %v, want 45", s.Prices.Max)
	}
	if s.Prices.Median != 12 {
		t.Errorf("Median = %v, want 12", s.Prices.Median)
	}
	if want := 62.0 / 3; s.Prices.Mean != want {
		t.Errorf("Mean = %v, want %v", s.Prices.Mean, want)
	}
}

func TestSummarizeVocabularyCounts(t *testing.T) {
	s := Summarize(sampleRecords())

	// Most names match no material, so "<none>" leads the count.
	if len(s.Materials) != 2 {
		t.Fatalf("Materials = %+v, want 2 entries", s.Materials)
	}
	if s.Materials[0] != (ValueCount{Value: "<none>", Count: 4}) {
		t.Errorf("Materials[0] = %+v, want <none>: 4", s.Materials[0])
	}
	if s.Materials[1] != (ValueCount{Value: "Birch", Count: 1}) {
		t.Errorf("Materials[1] = %+v, want Birch: 1", s.Materials[1])
	}

	if len(s.ProductTypes) != 1 || s.ProductTypes[0] != (ValueCount{Value: "Plywood", Count: 5}) {
		t.Errorf("ProductTypes = %+v, want only Plywood: 5", s.ProductTypes)
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		price string
		want  float64
		ok    bool
	}{
		{"$4.28 / each", 4.28, true},
		{"$1,299.00", 1299, true},
		{"12.5", 12.5, true},
		{" $ 45 ", 45, true},
		{"", 0, false},
		{"call for price", 0, false},
		{"N/A", 0, false},
	}

	for _, tt := range tests {
		got, ok := parsePrice(tt.price)
		if ok != tt.ok || got != tt.want {
			t.Errorf("parsePrice(%q) = %v, %v, want %v, %v", tt.price, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMedian(t *testing.T) {
	if got := median([]float64{1, 2, 10}); got != 2 {
		t.Errorf("odd median = %v, want 2", got)
	}
	if got := median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("even median = %v, want 2.5", got)
	}
	if got := median(nil); got != 0 {
		t.Errorf("empty median = %v, want 0", got)
	}
}

func TestRender(t *testing.T) {
	report := Render(Summarize(sampleRecords()), "UnsortedProducts.csv", 10)

	for _, want := range []string{
		"# Catalog profile: UnsortedProducts.csv",
		"## Dataset shape",
		"- Rows: 5",
		"- Blank product names: 1",
		"## Dimension coverage",
		"- With dimension triple: 3 (60.0%)",
		"- Without dimension triple: 2 (40.0%)",
		"## Price summary",
		"- count=3, min=5, median=12, mean=20.67, max=45",
		"## Materials",
		"- <none>: 4",
		"- Birch: 1",
		"## Product types",
		"- Plywood: 5",
		"## Cleaning changes",
		`- "4-inch x 4-inch x 8-ft Post" -> "4 x 4 x 8' Post"`,
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRenderCapsListings(t *testing.T) {
	report := Render(Summarize(sampleRecords()), "UnsortedProducts.csv", 1)

	if !strings.Contains(report, "- <none>: 4") {
		t.Error("top material should survive the cap")
	}
	if strings.Contains(report, "- Birch: 1") {
		t.Error("material beyond the cap should be dropped")
	}
	if strings.Contains(report, `- "   " -> ""`) {
		t.Error("cleaning change beyond the cap should be dropped")
	}
}

func TestRenderEmptySections(t *testing.T) {
	report := Render(Summarize([]types.Record{{Name: "Mystery Item"}}), "x.csv", 0)

	if !strings.Contains(report, "- No parseable prices") {
		t.Errorf("report missing no-price line:\n%s", report)
	}
	if !strings.Contains(report, "- No names changed") {
		t.Errorf("report missing no-change line:\n%s", report)
	}
}
