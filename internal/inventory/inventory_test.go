package inventory

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	invDir := filepath.Join(t.TempDir(), "inventory")

	store, err := NewStore(types.InventoryConfig{Dir: invDir, MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, invDir
}

// dim builds a dimension filter value.
func dim(v float64) *float64 { return &v }

// sampleRecords returns a catalog in final pipeline order. The plywood
// thickness is spelled as a decimal: a leading "1/2" extracts as
// thickness 2, not 0.5.
func sampleRecords() []types.Record {
	return []types.Record{
		{Name: "0.5 x 4 x 8 Birch Plywood", Price: "$45.00"},
		{Name: "2 x 4 x 8 Stud", Price: "$5.00"},
		{Name: "2 x 4 x 104-5/8 Stud Grade Lumber", Price: "$4.28"},
		{Name: "4 x 4 x 8' Post", Price: "$12.00"},
		{Name: "Mystery Item", Price: "$1.00"},
	}
}

func ingestHelper(t *testing.T, store *Store, source string) IngestSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), source, sampleRecords(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"snapshots", "products", "products_fts"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestNewStoreCreatesDBFile(t *testing.T) {
	store, invDir := testSetup(t)
	defer store.Close()

	dbPath := filepath.Join(invDir, indexDir, dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

// --- ingest tests ---

func TestIngest(t *testing.T) {
	store, _ := testSetup(t)

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), "catalogs/SortedProducts.csv", sampleRecords(), &buf)
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	if summary.Rows != 5 {
		t.Errorf("Rows = %d, want 5", summary.Rows)
	}
	if summary.Dimensioned != 4 {
		t.Errorf("Dimensioned = %d, want 4", summary.Dimensioned)
	}
	if summary.Replaced != 0 {
		t.Errorf("Replaced = %d, want 0", summary.Replaced)
	}
	if summary.SnapshotID == "" {
		t.Error("SnapshotID is empty")
	}
	if !strings.Contains(buf.String(), "ingested catalogs/SortedProducts.csv: 5 rows (4 dimensioned)") {
		t.Errorf("unexpected output: %s", buf.String())
	}
}

func TestIngestStoresDimensions(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	var thickness, width, length sql.NullFloat64
	var hasDims int
	err := store.db.QueryRow(
		`SELECT thickness, width, length, has_dims FROM products WHERE name = ?`,
		"2 x 4 x 104-5/8 Stud Grade Lumber",
	).Scan(&thickness, &width, &length, &hasDims)
	if err != nil {
		t.Fatal(err)
	}
	if hasDims != 1 {
		t.Error("has_dims = 0, want 1")
	}
	if thickness.Float64 != 2 || width.Float64 != 4 || length.Float64 != 104.625 {
		t.Errorf("dims = (%v, %v, %v), want (2, 4, 104.625)",
			thickness.Float64, width.Float64, length.Float64)
	}
}

func TestIngestStoresDimensionlessAsNull(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	var thickness sql.NullFloat64
	var hasDims, position int
	err := store.db.QueryRow(
		`SELECT thickness, has_dims, position FROM products WHERE name = ?`, "Mystery Item",
	).Scan(&thickness, &hasDims, &position)
	if err != nil {
		t.Fatal(err)
	}
	if hasDims != 0 || thickness.Valid {
		t.Errorf("has_dims = %d, thickness valid = %v, want dimensionless NULL", hasDims, thickness.Valid)
	}
	if position != 4 {
		t.Errorf("position = %d, want 4", position)
	}
}

func TestIngestReplacesSameSource(t *testing.T) {
	store, _ := testSetup(t)
	first := ingestHelper(t, store, "catalogs/SortedProducts.csv")

	var buf strings.Builder
	second, err := store.Ingest(context.Background(), "catalogs/SortedProducts.csv", sampleRecords(), &buf)
	if err != nil {
		t.Fatal(err)
	}

	if second.Replaced != 1 {
		t.Errorf("Replaced = %d, want 1", second.Replaced)
	}
	if !strings.Contains(buf.String(), "replacing snapshot "+first.SnapshotID) {
		t.Errorf("output should mention the replaced snapshot: %s", buf.String())
	}

	snaps, err := store.Snapshots(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 1 {
		t.Fatalf("got %d snapshots, want 1", len(snaps))
	}
	if snaps[0].ID != second.SnapshotID {
		t.Errorf("surviving snapshot = %s, want %s", snaps[0].ID, second.SnapshotID)
	}

	var productCount int
	if err := store.db.QueryRow(`SELECT count(*) FROM products`).Scan(&productCount); err != nil {
		t.Fatal(err)
	}
	if productCount != 5 {
		t.Errorf("products = %d, want 5 (old snapshot rows removed)", productCount)
	}
}

func TestIngestKeepsDistinctSources(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedA.csv")
	ingestHelper(t, store, "catalogs/SortedB.csv")

	snaps, err := store.Snapshots(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Errorf("got %d snapshots, want 2", len(snaps))
	}
}

func TestIngestWritesManifest(t *testing.T) {
	store, invDir := testSetup(t)
	summary := ingestHelper(t, store, "catalogs/SortedProducts.csv")

	data, err := os.ReadFile(filepath.Join(invDir, indexDir, manifestFile))
	if err != nil {
		t.Fatal(err)
	}

	var snaps []Snapshot
	if err := yaml.Unmarshal(data, &snaps); err != nil {
		t.Fatalf("invalid manifest YAML: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("manifest has %d snapshots, want 1", len(snaps))
	}
	if snaps[0].ID != summary.SnapshotID || snaps[0].Rows != 5 || snaps[0].Dimensioned != 4 {
		t.Errorf("manifest entry = %+v", snaps[0])
	}
}

// --- query tests ---

func TestRetrieveFullTextSearch(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"single term", "stud", 2},
		{"two terms", "birch plywood", 1},
		{"no match", "walnut", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), QueryOptions{Text: tt.query})
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
			term := strings.Fields(tt.query)[0]
			for _, r := range results {
				if !strings.Contains(strings.ToLower(r.Name), term) {
					t.Errorf("result %q does not match query %q", r.Name, tt.query)
				}
			}
		})
	}
}

func TestRetrieveByDimensions(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	tests := []struct {
		name string
		opts QueryOptions
		want int
	}{
		{"thickness", QueryOptions{Thickness: dim(2)}, 2},
		{"fractional thickness", QueryOptions{Thickness: dim(0.5)}, 1},
		{"length", QueryOptions{Length: dim(8)}, 3},
		{"thickness and length", QueryOptions{Thickness: dim(2), Length: dim(8)}, 1},
		{"no such size", QueryOptions{Thickness: dim(7)}, 0},
		{"zero matches nothing", QueryOptions{Thickness: dim(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Retrieve(context.Background(), tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestRetrieveDimensionedOnly(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	results, err := store.Retrieve(context.Background(), QueryOptions{Dimensioned: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4", len(results))
	}
	for _, r := range results {
		if r.Dimensions == nil {
			t.Errorf("result %q missing dimensions", r.Name)
		}
	}
}

func TestRetrieveOrdersByDimensions(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	results, err := store.Retrieve(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}

	wantNames := []string{
		"0.5 x 4 x 8 Birch Plywood",
		"2 x 4 x 8 Stud",
		"2 x 4 x 104-5/8 Stud Grade Lumber",
		"4 x 4 x 8' Post",
		"Mystery Item",
	}
	if len(results) != len(wantNames) {
		t.Fatalf("got %d results, want %d", len(results), len(wantNames))
	}
	for i, name := range wantNames {
		if results[i].Name != name {
			t.Errorf("result %d = %q, want %q", i, results[i].Name, name)
		}
	}
	if results[len(results)-1].Dimensions != nil {
		t.Error("dimensionless product should come last without dimensions")
	}
}

func TestRetrieveBySource(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedA.csv")

	var buf strings.Builder
	joist := []types.Record{{Name: "2 x 6 x 10 Joist", Price: "$9.00"}}
	if _, err := store.Ingest(context.Background(), "catalogs/SortedB.csv", joist, &buf); err != nil {
		t.Fatal(err)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Source: "catalogs/SortedB.csv"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	if results[0].Name != "2 x 6 x 10 Joist" || results[0].Source != "catalogs/SortedB.csv" {
		t.Errorf("result = %+v", results[0])
	}
}

func TestRetrieveRespectsMaxResults(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	results, err := store.Retrieve(context.Background(), QueryOptions{MaxResults: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) > 2 {
		t.Errorf("got %d results, want <= 2", len(results))
	}
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		opts QueryOptions
		want bool
	}{
		{"empty", QueryOptions{}, true},
		{"max results is not a filter", QueryOptions{MaxResults: 5}, true},
		{"text", QueryOptions{Text: "stud"}, false},
		{"thickness", QueryOptions{Thickness: dim(2)}, false},
		{"zero thickness is still a filter", QueryOptions{Thickness: dim(0)}, false},
		{"dimensioned", QueryOptions{Dimensioned: true}, false},
		{"source", QueryOptions{Source: "catalogs/SortedA.csv"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.opts.IsEmpty(); got != tt.want {
				t.Errorf("IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

// --- snapshot tests ---

func TestSnapshots(t *testing.T) {
	store, _ := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedA.csv")
	ingestHelper(t, store, "catalogs/SortedB.csv")

	snaps, err := store.Snapshots(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}

	sources := map[string]bool{}
	for _, snap := range snaps {
		sources[snap.Source] = true
		if snap.IngestedAt == "" {
			t.Errorf("snapshot %s missing ingested_at", snap.ID)
		}
		if snap.Rows != 5 || snap.Dimensioned != 4 {
			t.Errorf("snapshot %s counts = %d/%d, want 5/4", snap.ID, snap.Rows, snap.Dimensioned)
		}
	}
	if !sources["catalogs/SortedA.csv"] || !sources["catalogs/SortedB.csv"] {
		t.Errorf("sources = %v, want both catalogs", sources)
	}
	if snaps[0].Source != "catalogs/SortedB.csv" {
		t.Errorf("snaps[0].Source = %s, want the later ingest first", snaps[0].Source)
	}
}

func TestIngestedAtOrdersLexically(t *testing.T) {
	// A whole-second timestamp must sort before a later sub-second one,
	// or newest-first snapshot listing breaks.
	early := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC).Format(ingestedAtLayout)
	late := time.Date(2026, 8, 25, 12, 0, 0, 1, time.UTC).Format(ingestedAtLayout)
	if early >= late {
		t.Errorf("timestamps misorder: %q >= %q", early, late)
	}
	if len(early) != len(late) {
		t.Errorf("timestamps are not fixed width: %q vs %q", early, late)
	}
}

// --- export tests ---

func TestExportYAML(t *testing.T) {
	store, invDir := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	if err := store.ExportYAML(context.Background(), QueryOptions{}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(invDir, indexDir, "export.yaml"))
	if err != nil {
		t.Fatal(err)
	}

	var entries []QueryResult
	if err := yaml.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid YAML: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("got %d entries, want 5", len(entries))
	}
	for _, e := range entries {
		if e.Name == "" || e.SnapshotID == "" {
			t.Errorf("entry missing fields: %+v", e)
		}
	}
}

func TestExportJSONFiltered(t *testing.T) {
	store, invDir := testSetup(t)
	ingestHelper(t, store, "catalogs/SortedProducts.csv")

	if err := store.ExportJSON(context.Background(), QueryOptions{Dimensioned: true}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(invDir, indexDir, "export.json"))
	if err != nil {
		t.Fatal(err)
	}

	var entries []QueryResult
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 4 {
		t.Errorf("got %d entries, want 4", len(entries))
	}
	for _, e := range entries {
		if e.Dimensions == nil {
			t.Errorf("entry %q missing dimensions", e.Name)
		}
	}
}
