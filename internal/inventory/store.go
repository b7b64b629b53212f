// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package inventory persists sorted catalog snapshots in SQLite and
// serves dimension-filtered and full-text product queries.
package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	// The FTS5 schema needs go-sqlite3 built with the sqlite_fts5 tag;
	// the mage Build and Test targets set it.
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/dimension"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

const (
	indexDir     = "index"
	dbFile       = "catalog.db"
	manifestFile = "manifest.yaml"

	// ingestedAtLayout is fixed width, never trimming fractional zeros,
	// so the lexicographic ORDER BY over ingested_at stays chronological.
	ingestedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

// Store manages the inventory SQLite database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates the inventory database at dir/index/catalog.db.
// It creates the schema if it does not exist.
func NewStore(cfg types.InventoryConfig) (*Store, error) {
	dbDir := filepath.Join(cfg.Dir, indexDir)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		dir:        cfg.Dir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			ingested_at TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			dimensioned_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id TEXT NOT NULL REFERENCES snapshots(id),
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			price TEXT,
			thickness REAL,
			width REAL,
			length REAL,
			has_dims INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_snapshot ON products(snapshot_id)`,
		`CREATE INDEX IF NOT EXISTS idx_products_dims ON products(thickness, width, length)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='products_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE products_fts USING fts5(name, content=products, content_rowid=rowid)`,
			`CREATE TRIGGER products_ai AFTER INSERT ON products BEGIN
				INSERT INTO products_fts(rowid, name) VALUES (new.rowid, new.name);
			END`,
			`CREATE TRIGGER products_ad AFTER DELETE ON products BEGIN
				INSERT INTO products_fts(products_fts, rowid, name) VALUES('delete', old.rowid, old.name);
			END`,
			`CREATE TRIGGER products_au AFTER UPDATE ON products BEGIN
				INSERT INTO products_fts(products_fts, rowid, name) VALUES('delete', old.rowid, old.name);
				INSERT INTO products_fts(rowid, name) VALUES (new.rowid, new.name);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Snapshot describes one ingested catalog snapshot.
type Snapshot struct {
	ID          string `json:"id" yaml:"id"`
	Source      string `json:"source" yaml:"source"`
	IngestedAt  string `json:"ingested_at" yaml:"ingested_at"`
	Rows        int    `json:"rows" yaml:"rows"`
	Dimensioned int    `json:"dimensioned" yaml:"dimensioned"`
}

// IngestSummary holds counts from one snapshot ingest.
type IngestSummary struct {
	SnapshotID  string
	Rows        int
	Dimensioned int
	Replaced    int
}

// Ingest stores records as a new snapshot of source, replacing any
// earlier snapshot of the same source. Records are expected in final
// pipeline order; their position in the slice is persisted. Dimension
// triples are extracted per record so queries can filter on them. On
// success the snapshot manifest is rewritten.
func (s *Store) Ingest(ctx context.Context, source string, records []types.Record, w io.Writer) (IngestSummary, error) {
	type productRow struct {
		rec     types.Record
		dims    types.Dimensions
		hasDims bool
	}
	rows := make([]productRow, len(records))
	summary := IngestSummary{
		SnapshotID: uuid.NewString(),
		Rows:       len(records),
	}
	for i, r := range records {
		rows[i] = productRow{rec: r}
		if d, ok := dimension.Extract(r.Name); ok {
			rows[i].dims = d
			rows[i].hasDims = true
			summary.Dimensioned++
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Drop earlier snapshots of the same source.
	oldIDs, err := snapshotIDsBySource(ctx, tx, source)
	if err != nil {
		return IngestSummary{}, err
	}
	for _, old := range oldIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE snapshot_id = ?`, old); err != nil {
			return IngestSummary{}, fmt.Errorf("deleting old products: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, old); err != nil {
			return IngestSummary{}, fmt.Errorf("deleting old snapshot: %w", err)
		}
		fmt.Fprintf(w, "replacing snapshot %s of %s\n", old, source)
	}
	summary.Replaced = len(oldIDs)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (id, source, ingested_at, row_count, dimensioned_count)
		 VALUES (?, ?, ?, ?, ?)`,
		summary.SnapshotID, source, time.Now().UTC().Format(ingestedAtLayout),
		summary.Rows, summary.Dimensioned,
	)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("inserting snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO products (snapshot_id, position, name, price, thickness, width, length, has_dims)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		var thickness, width, length any
		hasDims := 0
		if row.hasDims {
			thickness, width, length = row.dims.Thickness, row.dims.Width, row.dims.Length
			hasDims = 1
		}
		_, err := stmt.ExecContext(ctx,
			summary.SnapshotID, i, row.rec.Name, row.rec.Price,
			thickness, width, length, hasDims,
		)
		if err != nil {
			return IngestSummary{}, fmt.Errorf("inserting product %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return IngestSummary{}, fmt.Errorf("committing snapshot: %w", err)
	}

	fmt.Fprintf(w, "ingested %s: %d rows (%d dimensioned) as snapshot %s\n",
		source, summary.Rows, summary.Dimensioned, summary.SnapshotID)

	if err := s.writeManifest(ctx); err != nil {
		fmt.Fprintf(w, "warning: manifest write failed: %v\n", err)
	}

	return summary, nil
}

func snapshotIDsBySource(ctx context.Context, tx *sql.Tx, source string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id FROM snapshots WHERE source = ?`, source)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots for %s: %w", source, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning snapshot id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Snapshots lists all stored snapshots, newest first.
func (s *Store) Snapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, ingested_at, row_count, dimensioned_count
		 FROM snapshots ORDER BY ingested_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var snap Snapshot
		if err := rows.Scan(&snap.ID, &snap.Source, &snap.IngestedAt, &snap.Rows, &snap.Dimensioned); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// writeManifest rewrites dir/index/manifest.yaml with the current
// snapshot list.
func (s *Store) writeManifest(ctx context.Context) error {
	snaps, err := s.Snapshots(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(snaps)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(s.dir, indexDir, manifestFile)
	return os.WriteFile(path, data, 0o644)
}
