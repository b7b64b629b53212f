// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package inventory

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// QueryOptions holds parameters for inventory queries.
type QueryOptions struct {
	// Text is the FTS5 full-text search string over product names.
	Text string

	// Thickness, Width, and Length filter products by exact dimension
	// value. Nil means no filter on that axis; a set zero matches nothing
	// rather than being dropped.
	Thickness *float64
	Width     *float64
	Length    *float64

	// Dimensioned keeps only products with an extracted triple.
	Dimensioned bool

	// Source filters by snapshot source.
	Source string

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Text == "" && q.Thickness == nil && q.Width == nil && q.Length == nil &&
		!q.Dimensioned && q.Source == ""
}

// QueryResult is one stored product with its snapshot provenance.
type QueryResult struct {
	Name       string            `json:"product_name" yaml:"product_name"`
	Price      string            `json:"price" yaml:"price"`
	Dimensions *types.Dimensions `json:"dimensions,omitempty" yaml:"dimensions,omitempty"`
	Position   int               `json:"position" yaml:"position"`
	Source     string            `json:"source" yaml:"source"`
	SnapshotID string            `json:"snapshot_id" yaml:"snapshot_id"`
}

// Retrieve queries the inventory with optional full-text search and
// dimension filters. Full-text results are ranked by relevance; filtered
// results come back in dimension order with dimensionless products last.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Text != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT p.name, p.price, p.thickness, p.width, p.length, p.has_dims,
				p.position, sn.id, sn.source, products_fts.rank
			FROM products_fts
			JOIN products p ON p.rowid = products_fts.rowid
			JOIN snapshots sn ON p.snapshot_id = sn.id
			WHERE products_fts MATCH ?`)
		args = append(args, opts.Text)
	} else {
		qb.WriteString(
			`SELECT p.name, p.price, p.thickness, p.width, p.length, p.has_dims,
				p.position, sn.id, sn.source, 0 AS rank
			FROM products p
			JOIN snapshots sn ON p.snapshot_id = sn.id
			WHERE 1=1`)
	}

	if opts.Thickness != nil {
		qb.WriteString(` AND p.thickness = ?`)
		args = append(args, *opts.Thickness)
	}

	if opts.Width != nil {
		qb.WriteString(` AND p.width = ?`)
		args = append(args, *opts.Width)
	}

	if opts.Length != nil {
		qb.WriteString(` AND p.length = ?`)
		args = append(args, *opts.Length)
	}

	if opts.Dimensioned {
		qb.WriteString(` AND p.has_dims = 1`)
	}

	if opts.Source != "" {
		qb.WriteString(` AND sn.source = ?`)
		args = append(args, opts.Source)
	}

	if useFTS {
		qb.WriteString(` ORDER BY products_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY p.has_dims DESC, p.thickness, p.width, p.length, sn.source, p.position`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying inventory: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr        QueryResult
			thickness sql.NullFloat64
			width     sql.NullFloat64
			length    sql.NullFloat64
			hasDims   int
			rank      float64
		)

		if err := rows.Scan(
			&qr.Name, &qr.Price, &thickness, &width, &length, &hasDims,
			&qr.Position, &qr.SnapshotID, &qr.Source, &rank,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		if hasDims == 1 {
			qr.Dimensions = &types.Dimensions{
				Thickness: thickness.Float64,
				Width:     width.Float64,
				Length:    length.Float64,
			}
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}
