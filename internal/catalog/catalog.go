// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog loads, sorts, standardizes, and writes product catalog
// CSV files.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

// Input and output column names. Scraped catalogs must carry ColumnName
// and ColumnPrice; everything else is dropped on output.
const (
	ColumnName         = "Product Name"
	ColumnPrice        = "Price"
	ColumnStandardized = "Standardized Name"
)

var (
	// ErrNotFound reports a missing input file.
	ErrNotFound = errors.New("catalog file not found")

	// ErrMissingColumns reports an input without the required header columns.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrOutputCollision reports a derived output path identical to the
	// input path, which would overwrite the scraped file.
	ErrOutputCollision = errors.New("derived output path equals input path")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads a catalog CSV into records. The required "Product Name" and
// "Price" columns are located by exact header match and cells are taken
// by position, so ragged rows load with absent cells as "". A UTF-8 BOM
// before the header is tolerated. Load fails with ErrNotFound when the
// file does not exist and ErrMissingColumns when either required column
// is absent.
func Load(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: %s has no header row", ErrMissingColumns, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	nameIdx, priceIdx := -1, -1
	for i, col := range header {
		switch col {
		case ColumnName:
			if nameIdx < 0 {
				nameIdx = i
			}
		case ColumnPrice:
			if priceIdx < 0 {
				priceIdx = i
			}
		}
	}
	if nameIdx < 0 || priceIdx < 0 {
		return nil, fmt.Errorf("%w: %s needs %q and %q", ErrMissingColumns, path, ColumnName, ColumnPrice)
	}

	var records []types.Record
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		records = append(records, types.Record{
			Name:  cell(rec, nameIdx),
			Price: cell(rec, priceIdx),
		})
	}
	return records, nil
}

func cell(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

// Save writes records to path as a minimally quoted CSV under the
// "Product Name","Price" header. The file is written to a temporary
// sibling and renamed into place, so a failed run leaves no partial
// output behind.
func Save(path string, records []types.Record) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	w := csv.NewWriter(tmpFile)
	writeErr := w.Write([]string{ColumnName, ColumnPrice})
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = w.Write([]string{rec.Name, rec.Price})
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// SaveStandardized writes records to path under the
// "Standardized Name","Price" header with every field quoted, matching
// the vendor's standardized-catalog convention. The same temporary
// sibling and rename scheme as Save applies.
func SaveStandardized(path string, records []types.Record) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".catalog-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	writeErr := writeQuotedRecord(tmpFile, []string{ColumnStandardized, ColumnPrice})
	for _, rec := range records {
		if writeErr != nil {
			break
		}
		writeErr = writeQuotedRecord(tmpFile, []string{rec.Name, rec.Price})
	}
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing catalog: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeQuotedRecord writes one CSV record with every field quoted,
// doubling embedded quotes.
func writeQuotedRecord(w io.Writer, rec []string) error {
	for i, field := range rec {
		if i > 0 {
			if _, err := io.WriteString(w, ","); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, strings.ReplaceAll(field, `"`, `""`)); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `"`); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// DeriveOutputPath maps an input path to its output path by replacing
// every "Unsorted" segment with "Sorted". A path without the marker maps
// to itself; callers decide whether that collision is acceptable.
func DeriveOutputPath(inputPath string) string {
	return strings.ReplaceAll(inputPath, "Unsorted", "Sorted")
}

// ResolveOutputPath picks the path sorted output should be written to:
// the explicit path when one is given, otherwise the derived path.
// Deriving a path identical to the input fails with ErrOutputCollision
// instead of silently overwriting the scraped file.
func ResolveOutputPath(inputPath, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	out := DeriveOutputPath(inputPath)
	if out == inputPath {
		return "", fmt.Errorf("%w: %s has no \"Unsorted\" segment", ErrOutputCollision, inputPath)
	}
	return out, nil
}
