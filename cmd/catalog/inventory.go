// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/catalog"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/config"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/dimension"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/inventory"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Manage the product inventory (ingest, query, export)",
	Long: `Inventory manages a local SQLite database of sorted catalog snapshots.
Use subcommands to ingest scraped catalogs, query stored products by text
or dimensions, list snapshots, or export.`,
}

// --- ingest subcommand ---

var inventoryIngestCmd = &cobra.Command{
	Use:   "ingest [input.csv...]",
	Short: "Run catalogs through the sort pipeline and store them as snapshots",
	Long: `Ingest reads scraped catalog CSVs, runs each through the sorting
pipeline, and stores the result as a snapshot keyed by source path.
Re-ingesting a source replaces its earlier snapshot.`,
	RunE: runInventoryIngest,
}

func runInventoryIngest(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more catalog CSV files")
	}

	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	failed := 0
	for _, path := range args {
		records, err := catalog.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			failed++
			continue
		}
		if _, err := store.Ingest(context.Background(), path, catalog.Sort(records), os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "warning: ingesting %s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d catalog(s) failed ingest", failed)
	}
	return nil
}

// --- query subcommand ---

var inventoryQueryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query stored products by full text and dimensions",
	Long: `Query searches stored products with FTS5 full-text search over product
names, exact dimension filters, or both. Dimension values accept the same
forms product names use, fractions included ("5/4"). Filtered results come
back in dimension order with dimensionless products last.`,
	RunE: runInventoryQuery,
}

func runInventoryQuery(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide search text, --thickness, --width, --length, --dimensioned, or --source")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatQueryOutput(results, jsonOutput)
}

func formatQueryOutput(results []inventory.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-50s  %-12s  %-20s  %s\n",
		"Rank", "Product", "Price", "Dimensions", "Source")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 105))

	for i, r := range results {
		name := r.Name
		if len(name) > 50 {
			name = name[:47] + "..."
		}
		dims := "-"
		if r.Dimensions != nil {
			dims = fmt.Sprintf("%g x %g x %g", r.Dimensions.Thickness, r.Dimensions.Width, r.Dimensions.Length)
		}
		source := r.Source
		if len(source) > 20 {
			source = source[:17] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-50s  %-12s  %-20s  %s\n",
			i+1, name, r.Price, dims, source)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- snapshots subcommand ---

var inventorySnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored catalog snapshots",
	RunE:  runInventorySnapshots,
}

func runInventorySnapshots(cmd *cobra.Command, args []string) error {
	store, _, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.Snapshots(context.Background())
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("No snapshots stored.")
		return nil
	}
	for _, s := range snaps {
		fmt.Printf("%s  %s  rows=%d dimensioned=%d  %s\n",
			s.ID, s.IngestedAt, s.Rows, s.Dimensioned, s.Source)
	}
	return nil
}

// --- export subcommand ---

var inventoryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored products to YAML or JSON",
	Long: `Export writes stored products (or a filtered subset) to
<inventory-dir>/index/export.yaml or export.json. Supports the same filter
flags as query for partial exports.`,
	RunE: runInventoryExport,
}

func runInventoryExport(cmd *cobra.Command, args []string) error {
	store, invCfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	format, _ := cmd.Flags().GetString("format")
	if format == "" {
		format = string(invCfg.ExportFormat)
	}

	opts, err := queryOptsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	switch types.ExportFormat(format) {
	case types.ExportYAML:
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(invCfg.Dir, "index", "export.yaml"))
	case types.ExportJSON:
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", filepath.Join(invCfg.Dir, "index", "export.json"))
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openStore(cmd *cobra.Command) (*inventory.Store, types.InventoryConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, types.InventoryConfig{}, err
	}

	inv := cfg.Inventory
	if dir, _ := cmd.Flags().GetString("inventory-dir"); dir != "" {
		inv.Dir = dir
	}
	if maxResults, _ := cmd.Flags().GetInt("max-results"); maxResults > 0 {
		inv.MaxResults = maxResults
	}

	store, err := inventory.NewStore(inv)
	if err != nil {
		return nil, types.InventoryConfig{}, err
	}
	return store, inv, nil
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) (inventory.QueryOptions, error) {
	text, _ := cmd.Flags().GetString("text")
	if text == "" && len(args) > 0 {
		text = strings.Join(args, " ")
	}

	dimensioned, _ := cmd.Flags().GetBool("dimensioned")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	opts := inventory.QueryOptions{
		Text:        text,
		Dimensioned: dimensioned,
		Source:      source,
		MaxResults:  limit,
	}

	var err error
	if opts.Thickness, err = dimensionFlag(cmd, "thickness"); err != nil {
		return inventory.QueryOptions{}, err
	}
	if opts.Width, err = dimensionFlag(cmd, "width"); err != nil {
		return inventory.QueryOptions{}, err
	}
	if opts.Length, err = dimensionFlag(cmd, "length"); err != nil {
		return inventory.QueryOptions{}, err
	}

	return opts, nil
}

// dimensionFlag parses one dimension filter flag. An unset flag yields
// nil, so a given value of 0 still filters instead of being dropped.
func dimensionFlag(cmd *cobra.Command, name string) (*float64, error) {
	raw, _ := cmd.Flags().GetString(name)
	if raw == "" {
		return nil, nil
	}
	v, err := dimension.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
	}
	return &v, nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	inventoryCmd.PersistentFlags().String("inventory-dir", "", "base directory for the inventory (default from config: inventory)")
	inventoryCmd.PersistentFlags().Int("max-results", 0, "maximum number of query results (0 = config default)")

	// Query flags.
	inventoryQueryCmd.Flags().String("text", "", "full-text search over product names")
	inventoryQueryCmd.Flags().String("thickness", "", "filter by thickness (fractions allowed, e.g. 5/4)")
	inventoryQueryCmd.Flags().String("width", "", "filter by width (fractions allowed)")
	inventoryQueryCmd.Flags().String("length", "", "filter by length (fractions allowed)")
	inventoryQueryCmd.Flags().Bool("dimensioned", false, "only products with an extracted dimension triple")
	inventoryQueryCmd.Flags().String("source", "", "filter by snapshot source path")
	inventoryQueryCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	inventoryQueryCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	inventoryExportCmd.Flags().String("format", "", "export format: yaml or json (default from config)")
	inventoryExportCmd.Flags().String("text", "", "full-text search filter for partial export")
	inventoryExportCmd.Flags().String("thickness", "", "filter by thickness for partial export")
	inventoryExportCmd.Flags().String("width", "", "filter by width for partial export")
	inventoryExportCmd.Flags().String("length", "", "filter by length for partial export")
	inventoryExportCmd.Flags().Bool("dimensioned", false, "only products with an extracted dimension triple")
	inventoryExportCmd.Flags().String("source", "", "filter by snapshot source path")
	inventoryExportCmd.Flags().Int("limit", 0, "maximum products to export (0 = all)")

	// Wire subcommands.
	inventoryCmd.AddCommand(inventoryIngestCmd)
	inventoryCmd.AddCommand(inventoryQueryCmd)
	inventoryCmd.AddCommand(inventorySnapshotsCmd)
	inventoryCmd.AddCommand(inventoryExportCmd)

	rootCmd.AddCommand(inventoryCmd)
}
