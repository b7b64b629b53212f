package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/catalog"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/config"
	"github.com/LisaMDV/PRICE-SCRAPER/pkg/types"
)

var sortCmd = &cobra.Command{
	Use:   "sort [input.csv]",
	Short: "Sort a scraped catalog by extracted dimensions",
	Long: `Sort reads a scraped catalog CSV, orders its rows by the dimension
triples parsed from product names, cleans scraping noise out of every field,
and writes the result with "Unsorted" replaced by "Sorted" in the file name.
Rows without a recognizable dimension pattern keep their relative order at
the end of the file.

An input path without an "Unsorted" segment needs an explicit --output;
sort refuses to overwrite its input.`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	sortCmd.Flags().String("output", "", "output path (default: input path with \"Unsorted\" replaced by \"Sorted\")")
	sortCmd.Flags().Bool("debug", false, "print an Original -> Cleaned trace for every record")

	rootCmd.AddCommand(sortCmd)
}

func runSort(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if !cmd.Flags().Changed("debug") {
		debug = cfg.Sort.Debug
	}
	output, _ := cmd.Flags().GetString("output")

	inputPath := args[0]
	outputPath, err := catalog.ResolveOutputPath(inputPath, output)
	if err != nil {
		return err
	}

	records, err := catalog.Load(inputPath)
	if err != nil {
		return err
	}

	sorted := catalog.SortRecords(records)
	cleaned := make([]types.Record, len(sorted))
	for i, r := range sorted {
		cleaned[i] = catalog.CleanRecord(r)
		if debug {
			fmt.Printf("Original: %s -> Cleaned: %s\n", r.Name, cleaned[i].Name)
			fmt.Printf("Original Price: %s -> Cleaned Price: %s\n", r.Price, cleaned[i].Price)
			fmt.Println(strings.Repeat("-", 50))
		}
	}

	if err := catalog.Save(outputPath, cleaned); err != nil {
		return err
	}

	fmt.Printf("Sorted file created: %s\n", outputPath)
	return nil
}
