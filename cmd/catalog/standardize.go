package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/catalog"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/config"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/normalize"
)

var standardizeCmd = &cobra.Command{
	Use:   "standardize [input.csv]",
	Short: "Rebuild panel product names against the fixed vocabulary",
	Long: `Standardize reads a scraped panel catalog CSV, rebuilds every product
name in the canonical "<sizes> <material> <type> - <features>" form, orders
rows lexically by the rebuilt name, and writes a fully quoted CSV with
"Standardized Name" and "Price" columns.

The output path derives from the input path with "Unsorted" replaced by
"Sorted" unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runStandardize,
}

func init() {
	standardizeCmd.Flags().String("output", "", "output path (default: input path with \"Unsorted\" replaced by \"Sorted\")")
	standardizeCmd.Flags().Bool("debug", false, "print an Original -> Standardized trace for every record")

	rootCmd.AddCommand(standardizeCmd)
}

func runStandardize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if !cmd.Flags().Changed("debug") {
		debug = cfg.Standardize.Debug
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

	if debug {
		for _, r := range records {
			fmt.Printf("Original: %s -> Standardized: %s\n", r.Name, normalize.Standardize(r.Name))
		}
	}

	if err := catalog.SaveStandardized(outputPath, catalog.Standardize(records)); err != nil {
		return err
	}

	fmt.Printf("Sorted file created: %s\n", outputPath)
	return nil
}
