package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/catalog"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/config"
	"github.com/LisaMDV/PRICE-SCRAPER/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile [input.csv]",
	Short: "Write a Markdown profile of a scraped catalog",
	Long: `Profile reads a scraped catalog CSV and writes a Markdown report
covering dimension coverage, price statistics, and material and panel type
value counts. The report lands next to the input as <input>.profile.md
unless --output is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runProfile,
}

func init() {
	profileCmd.Flags().String("output", "", "report path (default: <input>.profile.md)")
	profileCmd.Flags().Int("top", 0, "cap on value-count entries per section (0 = config default)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	top, _ := cmd.Flags().GetInt("top")
	if top <= 0 {
		top = cfg.Profile.TopValues
	}
	output, _ := cmd.Flags().GetString("output")

	inputPath := args[0]
	if output == "" {
		output = inputPath + ".profile.md"
	}

	records, err := catalog.Load(inputPath)
	if err != nil {
		return err
	}

	report := profile.Render(profile.Summarize(records), filepath.Base(inputPath), top)
	if err := os.WriteFile(output, []byte(report), 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	fmt.Printf("Profile written: %s\n", output)
	return nil
}
