// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the catalog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/LisaMDV/PRICE-SCRAPER/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the catalog CLI.
var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Sort, standardize, and profile scraped lumber catalogs",
	Long: `catalog processes scraped lumber and panel price lists. Free-text product
names are parsed for (thickness, width, length) dimension triples, cleaned of
scraping noise, and written back out as deterministic, dimension-ordered CSV
files that downstream spreadsheets and diff tools can rely on.

Each processing tool is a subcommand: sort, standardize, profile, and
inventory. Sorted catalogs can be kept in a local SQLite inventory and
queried by text or dimensions.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./catalog.yaml or ~/.config/catalog/config.yaml)")
}

func initConfig() {
	config.SetDefaults()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("catalog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "catalog"))
		}
	}

	viper.SetEnvPrefix("CATALOG")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
