//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
)

const unsortedDir = "catalogs/unsorted"

// Sort runs the sorting pipeline over every catalog in catalogs/unsorted.
func Sort() error {
	mg.Deps(Build)
	return runTool("sort", "catalogs/sorted")
}

// Standardize runs the vocabulary standardizer over every catalog in
// catalogs/unsorted.
func Standardize() error {
	mg.Deps(Build)
	return runTool("standardize", "catalogs/standardized")
}

// Profile writes a Markdown report for every catalog in catalogs/unsorted
// into reports/.
func Profile() error {
	mg.Deps(Build)
	inputs, err := filepath.Glob(filepath.Join(unsortedDir, "*.csv"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Printf("No catalogs in %s.\n", unsortedDir)
		return nil
	}
	for _, in := range inputs {
		out := filepath.Join("reports", filepath.Base(in)+".profile.md")
		if err := runCatalog("profile", in, "--output", out); err != nil {
			return err
		}
	}
	return nil
}

// Ingest sorts every catalog and stores the results as inventory snapshots.
func Ingest() error {
	mg.Deps(Sort)
	inputs, err := filepath.Glob(filepath.Join("catalogs/sorted", "*.csv"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Println("No catalogs in catalogs/sorted.")
		return nil
	}
	return runCatalog(append([]string{"inventory", "ingest"}, inputs...)...)
}

// runTool maps every catalogs/unsorted CSV through one catalog tool into
// outDir, renaming "Unsorted" segments the way the tool itself would.
func runTool(tool, outDir string) error {
	inputs, err := filepath.Glob(filepath.Join(unsortedDir, "*.csv"))
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		fmt.Printf("No catalogs in %s.\n", unsortedDir)
		return nil
	}
	for _, in := range inputs {
		name := strings.ReplaceAll(filepath.Base(in), "Unsorted", "Sorted")
		if err := runCatalog(tool, in, "--output", filepath.Join(outDir, name)); err != nil {
			return err
		}
	}
	return nil
}

func runCatalog(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
