package main

import (
	"os"
	"path/filepath"

	"github.com/ccerv1/rf-weights-testing/internal/storage"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the SQLite snapshot from source data",
	Long: `Validate the relationship data file and rebuild the SQLite snapshot at
cache_path from it.

Later commands load the snapshot instead of the source file while the
snapshot is at least as new. Run this after replacing the data export.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

// RebuildResult is the response for the rebuild command.
type RebuildResult struct {
	Status  string `json:"status"`
	Source  string `json:"source"`
	Path    string `json:"path"`
	Records int    `json:"records"`
	Types   int    `json:"types"`
}

func runRebuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	source := absPath(cfg.DataPath)
	if dataPath != "" {
		source = absPath(dataPath)
	}
	records, err := storage.ReadRecords(source, storage.ReadOptions{FillMissing: fillMissing})
	if err != nil {
		exitWithError(ExitDataError, "reading %s: %v", source, err)
	}

	// Ensure cache directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.CachePath), 0755); err != nil {
		exitWithError(ExitError, "creating cache directory: %v", err)
	}

	db, err := storage.OpenDB(cfg.CachePath)
	if err != nil {
		exitWithError(ExitError, "opening database: %v", err)
	}
	defer db.Close()

	count, err := db.RebuildFromRecords(source, records)
	if err != nil {
		exitWithError(ExitDataError, "rebuilding snapshot: %v", err)
	}
	types, err := db.RelationshipTypes()
	if err != nil {
		exitWithError(ExitError, "reading relationship types: %v", err)
	}

	if humanOutput {
		outputHuman("Rebuilt %s with %d records and %d relationship types\n", cfg.CachePath, count, len(types))
		return nil
	}
	return outputJSON(RebuildResult{
		Status:  "rebuilt",
		Source:  source,
		Path:    cfg.CachePath,
		Records: count,
		Types:   len(types),
	})
}
