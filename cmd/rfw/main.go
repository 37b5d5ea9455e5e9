// Package main provides the rfw CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ccerv1/rf-weights-testing/internal/config"
	"github.com/ccerv1/rf-weights-testing/internal/logger"
	"github.com/ccerv1/rf-weights-testing/internal/logger/console"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/storage"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	debugLog    bool
	jsonLog     bool
	configPath  string
	dataPath    string
	fillMissing bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "rfw",
	Short: "Weight and visualize project/dev-tool relationships",
	Long: `rfw ranks projects and developer tools from a relationship table, blends
four activity metrics into one edge weight per relationship, and emits a
bipartite flow graph for Sankey rendering.

Data is read from CSV (or a JSONL export) with an optional SQLite snapshot
for fast reloads. All commands output JSON by default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug: debugLog,
			JSON:  jsonLog,
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./rfw.yml, then $XDG_CONFIG_HOME/rfw/config.yml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "Relationship data file (.csv, .jsonl or .db); overrides data_path")
	rootCmd.PersistentFlags().BoolVar(&fillMissing, "fill-missing", false, "Read empty metric cells as 0 instead of rejecting the row")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(config.Resolve(configPath))
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// dataSource picks the file to load. An explicit --data wins. Otherwise the
// SQLite snapshot is used when it was built from data_path and is at least
// as new as it.
func dataSource(cfg *config.Config) string {
	if dataPath != "" {
		return config.ExpandPath(dataPath)
	}
	if snapshotCurrent(cfg.CachePath, cfg.DataPath) {
		return cfg.CachePath
	}
	return cfg.DataPath
}

// snapshotCurrent reports whether the snapshot at cachePath was rebuilt from
// dataPath and the source has not changed since.
func snapshotCurrent(cachePath, dataPath string) bool {
	cache, err := os.Stat(cachePath)
	if err != nil {
		return false
	}
	src, err := os.Stat(dataPath)
	if err == nil && cache.ModTime().Before(src.ModTime()) {
		return false
	}

	db, err := storage.OpenDB(cachePath)
	if err != nil {
		logger.Debug("Ignoring unreadable snapshot", "path", cachePath, "err", err)
		return false
	}
	defer db.Close()

	info, err := db.Info()
	if err != nil || info == nil {
		return false
	}
	if absPath(info.Source) != absPath(dataPath) {
		logger.Debug("Ignoring snapshot built from another source", "snapshot_source", info.Source, "data_path", dataPath)
		return false
	}
	return true
}

// absPath cleans path to an absolute form for comparison.
func absPath(path string) string {
	abs, err := filepath.Abs(config.ExpandPath(path))
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// mustLoadTable reads the relationship table, exits on error.
func mustLoadTable(cfg *config.Config) *relationship.Table {
	path := dataSource(cfg)
	table, err := storage.LoadTable(path, storage.ReadOptions{FillMissing: fillMissing})
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitConfigError, "data file not found: %s\n\nSet data_path in rfw.yml or pass --data.", path)
		}
		exitWithError(ExitDataError, "loading %s: %v", filepath.Base(path), err)
	}
	logger.Debug("Loaded relationship table", "path", path, "records", table.Len())
	return table
}
