package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ccerv1/rf-weights-testing/internal/config"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  rfw config                                # Show all config
  rfw config data-path                      # Get specific value
  rfw config data-path ~/data/rel.csv       # Set value
  rfw config weight.total-gas-fees 0.5      # Set a default weight

Keys:
  data-path         Relationship data file (.csv, .jsonl or .db)
  cache-path        SQLite snapshot written by 'rfw rebuild'
  server-addr       Listen address for 'rfw serve'
  rate-limit        Graph recomputations per second allowed by the server
  burst             Burst size of the server rate limiter
  top-projects      Default number of top projects (5-100)
  top-tools         Default number of top dev tools (5-50)
  project-summary   Project hover metrics: first or mean
  weight.<metric>   Default weight in [0,1] for a metric key

Values are written to the resolved config file (--config, ./rfw.yml or the
global config).`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := config.Resolve(configPath)

	// No args: show the effective config
	if len(args) == 0 {
		cfg := mustLoadConfig()
		if humanOutput {
			for _, key := range configKeys(cfg) {
				v, _ := getConfigValue(cfg, key)
				outputHuman("%-32s %s\n", key+":", v)
			}
			return nil
		}
		return outputJSON(cfg)
	}

	key := normalizeKey(args[0])

	// One arg: get specific value
	if len(args) == 1 {
		cfg := mustLoadConfig()
		v, err := getConfigValue(cfg, key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			fmt.Println(v)
		} else {
			outputJSON(map[string]string{key: v})
		}
		return nil
	}

	// Two args: set value in the file layer only
	cfg, err := config.LoadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if err := setConfigValue(cfg, key, args[1]); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Validate(); err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Set %s = %s in %s\n", key, args[1], path)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: args[1], Path: path})
	}
	return nil
}

// scalarKeys lists the fixed config keys in display order.
var scalarKeys = []string{
	"data-path", "cache-path", "server-addr", "rate-limit", "burst",
	"top-projects", "top-tools", "project-summary",
}

func configKeys(cfg *config.Config) []string {
	keys := append([]string{}, scalarKeys...)
	var weights []string
	for k := range cfg.Defaults.Weights {
		weights = append(weights, "weight."+normalizeKey(k))
	}
	sort.Strings(weights)
	return append(keys, weights...)
}

func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "data-path":
		return cfg.DataPath, nil
	case "cache-path":
		return cfg.CachePath, nil
	case "server-addr":
		return cfg.Server.Addr, nil
	case "rate-limit":
		return strconv.FormatFloat(cfg.Server.RateLimit, 'g', -1, 64), nil
	case "burst":
		return strconv.Itoa(cfg.Server.Burst), nil
	case "top-projects":
		return strconv.Itoa(cfg.Defaults.TopProjects), nil
	case "top-tools":
		return strconv.Itoa(cfg.Defaults.TopTools), nil
	case "project-summary":
		return cfg.Defaults.ProjectSummary, nil
	}

	if m, ok := weightKey(key); ok {
		p, err := cfg.Defaults.Params()
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(p.Weights[m], 'g', -1, 64), nil
	}
	return "", fmt.Errorf("unknown configuration key: %s", key)
}

func setConfigValue(cfg *config.Config, key, value string) error {
	var err error
	switch key {
	case "data-path":
		cfg.DataPath = config.ExpandPath(value)
	case "cache-path":
		cfg.CachePath = config.ExpandPath(value)
	case "server-addr":
		cfg.Server.Addr = value
	case "rate-limit":
		cfg.Server.RateLimit, err = strconv.ParseFloat(value, 64)
	case "burst":
		cfg.Server.Burst, err = strconv.Atoi(value)
	case "top-projects":
		cfg.Defaults.TopProjects, err = strconv.Atoi(value)
	case "top-tools":
		cfg.Defaults.TopTools, err = strconv.Atoi(value)
	case "project-summary":
		cfg.Defaults.ProjectSummary = value
	default:
		m, ok := weightKey(key)
		if !ok {
			return fmt.Errorf("unknown configuration key: %s", key)
		}
		var w float64
		if w, err = strconv.ParseFloat(value, 64); err != nil {
			break
		}
		if cfg.Defaults.Weights == nil {
			cfg.Defaults.Weights = map[string]float64{}
		}
		cfg.Defaults.Weights[m.Key()] = w
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %q", key, value)
	}
	return nil
}

// weightKey resolves weight.<metric> keys.
func weightKey(key string) (relationship.Metric, bool) {
	name, ok := strings.CutPrefix(key, "weight.")
	if !ok {
		return "", false
	}
	m, err := relationship.ParseMetric(name)
	return m, err == nil
}

// normalizeKey converts key formats (data-path, data_path, DATA_PATH) to consistent format
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, "_", "-")
	return key
}
