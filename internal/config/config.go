// Package config handles rfw configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in rfw.yml.
type Config struct {
	DataPath  string   `yaml:"data_path" validate:"required"`
	CachePath string   `yaml:"cache_path" validate:"required"`
	Server    Server   `yaml:"server"`
	Defaults  Defaults `yaml:"defaults"`
}

// Server configures the HTTP surface.
type Server struct {
	Addr string `yaml:"addr" validate:"required"`
	// RateLimit is the number of graph recomputations allowed per second.
	RateLimit float64 `yaml:"rate_limit" validate:"gt=0"`
	Burst     int     `yaml:"burst" validate:"gte=1"`
}

// Defaults holds the initial control values used by the CLI and HTTP surface.
type Defaults struct {
	TopProjects    int                `yaml:"top_projects" validate:"gte=5,lte=100"`
	TopTools       int                `yaml:"top_tools" validate:"gte=5,lte=50"`
	ProjectSummary string             `yaml:"project_summary" validate:"oneof=first mean"`
	Weights        map[string]float64 `yaml:"weights,omitempty" validate:"dive,gte=0,lte=1"`
}

const (
	// FileName is the project-local config file name.
	FileName = "rfw.yml"
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "rfw"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yml"

	DefaultDataPath  = "data/dev_tool_relationships.csv"
	DefaultCachePath = ".rfw/cache/relationships.db"
	DefaultAddr      = "127.0.0.1:8050"
)

// Environment variables that override file values.
const (
	EnvDataPath  = "RFW_DATA_PATH"
	EnvCachePath = "RFW_CACHE_PATH"
	EnvAddr      = "RFW_ADDR"
)

// ErrInvalidConfig is returned when a loaded config fails validation.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New()

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DataPath:  DefaultDataPath,
		CachePath: DefaultCachePath,
		Server: Server{
			Addr:      DefaultAddr,
			RateLimit: 5,
			Burst:     10,
		},
		Defaults: Defaults{
			TopProjects:    50,
			TopTools:       30,
			ProjectSummary: "first",
		},
	}
}

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/rfw/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// Resolve picks the config file to use. An explicit path always wins, then
// ./rfw.yml, then the global config. The returned path may not exist.
func Resolve(explicit string) string {
	if explicit != "" {
		return ExpandPath(explicit)
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if global := GlobalConfigPath(); global != "" {
		return global
	}
	return FileName
}

// Load reads configuration from path, layered over Default. A missing file
// is not an error. Environment overrides (including a .env file in the
// working directory) are applied last, then the result is validated.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	_ = godotenv.Load()
	cfg.applyEnv()

	cfg.DataPath = ExpandPath(cfg.DataPath)
	cfg.CachePath = ExpandPath(cfg.CachePath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads only the file layer over Default, without environment
// overrides or validation. Use it to edit and Save a config file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDataPath); v != "" {
		c.DataPath = v
	}
	if v := os.Getenv(EnvCachePath); v != "" {
		c.CachePath = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks field bounds.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s failed %s (got %v)", ErrInvalidConfig, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Save writes configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
