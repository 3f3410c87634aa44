// pkg/core/config.go
package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const appDirName = "barrel"

// Default catalog endpoints published by Homebrew
const (
	DefaultFormulaURL = "https://formulae.brew.sh/api/formula.json"
	DefaultCaskURL    = "https://formulae.brew.sh/api/cask.json"
)

// DefaultBrewPaths are the locations probed for the brew executable, in order
var DefaultBrewPaths = []string{
	"/usr/local/bin/brew",
	"/opt/homebrew/bin/brew",
	"/home/linuxbrew/.linuxbrew/bin/brew",
}

// Config holds barrel configuration
type Config struct {
	BrewPaths    []string      `yaml:"brew_paths"`
	FormulaURL   string        `yaml:"formula_url"`
	CaskURL      string        `yaml:"cask_url"`
	DatabasePath string        `yaml:"database_path"`
	HTTPTimeout  time.Duration `yaml:"http_timeout"`
	Debug        bool          `yaml:"debug"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		BrewPaths:    append([]string(nil), DefaultBrewPaths...),
		FormulaURL:   DefaultFormulaURL,
		CaskURL:      DefaultCaskURL,
		DatabasePath: getDefaultDatabasePath(),
		HTTPTimeout:  2 * time.Minute,
	}
	applyEnv(cfg)
	return cfg
}

// DefaultConfigPath is where LoadConfig looks when no path is given
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appDirName, "config.yaml")
}

// LoadConfig loads configuration from file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.fillDefaults()
	applyEnv(&cfg)

	return &cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigPath()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// fillDefaults sets every zero field of a loaded config
func (c *Config) fillDefaults() {
	if len(c.BrewPaths) == 0 {
		c.BrewPaths = append([]string(nil), DefaultBrewPaths...)
	}
	if c.FormulaURL == "" {
		c.FormulaURL = DefaultFormulaURL
	}
	if c.CaskURL == "" {
		c.CaskURL = DefaultCaskURL
	}
	if c.DatabasePath == "" {
		c.DatabasePath = getDefaultDatabasePath()
	}
	if c.HTTPTimeout == 0 {
		c.HTTPTimeout = 2 * time.Minute
	}
}

// applyEnv lets BARREL_BREW_PATH and BARREL_DATABASE override the file
func applyEnv(c *Config) {
	if path := os.Getenv("BARREL_BREW_PATH"); path != "" {
		c.BrewPaths = append([]string{path}, c.BrewPaths...)
	}
	if path := os.Getenv("BARREL_DATABASE"); path != "" {
		c.DatabasePath = path
	}
}

func getDefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, appDirName, "inventory.db")
}
