// Package config defines the fittrack CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fittrackhq/fittrack-go/internal/infra/confloader"
)

// Token store backends.
const (
	StoreFile   = "file"
	StoreBadger = "badger"
	StoreMemory = "memory"
)

// Config is the CLI configuration, loaded with priority
// flag > environment > file > default.
type Config struct {
	// Server is the fittrack API base URL.
	Server string `koanf:"server"`

	// Output is the default output format (table, json, yaml).
	Output string `koanf:"output"`

	// Store selects the token store backend (file, badger, memory).
	Store string `koanf:"store"`

	// DataDir holds the token store and REPL history.
	DataDir string `koanf:"datadir"`

	// CAFile is an optional PEM bundle for a privately-rooted server.
	CAFile string `koanf:"cafile"`

	// RateLimit caps outgoing requests per second; zero disables it.
	RateLimit float64 `koanf:"ratelimit"`

	Log LogConfig `koanf:"log"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server:  "http://localhost:3001/api",
		Output:  "table",
		Store:   StoreFile,
		DataDir: defaultDataDir(),
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// DefaultConfigPath returns the default config file location.
func DefaultConfigPath() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

func defaultDataDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".fittrack")
}

// Load reads configuration from the given file (or the default path),
// the environment, then applies non-empty flag overrides on top.
func Load(path string, flagOverrides map[string]any) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	loader := confloader.NewLoader(confloader.WithConfigFile(path))

	cfg := Default()
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	if len(flagOverrides) > 0 {
		if err := loader.LoadMap(flagOverrides); err != nil {
			return nil, err
		}
		if err := loader.Unmarshal(cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreFile, StoreBadger, StoreMemory:
	default:
		return fmt.Errorf("config: unknown store backend %q", c.Store)
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("config: unknown output format %q", c.Output)
	}
	if c.Server == "" {
		return fmt.Errorf("config: server must not be empty")
	}
	return nil
}
