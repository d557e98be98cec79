// Package config holds harness configuration: the fixture and output
// folders, the capture target, and the browser time budgets.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultTarget is the hard-coded fallback when no target fixture is
// configured anywhere.
const DefaultTarget = "demo1.html"

// Config holds all vizsnap configuration.
type Config struct {
	// Fixtures is the flat folder of self-contained demo fixture files.
	Fixtures string `yaml:"fixtures"`

	// Output is the artifact root; fixture X.html maps to Output/X/.
	Output string `yaml:"output"`

	// Target names the fixture captured when none is given on the
	// command line.
	Target string `yaml:"target"`

	Browser BrowserConfig `yaml:"browser"`
	History HistoryConfig `yaml:"history"`
}

// BrowserConfig configures the capture session's browser.
type BrowserConfig struct {
	Headless       bool `yaml:"headless"`
	ViewportWidth  int  `yaml:"viewport_width"`
	ViewportHeight int  `yaml:"viewport_height"`

	// Durations are strings ("15s") so the YAML stays hand-editable.
	DefaultTimeout    string `yaml:"default_timeout"`
	NavigationTimeout string `yaml:"navigation_timeout"`
	ScreenshotTimeout string `yaml:"screenshot_timeout"`
	SettleDelay       string `yaml:"settle_delay"`
}

// HistoryConfig configures the advisory capture-run ledger.
type HistoryConfig struct {
	Enabled      bool   `yaml:"enabled"`
	DatabasePath string `yaml:"database_path"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Fixtures: "fixtures",
		Output:   "output",
		Target:   DefaultTarget,

		Browser: BrowserConfig{
			Headless:          true,
			ViewportWidth:     1920,
			ViewportHeight:    1080,
			DefaultTimeout:    "10s",
			NavigationTimeout: "15s",
			ScreenshotTimeout: "8s",
			SettleDelay:       "1s",
		},

		History: HistoryConfig{
			Enabled:      true,
			DatabasePath: filepath.Join("data", "vizsnap.db"),
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("VIZSNAP_FIXTURES"); v != "" {
		c.Fixtures = v
	}
	if v := os.Getenv("VIZSNAP_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("VIZSNAP_TARGET"); v != "" {
		c.Target = v
	}
	if v := os.Getenv("VIZSNAP_DB"); v != "" {
		c.History.DatabasePath = v
	}
}

// GetDefaultTimeout returns the default page-operation timeout.
func (b BrowserConfig) GetDefaultTimeout() time.Duration {
	d, err := time.ParseDuration(b.DefaultTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetNavigationTimeout returns the navigation ceiling.
func (b BrowserConfig) GetNavigationTimeout() time.Duration {
	d, err := time.ParseDuration(b.NavigationTimeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// GetScreenshotTimeout returns the screenshot ceiling.
func (b BrowserConfig) GetScreenshotTimeout() time.Duration {
	d, err := time.ParseDuration(b.ScreenshotTimeout)
	if err != nil {
		return 8 * time.Second
	}
	return d
}

// GetSettleDelay returns the post-load settle delay.
func (b BrowserConfig) GetSettleDelay() time.Duration {
	d, err := time.ParseDuration(b.SettleDelay)
	if err != nil {
		return time.Second
	}
	return d
}
