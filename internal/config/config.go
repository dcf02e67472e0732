// Package config loads optional user configuration from
// ~/.config/cursorctl/config.yaml. Missing files are not an error; every
// field has a default and flags override whatever is loaded.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings.
type Config struct {
	// App is the target application process name.
	App string `yaml:"app"`
	// MonitorInterval is the window-change poll interval in seconds.
	MonitorInterval int `yaml:"monitor_interval"`
	// WatchInterval is the accessibility-tree watch interval in seconds.
	WatchInterval int `yaml:"watch_interval"`
	// OCRInterval is the screen-capture watch interval in seconds. OCR
	// passes are slower than tree dumps, so the default is longer.
	OCRInterval int `yaml:"ocr_interval"`
	// Option is the digit typed to answer a detected options menu.
	Option string `yaml:"option"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		App:             "Cursor",
		MonitorInterval: 1,
		WatchInterval:   2,
		OCRInterval:     3,
		Option:          "2",
	}
}

// Path returns the config file location.
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "cursorctl", "config.yaml"), nil
}

// Load reads the config file, applying defaults for absent fields. A missing
// file yields the defaults without error.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.App == "" {
		c.App = def.App
	}
	if c.MonitorInterval <= 0 {
		c.MonitorInterval = def.MonitorInterval
	}
	if c.WatchInterval <= 0 {
		c.WatchInterval = def.WatchInterval
	}
	if c.OCRInterval <= 0 {
		c.OCRInterval = def.OCRInterval
	}
	if c.Option == "" {
		c.Option = def.Option
	}
}
