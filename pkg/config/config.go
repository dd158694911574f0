// Package config loads optional CLI defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults that command-line flags override.
type Config struct {
	Format       string `yaml:"format"`        // png or bmp
	KeyFile      string `yaml:"key_file"`      // used when no key flag is given
	NormalizeKey bool   `yaml:"normalize_key"` // NFC-normalise inline keys
	LogLevel     string `yaml:"log_level"`
	Serve        Serve  `yaml:"serve"`
}

// Serve configures the HTTP API.
type Serve struct {
	Port        int `yaml:"port"`
	MaxUploadMB int `yaml:"max_upload_mb"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Format:   "png",
		LogLevel: "info",
		Serve: Serve{
			Port:        8080,
			MaxUploadMB: 64,
		},
	}
}

// DefaultPath is $XDG_CONFIG_HOME/stegegg/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "stegegg", "config.yaml")
}

// Load reads path over the defaults. When path is empty, DefaultPath is
// tried and a missing file there is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) validate() error {
	switch c.Format {
	case "png", "bmp":
	default:
		return fmt.Errorf("format must be png or bmp, got %q", c.Format)
	}
	if c.Serve.Port <= 0 || c.Serve.Port > 65535 {
		return fmt.Errorf("serve.port out of range: %d", c.Serve.Port)
	}
	if c.Serve.MaxUploadMB <= 0 {
		return fmt.Errorf("serve.max_upload_mb must be positive")
	}
	return nil
}
