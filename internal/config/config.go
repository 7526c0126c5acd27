// Package config provides the YAML settings file shared by the archviz tools.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	appDir     = "archviz"
	configFile = "config.yaml"
)

// Viewer configures the external 3D viewer side channel.
type Viewer struct {
	Enabled  bool          `yaml:"enabled"`
	Endpoint string        `yaml:"endpoint"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Render configures plot output.
type Render struct {
	LabelEvery int     `yaml:"label_every"`
	Width3D    float64 `yaml:"width_3d_in"`
	Height3D   float64 `yaml:"height_3d_in"`
	Width2D    float64 `yaml:"width_2d_in"`
	Height2D   float64 `yaml:"height_2d_in"`
}

// Publish configures artifact upload to S3-compatible storage.
type Publish struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Secure    bool   `yaml:"secure"`
}

// Config is the full settings document.
type Config struct {
	Viewer  Viewer  `yaml:"viewer"`
	Render  Render  `yaml:"render"`
	Publish Publish `yaml:"publish"`

	path string
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Viewer: Viewer{
			Enabled:  true,
			Endpoint: "http://localhost:8080/3d-data",
			Timeout:  time.Second,
		},
		Render: Render{
			LabelEvery: 5,
			Width3D:    14,
			Height3D:   10,
			Width2D:    12,
			Height2D:   10,
		},
	}
}

// DefaultPath returns ~/.config/archviz/config.yaml (or the platform equivalent).
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, appDir, configFile)
}

// Load reads the settings at path over the defaults. A missing file is not
// an error. An empty path selects DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	c := Default()
	c.path = path

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	if c.Viewer.Timeout < 0 {
		return fmt.Errorf("viewer timeout must not be negative")
	}
	if c.Render.LabelEvery < 0 {
		return fmt.Errorf("render label_every must not be negative")
	}
	if c.Publish.Enabled {
		if c.Publish.Endpoint == "" {
			return fmt.Errorf("publish endpoint is required")
		}
		if c.Publish.Bucket == "" {
			return fmt.Errorf("publish bucket is required")
		}
	}
	return nil
}

// Save writes the settings to path, creating the directory if needed.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	c.path = path
	return nil
}
