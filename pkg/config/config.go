// Package config handles the application configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the main configuration for feelio.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Export   ExportConfig   `toml:"export"`
	Weather  WeatherConfig  `toml:"weather"`
	Log      LogConfig      `toml:"log"`
}

// DatabaseConfig holds settings for the SQLite database.
type DatabaseConfig struct {
	Path string `toml:"path"`
	WAL  bool   `toml:"wal"`
	Sync string `toml:"sync"` // synchronous pragma: OFF, NORMAL, FULL, EXTRA
}

// ExportConfig holds settings for journal exports.
type ExportConfig struct {
	Dir string `toml:"dir"`
}

// WeatherConfig holds settings for the weather snapshot lookup. An empty
// APIKey disables weather capture entirely.
type WeatherConfig struct {
	APIKey string `toml:"api_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Dir string `toml:"dir"` // empty means stderr only
}

// Default returns a Config with sensible defaults rooted at baseDir.
func Default(baseDir string) *Config {
	return &Config{
		Database: DatabaseConfig{
			Path: filepath.Join(baseDir, "feelio.db"),
			WAL:  true,
			Sync: "NORMAL",
		},
		Export: ExportConfig{
			Dir: filepath.Join(baseDir, "exports"),
		},
		Log: LogConfig{
			Dir: filepath.Join(baseDir, "logs"),
		},
	}
}

// Load reads the configuration from path. A missing file is not an error:
// the defaults rooted at the file's directory are returned instead.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(filepath.Dir(path)), nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default(filepath.Dir(path))
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating parent directories as
// needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file '%s': %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
