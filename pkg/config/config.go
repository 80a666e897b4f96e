// Package config loads kintree configuration from
// ~/.config/kintree/config.toml, falling back to defaults when the file is
// absent. Command-line flags override config values; the config file
// overrides the built-in defaults.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds kintree configuration.
type Config struct {
	Portal Portal `toml:"portal"`
	View   View   `toml:"view"`
	Render Render `toml:"render"`
	Cache  CacheC `toml:"cache"`
	Serve  Serve  `toml:"serve"`
}

// Portal configures the family-portal connection.
type Portal struct {
	URL string `toml:"url"`
}

// View configures default view-mode options.
type View struct {
	Device               string `toml:"device"` // "mobile", "tablet", "desktop"
	ShowAllGenerations   bool   `toml:"show_all_generations"`
	FocusLineage         bool   `toml:"focus_lineage"`
	ShowGenerationLabels bool   `toml:"show_generation_labels"`
}

// Render configures default render output.
type Render struct {
	Format string `toml:"format"` // "png", "pdf", "svg", "json"
}

// CacheC configures the cache backend.
type CacheC struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`   // empty uses ~/.cache/kintree
	Redis   string `toml:"redis"` // addr; empty uses the file cache
	RedisDB int    `toml:"redis_db"`
}

// Serve configures the HTTP serve mode.
type Serve struct {
	Addr  string `toml:"addr"`
	Mongo string `toml:"mongo"` // archive connection string
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: View{
			Device:               "desktop",
			ShowAllGenerations:   true,
			FocusLineage:         false,
			ShowGenerationLabels: true,
		},
		Render: Render{Format: "png"},
		Cache:  CacheC{Enabled: true},
		Serve:  Serve{Addr: ":8475"},
	}
}

// Dir returns the kintree config directory path.
func Dir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "kintree")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() *Config {
	return LoadFile(Path())
}

// LoadFile reads a specific config file, returning defaults on any error.
func LoadFile(path string) *Config {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	_ = toml.Unmarshal(data, cfg)
	return cfg
}

// Save writes the config to disk.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
