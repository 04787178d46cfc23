package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the engine and server settings, loaded from YAML with
// sane defaults for everything.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`

	Game struct {
		// Seed is the master seed; every level derives its own from it.
		// Empty means "pick one at startup".
		Seed string `yaml:"seed"`

		// WinDepth is the level that ends the game in victory.
		WinDepth int `yaml:"winDepth"`
	} `yaml:"game"`

	Storage struct {
		// Driver is "sqlite" or "memory".
		Driver string `yaml:"driver"`
		Path   string `yaml:"path"`
	} `yaml:"storage"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	var cfg Config
	cfg.Server.Addr = ":8080"
	cfg.Game.WinDepth = 5
	cfg.Storage.Driver = "sqlite"
	cfg.Storage.Path = "roguelike.db"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// LoadConfig reads a YAML config file over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %q: %w", path, err)
	}
	return cfg, nil
}
