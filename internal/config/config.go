// Package config loads the optional TOML overlay for server settings;
// the command-line entry point layers explicit CLI flags on top of it.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds every setting the server needs to start: where to
// listen, which schema file to load, how many clients to admit at
// once, and whether to trace requests.
type Config struct {
	Host           string `toml:"host"`
	Port           int    `toml:"port"`
	SchemaFile     string `toml:"schema_file"`
	Verbose        bool   `toml:"verbose"`
	MaxConnections int    `toml:"max_connections"`
}

// Default returns the built-in fallback values, used for any field a
// config file or flag does not set.
func Default() Config {
	return Config{
		Host:           "localhost",
		Port:           0,
		SchemaFile:     "default.txt",
		Verbose:        false,
		MaxConnections: 4,
	}
}

// Load reads a TOML config file from path and overlays it on top of
// Default. Fields absent from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	return cfg, nil
}

// LoadOptional behaves like Load, but returns Default with no error
// when path is empty — the config file is optional, per the CLI
// contract that works with no flags at all.
func LoadOptional(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); err != nil {
		return Config{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return Load(path)
}
