// Package config loads archmap settings from a TOML file.
//
// The file tunes layout geometry, selects the position store backend, and
// configures the HTTP server. Every field has a working default; a missing
// config file is not an error. Command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/archmap-dev/archmap/pkg/layout"
)

// Store backend names accepted in the config file and --store flag.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendNull   = "null"
)

// Config is the root configuration.
type Config struct {
	Layout layout.Options `toml:"layout"`
	Store  StoreConfig    `toml:"store"`
	Server ServerConfig   `toml:"server"`
}

// StoreConfig selects and configures the position store backend.
type StoreConfig struct {
	Backend string      `toml:"backend"` // memory, file, redis, mongo, null
	Dir     string      `toml:"dir"`     // file backend root (default: config dir)
	Redis   RedisConfig `toml:"redis"`
	Mongo   MongoConfig `toml:"mongo"`
}

// RedisConfig holds Redis backend settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig holds MongoDB backend settings.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Default returns the built-in configuration: file-backed positions under
// the user config directory and the standard layout geometry.
func Default() Config {
	return Config{
		Layout: layout.DefaultOptions(),
		Store: StoreConfig{
			Backend: BackendFile,
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo:   MongoConfig{URI: "mongodb://localhost:27017"},
		},
		Server: ServerConfig{Addr: ":8080"},
	}
}

// DefaultPath returns the standard config file location
// (<user config dir>/archmap/config.toml).
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "archmap", "config.toml"), nil
}

// DefaultStoreDir returns the standard file-store directory
// (<user config dir>/archmap/positions).
func DefaultStoreDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, "archmap", "positions"), nil
}

// Load reads a config file, layering it over the defaults. A missing file
// at the default location yields the defaults; a missing file at an
// explicitly given path is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks backend names and value ranges.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case "", BackendMemory, BackendFile, BackendRedis, BackendMongo, BackendNull:
	default:
		return fmt.Errorf("invalid store backend: %q (must be one of: memory, file, redis, mongo, null)", c.Store.Backend)
	}
	if c.Layout.TierHeight < 0 || c.Layout.NodeGap < 0 || c.Layout.ClusterGap < 0 || c.Layout.Margin < 0 {
		return fmt.Errorf("layout distances must not be negative")
	}
	return nil
}
