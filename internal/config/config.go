// Package config handles global configuration for wordsim.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/wordsim/config.yml.
type Config struct {
	EmbeddingsPath string `yaml:"embeddings_path,omitempty"` // Path to the embeddings text file
	CacheDir       string `yaml:"cache_dir,omitempty"`       // Override for the cache directory
	DefaultLimit   int    `yaml:"default_limit,omitempty"`   // Default number of neighbors to return
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "wordsim"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// CacheDBFile is the vector cache database file name.
	CacheDBFile = "vectors.db"

	// DefaultLimit is the neighbor count used when neither the config file
	// nor the command line sets one.
	DefaultLimit = 10

	// EnvEmbeddings overrides embeddings_path when set.
	EnvEmbeddings = "WORDSIM_EMBEDDINGS"
	// EnvCacheDir overrides cache_dir when set.
	EnvCacheDir = "WORDSIM_CACHE_DIR"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/wordsim/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load reads the global configuration file. Returns an empty config (not an
// error) if the file doesn't exist.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	path := Path()
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.EmbeddingsPath != "" {
		cfg.EmbeddingsPath = ExpandTilde(cfg.EmbeddingsPath)
	}
	if cfg.CacheDir != "" {
		cfg.CacheDir = ExpandTilde(cfg.CacheDir)
	}

	configCache = &cfg
	return &cfg, nil
}

// Save writes the configuration file, creating its directory if needed.
func (c *Config) Save() error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// EmbeddingsPath returns the configured embeddings file path. The
// WORDSIM_EMBEDDINGS environment variable takes precedence over the config
// file. Empty when unconfigured.
func EmbeddingsPath() string {
	if path := os.Getenv(EnvEmbeddings); path != "" {
		return ExpandTilde(path)
	}
	cfg, _ := Load()
	return cfg.EmbeddingsPath
}

// CacheDBPath returns the path to the vector cache database. The
// WORDSIM_CACHE_DIR environment variable takes precedence, then the config
// file, then $XDG_CACHE_HOME/wordsim (~/.cache/wordsim by default).
func CacheDBPath() string {
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		return filepath.Join(ExpandTilde(dir), CacheDBFile)
	}
	cfg, _ := Load()
	if cfg.CacheDir != "" {
		return filepath.Join(cfg.CacheDir, CacheDBFile)
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, ConfigDir, CacheDBFile)
}

// Limit returns the configured default neighbor count.
func Limit() int {
	cfg, _ := Load()
	if cfg.DefaultLimit > 0 {
		return cfg.DefaultLimit
	}
	return DefaultLimit
}

// ExpandTilde expands ~ to the user's home directory. Returns the original
// path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
