package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RandomSourceType selects the randomness provider
type RandomSourceType string

const (
	RandomSourceRandomOrg RandomSourceType = "random.org"
	RandomSourceLocal     RandomSourceType = "local"
)

// Config holds all application configuration
type Config struct {
	Cache   CacheConfig   `mapstructure:"cache"`
	Store   StoreConfig   `mapstructure:"store"`
	Random  RandomConfig  `mapstructure:"random"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CacheConfig holds book cache configuration
type CacheConfig struct {
	TTLSeconds int `mapstructure:"ttl_seconds"` // Freshness window; <= 0 disables caching
	Capacity   int `mapstructure:"capacity"`    // 0 = unbounded
}

// StoreConfig holds book store configuration
type StoreConfig struct {
	Path string `mapstructure:"path"` // BoltDB file; empty = memory only
}

// RandomConfig holds randomness provider configuration
type RandomConfig struct {
	Source  RandomSourceType `mapstructure:"source"`
	URL     string           `mapstructure:"url"`
	Timeout time.Duration    `mapstructure:"timeout"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Listen string `mapstructure:"listen"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"` // Empty = stderr
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Cache: CacheConfig{
			TTLSeconds: 60,
			Capacity:   0,
		},
		Store: StoreConfig{
			Path: filepath.Join(defaultDataPath(), "shelf.db"),
		},
		Random: RandomConfig{
			Source:  RandomSourceRandomOrg,
			URL:     "https://www.random.org/integers/",
			Timeout: 5 * time.Second,
		},
		Server: ServerConfig{
			Listen: ":8080",
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "shelf.log"),
			Level: "INFO",
		},
	}
}

// TTL returns the cache freshness window as a duration
func (c *Config) TTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "shelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "shelf")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "shelf")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "shelf")
	}
}

// ExpandPath replaces a leading ~ with the user's home directory
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// newViper returns a viper instance seeded with defaults and env bindings
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()

	v.SetDefault("cache.ttl_seconds", cfg.Cache.TTLSeconds)
	v.SetDefault("cache.capacity", cfg.Cache.Capacity)
	v.SetDefault("store.path", cfg.Store.Path)
	v.SetDefault("random.source", string(cfg.Random.Source))
	v.SetDefault("random.url", cfg.Random.URL)
	v.SetDefault("random.timeout", cfg.Random.Timeout)
	v.SetDefault("server.listen", cfg.Server.Listen)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)

	// Environment variable overrides: SHELF_CACHE_TTL_SECONDS, SHELF_STORE_PATH, ...
	v.SetEnvPrefix("SHELF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Plain TTL is kept for compatibility with older deployments
	v.BindEnv("cache.ttl_seconds", "SHELF_CACHE_TTL_SECONDS", "TTL")

	return v
}

// LoadConfig loads configuration from file and environment.
// An explicit path must exist; otherwise config.yaml is searched in the
// default config directory and the working directory, and may be absent.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	switch c.Random.Source {
	case RandomSourceRandomOrg, RandomSourceLocal:
	default:
		return fmt.Errorf("unknown random source: %s", c.Random.Source)
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache capacity must not be negative, got %d", c.Cache.Capacity)
	}
	return nil
}

// SaveConfig writes cfg as YAML to path, or to the default config file when path is empty.
// Returns the path written.
func SaveConfig(cfg *Config, path string) (string, error) {
	if path == "" {
		path = filepath.Join(defaultConfigPath(), "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("cache.ttl_seconds", cfg.Cache.TTLSeconds)
	v.Set("cache.capacity", cfg.Cache.Capacity)
	v.Set("store.path", cfg.Store.Path)
	v.Set("random.source", string(cfg.Random.Source))
	v.Set("random.url", cfg.Random.URL)
	v.Set("random.timeout", cfg.Random.Timeout.String())
	v.Set("server.listen", cfg.Server.Listen)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
