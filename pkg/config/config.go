// Package config loads edgecross settings from a TOML file.
//
// Every section is optional. Missing values keep their [Default]:
//
//	[metric]
//	strategy = "auto"        # auto | naive | sweep
//	strict = false
//	max_naive_edges = 20000
//
//	[cache]
//	backend = "file"         # none | file | memory | redis
//	dir = "~/.cache/edgecross"
//	memory_mb = 64
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	backend = "memory"       # none | memory | mongo
//	mongo_uri = "mongodb://localhost:27017"
//	database = "edgecross"
//	collection = "results"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	file = ""                # empty disables the log file
//	max_size_mb = 10
//	max_backups = 3
//
// Relative paths are resolved against the directory of the config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/errors"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheFile   = "file"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

// Store backends.
const (
	StoreNone   = "none"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the full configuration.
type Config struct {
	Metric MetricConfig `toml:"metric"`
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

// MetricConfig holds counting options.
type MetricConfig struct {
	Strategy      string `toml:"strategy"`
	Strict        bool   `toml:"strict"`
	MaxNaiveEdges int    `toml:"max_naive_edges"`
}

// Options converts the section into counting options.
func (m MetricConfig) Options() (crossings.Options, error) {
	s, err := crossings.ParseStrategy(m.Strategy)
	if err != nil {
		return crossings.Options{}, errors.Wrap(errors.ErrCodeInvalidStrategy, err, "metric.strategy")
	}
	return crossings.Options{Strategy: s, Strict: m.Strict, MaxNaiveEdges: m.MaxNaiveEdges}, nil
}

// CacheConfig selects and configures the result cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir"`
	MemoryMB  int           `toml:"memory_mb"`
	RedisAddr string        `toml:"redis_addr"`
	TTL       time.Duration `toml:"ttl"`
}

// StoreConfig selects and configures the result store.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	MongoURI   string `toml:"mongo_uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig configures the optional rotating log file.
type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Metric: MetricConfig{Strategy: string(crossings.StrategyAuto), MaxNaiveEdges: 20000},
		Cache: CacheConfig{
			Backend:   CacheFile,
			Dir:       DefaultCacheDir(),
			MemoryMB:  64,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			MongoURI:   "mongodb://localhost:27017",
			Database:   "edgecross",
			Collection: "results",
		},
		Server: ServerConfig{Addr: ":8080"},
		Log:    LogConfig{MaxSizeMB: 10, MaxBackups: 3},
	}
}

// DefaultCacheDir returns the per-user cache directory.
func DefaultCacheDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "edgecross")
	}
	return filepath.Join(os.TempDir(), "edgecross-cache")
}

// Load reads path over the defaults and validates the result.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	c.Cache.Dir = resolve(c.Cache.Dir, base)
	c.Log.File = resolve(c.Log.File, base)
}

func resolve(path, base string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks that every section holds usable values.
func (c *Config) Validate() error {
	if _, err := c.Metric.Options(); err != nil {
		return err
	}
	if c.Metric.MaxNaiveEdges < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "metric.max_naive_edges must not be negative")
	}

	switch c.Cache.Backend {
	case CacheNone:
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case CacheMemory:
		if c.Cache.MemoryMB <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.memory_mb must be positive")
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend %q (must be one of: none, file, memory, redis)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	switch c.Store.Backend {
	case StoreNone, StoreMemory:
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "store.backend %q (must be one of: none, memory, mongo)", c.Store.Backend)
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "log sizes must not be negative")
	}
	return nil
}

// String renders the configuration as TOML.
func (c *Config) String() string {
	var b strings.Builder
	if err := toml.NewEncoder(&b).Encode(c); err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return b.String()
}
