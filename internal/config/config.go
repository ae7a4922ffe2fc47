// Package config loads tinkit settings from an optional YAML file and
// TINKIT_* environment variables, environment taking precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "TINKIT_"

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
	Metrics MetricsConfig `mapstructure:"metrics" yaml:"metrics"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

type ServerConfig struct {
	Port int `mapstructure:"port" yaml:"port"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type CacheConfig struct {
	Backend string        `mapstructure:"backend" yaml:"backend"`
	TTL     time.Duration `mapstructure:"ttl" yaml:"ttl"`
	Prefix  string        `mapstructure:"prefix" yaml:"prefix"`
	Redis   RedisConfig   `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Log:     LogConfig{Level: "info"},
		Server:  ServerConfig{Port: 8080},
		Metrics: MetricsConfig{Enabled: true},
		Cache: CacheConfig{
			Backend: CacheNone,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
	}
}

// envKeys lists the dotted keys that may be overridden from the environment.
// TINKIT_CACHE_REDIS_ADDR overrides cache.redis.addr, and so on.
var envKeys = []string{
	"log.level",
	"server.port",
	"metrics.enabled",
	"cache.backend",
	"cache.ttl",
	"cache.prefix",
	"cache.redis.addr",
	"cache.redis.password",
	"cache.redis.db",
}

// Load reads path (if non-empty) and applies environment overrides on top of Default.
// A missing file is an error only when path was given explicitly.
func Load(path string) (Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (Config, error) {
	raw := map[string]any{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
		if raw == nil {
			raw = map[string]any{}
		}
	}

	for _, key := range envKeys {
		name := EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if v, ok := lookup(name); ok {
			set(raw, strings.Split(key, "."), v)
		}
	}

	cfg := Default()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, cfg.Validate()
}

// set writes value at the nested path, creating intermediate maps.
func set(m map[string]any, path []string, value string) {
	for _, p := range path[:len(path)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	var errs []error
	switch c.Cache.Backend {
	case CacheNone, CacheMemory, CacheRedis:
	default:
		errs = append(errs, fmt.Errorf("cache.backend must be one of none, memory, redis (got %q)", c.Cache.Backend))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Cache.TTL < 0 {
		errs = append(errs, fmt.Errorf("cache.ttl must not be negative"))
	}
	return errors.Join(errs...)
}
