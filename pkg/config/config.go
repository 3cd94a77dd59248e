// Package config loads the proxy configuration from defaults, an optional
// YAML file and environment variables, in that order of precedence.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Sternrassler/game-likes-proxy/pkg/cache"
	"github.com/Sternrassler/game-likes-proxy/pkg/catalog"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvPort            = "PORT"
	EnvListenAddr      = "LISTEN_ADDR"
	EnvCacheTTLSeconds = "CACHE_TTL_SECONDS"
	EnvCacheCapacity   = "CACHE_CAPACITY"
	EnvUpstreamURL     = "UPSTREAM_URL"
	EnvUpstreamTimeout = "UPSTREAM_TIMEOUT"
	EnvUserAgent       = "USER_AGENT"
	EnvLogLevel        = "LOG_LEVEL"
	EnvLogPretty       = "LOG_PRETTY"
)

// Config holds all proxy configuration.
type Config struct {
	Listen   ListenConfig   `yaml:"listen"`
	Cache    CacheConfig    `yaml:"cache"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Log      LogConfig      `yaml:"log"`
}

// ListenConfig controls the HTTP listener.
type ListenConfig struct {
	Addr string `yaml:"addr"`
	Port int    `yaml:"port"`
}

// CacheConfig controls the lookup cache.
type CacheConfig struct {
	TTL      time.Duration `yaml:"ttl"`
	Capacity int           `yaml:"capacity"`
}

// UpstreamConfig defines the catalog API.
type UpstreamConfig struct {
	URL       string        `yaml:"url"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Listen: ListenConfig{
			Addr: "0.0.0.0",
			Port: 5000,
		},
		Cache: CacheConfig{
			TTL:      cache.DefaultTTL,
			Capacity: cache.DefaultCapacity,
		},
		Upstream: UpstreamConfig{
			URL:       catalog.DefaultBaseURL,
			Timeout:   catalog.DefaultTimeout,
			UserAgent: "game-likes-proxy/1.0",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults and expands environment variables.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables that are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvListenAddr); v != "" {
		c.Listen.Addr = v
	}
	if v := getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvPort, err)
		}
		c.Listen.Port = port
	}
	if v := getenv(EnvCacheTTLSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvCacheTTLSeconds, err)
		}
		c.Cache.TTL = time.Duration(seconds) * time.Second
	}
	if v := getenv(EnvCacheCapacity); v != "" {
		capacity, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvCacheCapacity, err)
		}
		c.Cache.Capacity = capacity
	}
	if v := getenv(EnvUpstreamURL); v != "" {
		c.Upstream.URL = v
	}
	if v := getenv(EnvUpstreamTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvUpstreamTimeout, err)
		}
		c.Upstream.Timeout = timeout
	}
	if v := getenv(EnvUserAgent); v != "" {
		c.Upstream.UserAgent = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvLogPretty); v != "" {
		pretty, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvLogPretty, err)
		}
		c.Log.Pretty = pretty
	}
	return nil
}

// Validate checks the configuration for values the proxy cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.Listen.Port < 1 || c.Listen.Port > 65535 {
		problems = append(problems, fmt.Sprintf("listen.port must be 1-65535 (got %d)", c.Listen.Port))
	}
	if c.Cache.TTL <= 0 {
		problems = append(problems, fmt.Sprintf("cache.ttl must be > 0 (got %s)", c.Cache.TTL))
	}
	if c.Cache.Capacity <= 0 {
		problems = append(problems, fmt.Sprintf("cache.capacity must be > 0 (got %d)", c.Cache.Capacity))
	}
	if c.Upstream.URL == "" {
		problems = append(problems, "upstream.url is required")
	}
	if c.Upstream.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("upstream.timeout must be > 0 (got %s)", c.Upstream.Timeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Address returns the host:port the server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.Listen.Addr, strconv.Itoa(c.Listen.Port))
}

// CacheManagerConfig converts the cache section for cache.NewManager.
func (c *Config) CacheManagerConfig() cache.Config {
	return cache.Config{
		TTL:      c.Cache.TTL,
		Capacity: c.Cache.Capacity,
	}
}

// CatalogConfig converts the upstream section for catalog.New.
func (c *Config) CatalogConfig() catalog.Config {
	return catalog.Config{
		BaseURL:   c.Upstream.URL,
		Timeout:   c.Upstream.Timeout,
		UserAgent: c.Upstream.UserAgent,
	}
}
