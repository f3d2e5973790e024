// Package config loads service configuration from an optional YAML file
// with environment-variable overrides on top.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP struct {
		Port int `yaml:"port"`
	} `yaml:"http"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	MySQL struct {
		DSN             string        `yaml:"dsn"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	} `yaml:"mysql"`

	Redis struct {
		Addr     string `yaml:"addr"`
		PoolSize int    `yaml:"pool_size"`
	} `yaml:"redis"`

	// Cache.Backend selects the entity-cache implementation: "memory"
	// (per-process) or "redis" (shared across replicas).
	Cache struct {
		Backend string        `yaml:"backend"`
		TTL     time.Duration `yaml:"ttl"`
	} `yaml:"cache"`

	Peers struct {
		UserServiceURL      string `yaml:"user_service_url"`
		InventoryServiceURL string `yaml:"inventory_service_url"`
		ProductServiceURL   string `yaml:"product_service_url"`
	} `yaml:"peers"`

	Lookup struct {
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"lookup"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if cfg.Cache.Backend != CacheBackendMemory && cfg.Cache.Backend != CacheBackendRedis {
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v, ok := lookupInt("HTTP_PORT"); ok {
		cfg.HTTP.Port = v
	}
	if v, ok := os.LookupEnv("LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("MYSQL_DSN"); ok {
		cfg.MySQL.DSN = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		cfg.Redis.Addr = v
	}
	if v, ok := os.LookupEnv("CACHE_BACKEND"); ok {
		cfg.Cache.Backend = v
	}
	if v, ok := os.LookupEnv("USER_SERVICE_URL"); ok {
		cfg.Peers.UserServiceURL = v
	}
	if v, ok := os.LookupEnv("INVENTORY_SERVICE_URL"); ok {
		cfg.Peers.InventoryServiceURL = v
	}
	if v, ok := os.LookupEnv("PRODUCT_SERVICE_URL"); ok {
		cfg.Peers.ProductServiceURL = v
	}
	if v, ok := lookupDuration("LOOKUP_TIMEOUT"); ok {
		cfg.Lookup.Timeout = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.MySQL.MaxOpenConns == 0 {
		cfg.MySQL.MaxOpenConns = 50
	}
	if cfg.MySQL.MaxIdleConns == 0 {
		cfg.MySQL.MaxIdleConns = 25
	}
	if cfg.MySQL.ConnMaxLifetime == 0 {
		cfg.MySQL.ConnMaxLifetime = 5 * time.Minute
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = "localhost:6379"
	}
	if cfg.Redis.PoolSize == 0 {
		cfg.Redis.PoolSize = 100
	}
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = CacheBackendMemory
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 2 * time.Second
	}
}

func lookupInt(key string) (int, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func lookupDuration(key string) (time.Duration, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false
	}
	return d, true
}
