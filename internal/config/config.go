// Package config loads service settings from an optional TOML file and
// environment variables. Environment values win over the file.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Seed     SeedConfig     `toml:"seed"`
	Redis    RedisConfig    `toml:"redis"`
	Search   SearchConfig   `toml:"search"`
}

type ServerConfig struct {
	Port string `toml:"port"`
	// Sustained /packages requests per second; 0 disables limiting.
	RateLimit float64 `toml:"rate_limit"`
	RateBurst int     `toml:"rate_burst"`
}

type DatabaseConfig struct {
	// database/sql driver name: "sqlite" or "pgx".
	Driver string `toml:"driver"`
	DSN    string `toml:"dsn"`
}

type SeedConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

type RedisConfig struct {
	// Empty Addr keeps cached results in the catalog database.
	Addr            string `toml:"addr"`
	CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
}

type SearchConfig struct {
	Policy         string `toml:"policy"`
	BranchAndBound bool   `toml:"branch_and_bound"`
}

// Defaults returns a Config populated with built-in default values.
func Defaults() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080", RateLimit: 5, RateBurst: 10},
		Database: DatabaseConfig{Driver: "sqlite", DSN: "data/app.db"},
		Seed:     SeedConfig{Path: "data/seeds/catalog.json"},
		Redis:    RedisConfig{CacheTTLSeconds: 600},
		Search:   SearchConfig{Policy: "max", BranchAndBound: true},
	}
}

// Load reads a TOML config file, then applies environment overrides.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("load config: decode %q: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config: stat %q: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Server.Port = Get("PORT", c.Server.Port)
	c.Database.Driver = Get("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = Get("DATABASE_URL", Get("DB_PATH", c.Database.DSN))
	c.Seed.Path = Get("SEED_PATH", c.Seed.Path)
	c.Redis.Addr = Get("REDIS_ADDR", c.Redis.Addr)
	c.Search.Policy = Get("VALUE_POLICY", c.Search.Policy)

	var err error
	if c.Server.RateLimit, err = getFloat("RATE_LIMIT_RPS", c.Server.RateLimit); err != nil {
		return err
	}
	if c.Server.RateBurst, err = getInt("RATE_LIMIT_BURST", c.Server.RateBurst); err != nil {
		return err
	}
	if c.Redis.CacheTTLSeconds, err = getInt("CACHE_TTL_SECONDS", c.Redis.CacheTTLSeconds); err != nil {
		return err
	}
	if c.Seed.Watch, err = getBool("SEED_WATCH", c.Seed.Watch); err != nil {
		return err
	}
	if c.Search.BranchAndBound, err = getBool("BRANCH_AND_BOUND", c.Search.BranchAndBound); err != nil {
		return err
	}
	return nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Redis.CacheTTLSeconds) * time.Second
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s: %w", key, err)
	}
	return f, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("env %s: %w", key, err)
	}
	return b, nil
}

// LogSummary prints the effective settings without credentials.
func (c *Config) LogSummary() {
	dsn := c.Database.DSN
	if c.Database.Driver != "sqlite" {
		dsn = "<redacted>"
	}
	log.Printf(
		"config: port=%s driver=%s dsn=%s seed=%s watch=%t redis=%q policy=%s bnb=%t rate=%.1f/%d",
		c.Server.Port, c.Database.Driver, dsn, c.Seed.Path, c.Seed.Watch,
		c.Redis.Addr, c.Search.Policy, c.Search.BranchAndBound, c.Server.RateLimit, c.Server.RateBurst,
	)
}
