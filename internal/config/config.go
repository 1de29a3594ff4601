package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultTimezone = "Local"
	configPathEnv   = "NEWSEASE_CONFIG"
	storeDriverEnv  = "NEWSEASE_STORE_DRIVER"
	sqlitePathEnv   = "NEWSEASE_SQLITE_PATH"
	redisAddrEnv    = "NEWSEASE_REDIS_ADDR"
	logLevelEnv     = "NEWSEASE_LOG_LEVEL"
	timezoneEnv     = "NEWSEASE_TIMEZONE"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Store    StoreConfig    `yaml:"store"`
	Refresh  RefreshConfig  `yaml:"refresh"`
	Trending TrendingConfig `yaml:"trending"`
	Location LocationConfig `yaml:"location"`
	Timezone string         `yaml:"timezone"`
	Sites    []SiteConfig   `yaml:"sites"`

	location *time.Location `yaml:"-"`
}

// LoggingConfig selects log verbosity and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StoreConfig picks the key-value backend for preferences and caches.
type StoreConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlitePath"`
	RedisAddr  string `yaml:"redisAddr"`
	KeyPrefix  string `yaml:"keyPrefix"`
}

// RefreshConfig tunes fetch latency, cache lifetime and the fallback
// auto-refresh period used when preferences do not choose one.
type RefreshConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MockLatency time.Duration `yaml:"mockLatency"`
	CacheTTL    time.Duration `yaml:"cacheTTL"`
}

// TrendingConfig parameterises the topic score.
type TrendingConfig struct {
	TopicBaseline float64 `yaml:"topicBaseline"`
}

// LocationConfig describes the static location provider.
type LocationConfig struct {
	Status    string  `yaml:"status"`
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	City      string  `yaml:"city"`
	Country   string  `yaml:"country"`
}

// SiteConfig describes a single article source with its scanner strategy.
type SiteConfig struct {
	Name       string            `yaml:"name"`
	Scanner    string            `yaml:"scanner"`
	Categories []string          `yaml:"categories"`
	Options    map[string]string `yaml:"options"`
}

// Zone resolves the timezone used for calendar-day reading statistics.
func (c Config) Zone() *time.Location {
	if c.location != nil {
		return c.location
	}
	return time.Local
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	return LoadFile(os.Getenv(configPathEnv))
}

// LoadFile is Load with an explicit path; an empty path uses defaults only.
func LoadFile(path string) Config {
	cfg := Default()

	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()

	if len(cfg.Sites) == 0 {
		cfg.Sites = Default().Sites
	}

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(storeDriverEnv); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv(sqlitePathEnv); v != "" {
		c.Store.SQLitePath = v
	}
	if v := os.Getenv(redisAddrEnv); v != "" {
		c.Store.RedisAddr = v
	}
	if v := os.Getenv(logLevelEnv); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(timezoneEnv); v != "" {
		c.Timezone = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc = time.Local
	}
	c.location = loc
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Store.Driver != "" {
		base.Store.Driver = override.Store.Driver
	}
	if override.Store.SQLitePath != "" {
		base.Store.SQLitePath = override.Store.SQLitePath
	}
	if override.Store.RedisAddr != "" {
		base.Store.RedisAddr = override.Store.RedisAddr
	}
	if override.Store.KeyPrefix != "" {
		base.Store.KeyPrefix = override.Store.KeyPrefix
	}

	if override.Refresh.Interval > 0 {
		base.Refresh.Interval = override.Refresh.Interval
	}
	if override.Refresh.MockLatency > 0 {
		base.Refresh.MockLatency = override.Refresh.MockLatency
	}
	if override.Refresh.CacheTTL > 0 {
		base.Refresh.CacheTTL = override.Refresh.CacheTTL
	}

	if override.Trending.TopicBaseline > 0 {
		base.Trending.TopicBaseline = override.Trending.TopicBaseline
	}

	if override.Location.Status != "" {
		base.Location = override.Location
	}

	if override.Timezone != "" {
		base.Timezone = override.Timezone
	}

	if len(override.Sites) > 0 {
		base.Sites = override.Sites
	}

	return base
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Store: StoreConfig{
			Driver:     DriverSQLite,
			SQLitePath: "newsease.db",
			RedisAddr:  "localhost:6379",
			KeyPrefix:  "newsease:",
		},
		Refresh: RefreshConfig{
			Interval:    30 * time.Minute,
			MockLatency: 500 * time.Millisecond,
			CacheTTL:    30 * time.Minute,
		},
		Trending: TrendingConfig{TopicBaseline: 100},
		Location: LocationConfig{
			Status:    "authorized",
			Latitude:  37.7749,
			Longitude: -122.4194,
			City:      "San Francisco",
			Country:   "United States",
		},
		Timezone: defaultTimezone,
		Sites: []SiteConfig{
			{Name: "newsease-mock", Scanner: "mock"},
		},
	}
}
