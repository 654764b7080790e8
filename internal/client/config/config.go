package config

import (
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/ozo/internal/filex"
)

// Config holds runtime settings for the ozo CLI.
//
// Units: OnlineCheckInterval and RequestTimeout are time.Duration values;
// a zero RequestTimeout disables the per-request deadline.
type Config struct {
	APIBaseURL          string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration

	StoreDriver string
	StorePath   string
	RedisAddr   string
	RedisPrefix string

	LogLevel  string
	LogFormat string
}

const (
	DefaultAPIBaseURL  = "http://localhost:8000/api/v1"
	DefaultRedisPrefix = "ozo:credentials:"
	storeFileName      = "session.db"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 30 * time.Second

	c.StoreDriver = "sqlite"
	c.StorePath = defaultStorePath()
	c.RedisAddr = "localhost:6379"
	c.RedisPrefix = DefaultRedisPrefix

	c.LogLevel = "info"
	c.LogFormat = "text"
}

func defaultStorePath() string {
	dir, err := filex.DataDir()
	if err != nil {
		return storeFileName
	}
	return filepath.Join(dir, storeFileName)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (including an optional .env file), a JSON file and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
