package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	EnvAPIURL         = "OZO_API_URL"
	EnvStoreDriver    = "OZO_STORE_DRIVER"
	EnvStorePath      = "OZO_STORE_PATH"
	EnvRedisAddr      = "OZO_REDIS_ADDR"
	EnvLogLevel       = "OZO_LOG_LEVEL"
	EnvLogFormat      = "OZO_LOG_FORMAT"
	EnvRequestTimeout = "OZO_REQUEST_TIMEOUT"
)

// dotenvFiles lists the files loaded into the process environment before
// the variables are read. Variables already set are not overridden.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with OZO_* environment variables. A missing .env
// file is ignored; a malformed one panics like the other loaders.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			panic(err)
		}
	}

	setString(&cfg.APIBaseURL, EnvAPIURL)
	setString(&cfg.StoreDriver, EnvStoreDriver)
	setString(&cfg.StorePath, EnvStorePath)
	setString(&cfg.RedisAddr, EnvRedisAddr)
	setString(&cfg.LogLevel, EnvLogLevel)
	setString(&cfg.LogFormat, EnvLogFormat)

	if v, ok := os.LookupEnv(EnvRequestTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
