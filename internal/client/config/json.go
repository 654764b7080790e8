package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/ozo/internal/flagx"
	"github.com/dmitrijs2005/ozo/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations
// accept either strings like "3s" or integer nanoseconds.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	StoreDriver         string          `json:"store_driver"`
	StorePath           string          `json:"store_path"`
	RedisAddr           string          `json:"redis_addr"`
	RedisPrefix         string          `json:"redis_prefix"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
}

// parseJson overlays cfg with values from the JSON file named by -c or
// -config. Only keys present in the file are applied. Read or decode
// errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFile(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.StoreDriver, jc.StoreDriver)
	overlay(&cfg.StorePath, jc.StorePath)
	overlay(&cfg.RedisAddr, jc.RedisAddr)
	overlay(&cfg.RedisPrefix, jc.RedisPrefix)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)

	if jc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
