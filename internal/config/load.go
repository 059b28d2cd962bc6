package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable, e.g.
// TASKREPORT_DATABASE_URL for database.url.
const EnvPrefix = "TASKREPORT"

var defaults = map[string]any{
	"server.port":                  8080,
	"server.log_level":             "info",
	"server.rate_limit_per_minute": 60,
	"database.driver":              "postgres",
	"database.max_open_conns":      10,
	"cache.driver":                 "memory",
	"cache.ttl_seconds":            3600,
	"cache.max_entries":            256,
	"cache.badger_path":            "./data/cache",
	"report.slow_threshold_ms":     1000,
	"report.query_count_threshold": 100,
	"report.parallel_queries":      false,
	"report.default_window_days":   30,
	"report.warm_schedule":         "",
	"auth.jwt_secret":              "",
	"telemetry.trace_stdout":       false,
}

// keys without defaults still need an env binding to be unmarshalled
var envOnly = []string{"database.url"}

// Load reads configuration from config.yaml in the working directory or
// /etc/taskreport (if present) and the environment.
func Load() (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/taskreport")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFile reads configuration from the named file and the environment.
func LoadFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnly {
		_ = v.BindEnv(key)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
