package config

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Cache     CacheConfig     `mapstructure:"cache" validate:"required"`
	Report    ReportConfig    `mapstructure:"report" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig defines HTTP server and logging settings.
type ServerConfig struct {
	Port               int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel           string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	RateLimitPerMinute int    `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// DatabaseConfig selects the SQL driver and connection.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
}

// CacheConfig selects the report cache backend.
type CacheConfig struct {
	Driver     string `mapstructure:"driver" validate:"required,oneof=memory badger none"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gt=0"`
	MaxEntries int    `mapstructure:"max_entries" validate:"gt=0"`
	BadgerPath string `mapstructure:"badger_path" validate:"required_if=Driver badger"`
}

// ReportConfig tunes report generation and its diagnostics.
type ReportConfig struct {
	SlowThresholdMS     int    `mapstructure:"slow_threshold_ms" validate:"gt=0"`
	QueryCountThreshold int    `mapstructure:"query_count_threshold" validate:"gt=0"`
	ParallelQueries     bool   `mapstructure:"parallel_queries"`
	DefaultWindowDays   int    `mapstructure:"default_window_days" validate:"gt=0"`
	WarmSchedule        string `mapstructure:"warm_schedule"`
}

// AuthConfig enables bearer-token authentication when JWTSecret is set.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
}

// TelemetryConfig controls trace export.
type TelemetryConfig struct {
	TraceStdout bool `mapstructure:"trace_stdout"`
}
