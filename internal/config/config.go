package config

import "time"

type Duration struct {
	Duration time.Duration
}

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
)

type HTTPConfig struct {
	Addr              string   `yaml:"addr"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout"`
	IdleTimeout       Duration `yaml:"idle_timeout"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes"`

	CORSOrigins []string `yaml:"cors_origins"`

	// Per client IP. RateLimitRPS <= 0 disables limiting.
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

type StoresConfig struct {
	Person       string `yaml:"person"`
	PersonRecord string `yaml:"person_record"`
}

type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr      string `yaml:"addr"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type ObservabilityConfig struct {
	MetricsEnabled bool    `yaml:"metrics_enabled"`
	OTelEnabled    bool    `yaml:"otel_enabled"`
	ServiceName    string  `yaml:"service_name"`
	SampleRatio    float64 `yaml:"sample_ratio"`
}

type Config struct {
	Env           string              `yaml:"env"`
	SeedData      bool                `yaml:"seed_data"`
	HTTP          HTTPConfig          `yaml:"http"`
	Stores        StoresConfig        `yaml:"stores"`
	Postgres      PostgresConfig      `yaml:"postgres"`
	SQLite        SQLiteConfig        `yaml:"sqlite"`
	Redis         RedisConfig         `yaml:"redis"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// UsesBackend reports whether either store is configured for backend.
func (c *Config) UsesBackend(backend string) bool {
	return c.Stores.Person == backend || c.Stores.PersonRecord == backend
}
