package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/person-backend/internal/platform/envutil"
)

// UnmarshalYAML accepts "5s" style strings or integer nanoseconds.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	s := strings.TrimSpace(value.Value)
	if s == "" || s == "null" || s == "~" {
		d.Duration = 0
		return nil
	}
	if value.ShortTag() == "!!int" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		d.Duration = time.Duration(n)
		return nil
	}
	dd, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("duration must be a string like \"5s\" or an int nanoseconds: %w", err)
	}
	d.Duration = dd
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Env:      "development",
		SeedData: true,
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{Duration: 5 * time.Second},
			IdleTimeout:       Duration{Duration: 2 * time.Minute},
			ShutdownTimeout:   Duration{Duration: 15 * time.Second},
			MaxRequestBytes:   1 << 20,
			CORSOrigins:       []string{"*"},
			RateLimitRPS:      50,
			RateLimitBurst:    100,
		},
		Stores: StoresConfig{
			Person:       BackendMemory,
			PersonRecord: BackendMemory,
		},
		Postgres: PostgresConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "persons",
			SSLMode: "disable",
		},
		SQLite: SQLiteConfig{Path: "persons.db"},
		Redis: RedisConfig{
			Addr:      "localhost:6379",
			KeyPrefix: "person-api",
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: true,
			ServiceName:    "person-backend",
			SampleRatio:    1,
		},
	}
}

// Load reads defaults, then the YAML file (PERSON_API_CONFIG_PATH or
// ./config/config.yaml when present), then environment overrides.
func Load() (*Config, error) {
	cfg := defaultConfig()

	cfgPath := strings.TrimSpace(os.Getenv("PERSON_API_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		b, err := os.ReadFile(cfgPath)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", cfgPath, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Env = envutil.String("LOG_MODE", cfg.Env)
	cfg.SeedData = envutil.Bool("SEED_DATA", cfg.SeedData)

	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	cfg.HTTP.ShutdownTimeout.Duration = envutil.Duration("HTTP_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Duration)
	cfg.HTTP.RateLimitRPS = envutil.Float("RATE_LIMIT_RPS", cfg.HTTP.RateLimitRPS)
	cfg.HTTP.RateLimitBurst = envutil.Int("RATE_LIMIT_BURST", cfg.HTTP.RateLimitBurst)
	if v := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); v != "" {
		cfg.HTTP.CORSOrigins = splitCSV(v)
	}

	cfg.Stores.Person = envutil.String("PERSON_STORE", cfg.Stores.Person)
	cfg.Stores.PersonRecord = envutil.String("PERSON_RECORD_STORE", cfg.Stores.PersonRecord)

	cfg.Postgres.Host = envutil.String("POSTGRES_HOST", cfg.Postgres.Host)
	cfg.Postgres.Port = envutil.String("POSTGRES_PORT", cfg.Postgres.Port)
	cfg.Postgres.User = envutil.String("POSTGRES_USER", cfg.Postgres.User)
	cfg.Postgres.Password = envutil.String("POSTGRES_PASSWORD", cfg.Postgres.Password)
	cfg.Postgres.Name = envutil.String("POSTGRES_NAME", cfg.Postgres.Name)
	cfg.Postgres.SSLMode = envutil.String("POSTGRES_SSLMODE", cfg.Postgres.SSLMode)

	cfg.SQLite.Path = envutil.String("SQLITE_PATH", cfg.SQLite.Path)

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)

	cfg.Observability.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.Observability.MetricsEnabled)
	cfg.Observability.OTelEnabled = envutil.Bool("OTEL_ENABLED", cfg.Observability.OTelEnabled)
	cfg.Observability.ServiceName = envutil.String("OTEL_SERVICE_NAME", cfg.Observability.ServiceName)
}

func (c *Config) normalize() error {
	if strings.TrimSpace(c.Env) == "" {
		c.Env = "development"
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.HTTP.MaxRequestBytes <= 0 {
		c.HTTP.MaxRequestBytes = 1 << 20
	}
	if c.HTTP.ShutdownTimeout.Duration <= 0 {
		c.HTTP.ShutdownTimeout = Duration{Duration: 15 * time.Second}
	}
	if c.HTTP.RateLimitRPS > 0 && c.HTTP.RateLimitBurst <= 0 {
		c.HTTP.RateLimitBurst = int(c.HTTP.RateLimitRPS)
		if c.HTTP.RateLimitBurst < 1 {
			c.HTTP.RateLimitBurst = 1
		}
	}

	c.Stores.Person = strings.ToLower(strings.TrimSpace(c.Stores.Person))
	c.Stores.PersonRecord = strings.ToLower(strings.TrimSpace(c.Stores.PersonRecord))
	switch c.Stores.Person {
	case BackendMemory, BackendPostgres, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("stores.person: unknown backend %q", c.Stores.Person)
	}
	switch c.Stores.PersonRecord {
	case BackendMemory, BackendPostgres, BackendSQLite:
	case BackendRedis:
		return errors.New("stores.person_record: redis backend is not supported")
	default:
		return fmt.Errorf("stores.person_record: unknown backend %q", c.Stores.PersonRecord)
	}

	if c.UsesBackend(BackendSQLite) && strings.TrimSpace(c.SQLite.Path) == "" {
		return errors.New("sqlite.path is required for the sqlite backend")
	}
	if c.UsesBackend(BackendRedis) && strings.TrimSpace(c.Redis.Addr) == "" {
		return errors.New("redis.addr is required for the redis backend")
	}
	if c.Observability.SampleRatio <= 0 || c.Observability.SampleRatio > 1 {
		c.Observability.SampleRatio = 1
	}
	return nil
}

// PostgresDSN builds the connection string for gorm's postgres driver.
func (c *Config) PostgresDSN() string {
	p := c.Postgres
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, p.Port, p.Name, p.SSLMode)
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
