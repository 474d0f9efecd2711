package app

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/person-backend/internal/config"
	"github.com/yungbote/person-backend/internal/data/db"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// Clients holds the backend connections the configured stores need. Unused
// backends stay nil.
type Clients struct {
	Postgres *db.Service
	SQLite   *db.Service
	Redis    *goredis.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg *config.Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	// Postgres
	if cfg.UsesBackend(config.BackendPostgres) {
		pg, err := db.NewPostgresService(cfg, log)
		if err != nil {
			return out, fmt.Errorf("init postgres: %w", err)
		}
		if err := pg.AutoMigrateAll(); err != nil {
			_ = pg.Close()
			return out, fmt.Errorf("postgres automigrate: %w", err)
		}
		out.Postgres = pg
	}

	// SQLite
	if cfg.UsesBackend(config.BackendSQLite) {
		lite, err := db.NewSQLiteService(cfg, log)
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init sqlite: %w", err)
		}
		if err := lite.AutoMigrateAll(); err != nil {
			_ = lite.Close()
			out.Close()
			return Clients{}, fmt.Errorf("sqlite automigrate: %w", err)
		}
		out.SQLite = lite
	}

	// Redis
	if cfg.UsesBackend(config.BackendRedis) {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = rdb.Close()
			out.Close()
			return Clients{}, fmt.Errorf("init redis %s: %w", cfg.Redis.Addr, err)
		}
		log.Info("Connected to redis", "addr", cfg.Redis.Addr, "db", cfg.Redis.DB)
		out.Redis = rdb
	}

	return out, nil
}

func (c Clients) Close() {
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
	if c.SQLite != nil {
		_ = c.SQLite.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
