package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/person-backend/internal/config"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// Service owns one gorm connection pool for a configured backend.
type Service struct {
	db      *gorm.DB
	backend string
	log     *logger.Logger
}

func gormConfig() *gorm.Config {
	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger:                                   gormLog,
	}
}

func NewPostgresService(cfg *config.Config, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "PostgresService")
	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}
	serviceLog.Info("Connected to postgres", "host", cfg.Postgres.Host, "db", cfg.Postgres.Name)
	return &Service{db: db, backend: config.BackendPostgres, log: serviceLog}, nil
}

func NewSQLiteService(cfg *config.Config, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")
	db, err := OpenSQLite(cfg.SQLite.Path, gormConfig())
	if err != nil {
		return nil, err
	}
	serviceLog.Info("Opened sqlite", "path", cfg.SQLite.Path)
	return &Service{db: db, backend: config.BackendSQLite, log: serviceLog}, nil
}

// OpenSQLite opens path (":memory:" allowed). SQLite serializes writers, so
// the pool is capped at one connection.
func OpenSQLite(path string, gcfg *gorm.Config) (*gorm.DB, error) {
	if gcfg == nil {
		gcfg = gormConfig()
	}
	db, err := gorm.Open(sqlite.Open(path), gcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %q: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func (s *Service) DB() *gorm.DB     { return s.db }
func (s *Service) Backend() string { return s.backend }

func (s *Service) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
