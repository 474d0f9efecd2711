package app

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/person-backend/internal/config"
	apphttp "github.com/yungbote/person-backend/internal/http"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// Version is reported by the health endpoint. Overridden at build time with
// -ldflags "-X github.com/yungbote/person-backend/internal/app.Version=...".
var Version = "dev"

type App struct {
	Log      *logger.Logger
	Cfg      *config.Config
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *apphttp.Server

	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock fixes "today" for age and salary calculations.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func New(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...Option) (*App, error) {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.Init(log)
	}
	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
		Environment: cfg.Env,
		SampleRatio: cfg.Observability.SampleRatio,
	})

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}
	reposet, err := wireRepos(log, cfg, clients, metrics)
	if err != nil {
		clients.Close()
		_ = otelShutdown(ctx)
		return nil, err
	}
	serviceset := wireServices(log, reposet, o.now)
	handlerset := wireHandlers(log, cfg.Observability.ServiceName, serviceset, reposet, clients)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Metrics:      metrics,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Start seeds sample data when enabled and launches the metric collectors.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	bgCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Cfg.SeedData {
		if err := seed(ctx, a.Log, a.Services, a.Metrics); err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}
	if a.Metrics != nil {
		if a.Clients.Postgres != nil {
			a.Metrics.StartDBCollector(bgCtx, a.Log, a.Clients.Postgres.DB())
		}
		if a.Clients.SQLite != nil {
			a.Metrics.StartDBCollector(bgCtx, a.Log, a.Clients.SQLite.DB())
		}
		a.Metrics.StartRedisCollector(bgCtx, a.Log, a.Clients.Redis)
	}
	return nil
}

// Run starts the app and serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	if err := a.Start(ctx); err != nil {
		return err
	}
	return a.Server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.Clients.Close()
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
