package app

import (
	"github.com/yungbote/person-backend/internal/config"
	apphttp "github.com/yungbote/person-backend/internal/http"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg *config.Config, h Handlers, m *observability.Metrics) *apphttp.Server {
	log.Info("Wiring router...")
	return apphttp.NewServer(log, apphttp.ServerConfig{
		Addr:              cfg.HTTP.Addr,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
		ShutdownTimeout:   cfg.HTTP.ShutdownTimeout.Duration,
	}, apphttp.RouterConfig{
		Log:                 log,
		Metrics:             m,
		ServiceName:         cfg.Observability.ServiceName,
		TracingEnabled:      cfg.Observability.OTelEnabled,
		CORSOrigins:         cfg.HTTP.CORSOrigins,
		RateLimitRPS:        cfg.HTTP.RateLimitRPS,
		RateLimitBurst:      cfg.HTTP.RateLimitBurst,
		MaxRequestBytes:     cfg.HTTP.MaxRequestBytes,
		HealthHandler:       h.Health,
		PersonHandler:       h.Person,
		PersonRecordHandler: h.PersonRecord,
		MemoryMapHandler:    h.MemoryMap,
	})
}
