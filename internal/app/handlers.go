package app

import (
	"context"

	httpH "github.com/yungbote/person-backend/internal/http/handlers"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Person       *httpH.PersonHandler
	PersonRecord *httpH.PersonRecordHandler
	MemoryMap    *httpH.MemoryMapHandler
}

func wireHandlers(log *logger.Logger, serviceName string, services Services, repos Repos, clients Clients) Handlers {
	log.Info("Wiring handlers...")
	out := Handlers{
		Health:       httpH.NewHealthHandler(serviceName, Version, readinessChecks(clients)),
		Person:       httpH.NewPersonHandler(log, services.Person),
		PersonRecord: httpH.NewPersonRecordHandler(log, services.PersonRecord),
	}
	if repos.PersonMemory != nil {
		out.MemoryMap = httpH.NewMemoryMapHandler(repos.PersonMemory)
	}
	return out
}

func readinessChecks(clients Clients) map[string]httpH.Check {
	checks := map[string]httpH.Check{}
	if clients.Postgres != nil {
		pg := clients.Postgres
		checks["postgres"] = func(context.Context) error { return pg.Ping() }
	}
	if clients.SQLite != nil {
		lite := clients.SQLite
		checks["sqlite"] = func(context.Context) error { return lite.Ping() }
	}
	if clients.Redis != nil {
		rdb := clients.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
