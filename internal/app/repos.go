package app

import (
	"fmt"

	"github.com/yungbote/person-backend/internal/config"
	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type Repos struct {
	Person       person.Store
	PersonRecord personrecord.Store

	// Set only for the memory backend; feeds the memory-map endpoints.
	PersonMemory *person.MemoryStore
}

func wireRepos(log *logger.Logger, cfg *config.Config, clients Clients, m *observability.Metrics) (Repos, error) {
	log.Info("Wiring repos...", "person", cfg.Stores.Person, "person_record", cfg.Stores.PersonRecord)
	var out Repos

	switch cfg.Stores.Person {
	case config.BackendMemory:
		mem := person.NewMemoryStore(log)
		out.PersonMemory = mem
		out.Person = mem
	case config.BackendPostgres:
		out.Person = person.NewGormStore(clients.Postgres.DB(), log)
	case config.BackendSQLite:
		out.Person = person.NewGormStore(clients.SQLite.DB(), log)
	case config.BackendRedis:
		out.Person = person.NewRedisStore(clients.Redis, cfg.Redis.KeyPrefix, log)
	default:
		return Repos{}, fmt.Errorf("unsupported person store %q", cfg.Stores.Person)
	}

	switch cfg.Stores.PersonRecord {
	case config.BackendMemory:
		out.PersonRecord = personrecord.NewMemoryStore(log)
	case config.BackendPostgres:
		out.PersonRecord = personrecord.NewGormStore(clients.Postgres.DB(), log)
	case config.BackendSQLite:
		out.PersonRecord = personrecord.NewGormStore(clients.SQLite.DB(), log)
	default:
		return Repos{}, fmt.Errorf("unsupported person_record store %q", cfg.Stores.PersonRecord)
	}

	out.Person = instrumentPersonStore(cfg.Stores.Person, out.Person, m)
	out.PersonRecord = instrumentPersonRecordStore(cfg.Stores.PersonRecord, out.PersonRecord, m)
	return out, nil
}
