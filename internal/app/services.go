package app

import (
	"time"

	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/services"
)

type Services struct {
	Person       services.PersonService
	PersonRecord services.PersonRecordService
}

func wireServices(log *logger.Logger, repos Repos, now func() time.Time) Services {
	log.Info("Wiring services...")
	return Services{
		Person:       services.NewPersonService(log, repos.Person),
		PersonRecord: services.NewPersonRecordService(log, repos.PersonRecord, now),
	}
}
