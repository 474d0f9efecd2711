package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

func seedPersons() []*domain.Person {
	return []*domain.Person{
		{Name: "João Silva", DocumentID: "123.456.789-09", Phone: "(11) 99999-1111", Email: "joao.silva@email.com"},
		{Name: "Maria Santos", DocumentID: "987.654.321-00", Phone: "(21) 88888-2222", Email: "maria.santos@email.com"},
		{Name: "Pedro Oliveira", DocumentID: "456.789.123-64", Phone: "(31) 77777-3333", Email: "pedro.oliveira@email.com"},
	}
}

func seedRecords() []*domain.PersonRecord {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	return []*domain.PersonRecord{
		{ID: 1, Name: "José da Silva", BirthDate: domain.NewDate(day(2000, time.April, 6)), AdmissionDate: domain.NewDate(day(2020, time.May, 10))},
		{ID: 2, Name: "Maria Santos", BirthDate: domain.NewDate(day(1995, time.August, 15)), AdmissionDate: domain.NewDate(day(2021, time.March, 20))},
		{ID: 3, Name: "Pedro Oliveira", BirthDate: domain.NewDate(day(1988, time.December, 3)), AdmissionDate: domain.NewDate(day(2019, time.January, 15))},
	}
}

// seed fills empty stores with the sample data. Persons go in order so they
// receive ids 1..3; the two stores are seeded concurrently. Non-empty stores
// are left untouched.
func seed(ctx context.Context, log *logger.Logger, svc Services, m *observability.Metrics) error {
	log = log.With("component", "seed")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := svc.Person.Count(gctx)
		if err != nil {
			return fmt.Errorf("count persons: %w", err)
		}
		if n > 0 {
			log.Info("person store already populated, skipping seed", "count", n)
			return nil
		}
		ids := make([]int64, 0, 3)
		for _, p := range seedPersons() {
			saved, err := svc.Person.Create(gctx, p)
			if err != nil {
				return fmt.Errorf("seed person %q: %w", p.Name, err)
			}
			ids = append(ids, saved.ID)
		}
		m.AddSeeded("person", len(ids))
		log.Info("seeded persons", "ids", ids)
		return nil
	})

	g.Go(func() error {
		rows, err := svc.PersonRecord.ListOrdered(gctx)
		if err != nil {
			return fmt.Errorf("list person records: %w", err)
		}
		if len(rows) > 0 {
			log.Info("person record store already populated, skipping seed", "count", len(rows))
			return nil
		}
		records := seedRecords()
		for _, r := range records {
			if _, err := svc.PersonRecord.Create(gctx, r); err != nil {
				return fmt.Errorf("seed person record %d: %w", r.ID, err)
			}
		}
		m.AddSeeded("person_record", len(records))
		log.Info("seeded person records", "count", len(records))
		return nil
	})

	return g.Wait()
}
