package app

import (
	"context"
	"time"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/observability"
)

type storeObserver struct {
	name    string
	metrics *observability.Metrics
}

func (o storeObserver) observe(operation string, err error, dur time.Duration) {
	if o.metrics == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	o.metrics.ObserveStoreOp(o.name, operation, status, dur)
}

func (o storeObserver) size(n int64, err error) {
	if o.metrics == nil || err != nil {
		return
	}
	o.metrics.SetStoreSize(o.name, n)
}

type instrumentedPersonStore struct {
	storeObserver
	inner person.Store
}

func instrumentPersonStore(backend string, inner person.Store, m *observability.Metrics) person.Store {
	if inner == nil || m == nil {
		return inner
	}
	return &instrumentedPersonStore{storeObserver: storeObserver{name: "person_" + backend, metrics: m}, inner: inner}
}

func (s *instrumentedPersonStore) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	start := time.Now()
	out, err := s.inner.Save(ctx, p)
	s.observe("save", err, time.Since(start))
	if err == nil {
		s.size(s.inner.Count(ctx))
	}
	return out, err
}

func (s *instrumentedPersonStore) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	start := time.Now()
	out, err := s.inner.FindByID(ctx, id)
	s.observe("find_by_id", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonStore) FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error) {
	start := time.Now()
	out, err := s.inner.FindByDocumentID(ctx, documentID)
	s.observe("find_by_document_id", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonStore) FindAll(ctx context.Context) ([]*domain.Person, error) {
	start := time.Now()
	out, err := s.inner.FindAll(ctx)
	s.observe("find_all", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonStore) SearchByName(ctx context.Context, name string) ([]*domain.Person, error) {
	start := time.Now()
	out, err := s.inner.SearchByName(ctx, name)
	s.observe("search_by_name", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonStore) ExistsByDocumentID(ctx context.Context, documentID string) (bool, error) {
	start := time.Now()
	ok, err := s.inner.ExistsByDocumentID(ctx, documentID)
	s.observe("exists_by_document_id", err, time.Since(start))
	return ok, err
}

func (s *instrumentedPersonStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	ok, err := s.inner.ExistsByID(ctx, id)
	s.observe("exists_by_id", err, time.Since(start))
	return ok, err
}

func (s *instrumentedPersonStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	ok, err := s.inner.DeleteByID(ctx, id)
	s.observe("delete_by_id", err, time.Since(start))
	if ok && err == nil {
		s.size(s.inner.Count(ctx))
	}
	return ok, err
}

func (s *instrumentedPersonStore) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.inner.Count(ctx)
	s.observe("count", err, time.Since(start))
	s.size(n, err)
	return n, err
}

type instrumentedPersonRecordStore struct {
	storeObserver
	inner personrecord.Store
}

func instrumentPersonRecordStore(backend string, inner personrecord.Store, m *observability.Metrics) personrecord.Store {
	if inner == nil || m == nil {
		return inner
	}
	return &instrumentedPersonRecordStore{storeObserver: storeObserver{name: "person_record_" + backend, metrics: m}, inner: inner}
}

func (s *instrumentedPersonRecordStore) Save(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error) {
	start := time.Now()
	out, err := s.inner.Save(ctx, r)
	s.observe("save", err, time.Since(start))
	if err == nil {
		s.size(s.inner.Count(ctx))
	}
	return out, err
}

func (s *instrumentedPersonRecordStore) FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error) {
	start := time.Now()
	out, err := s.inner.FindByID(ctx, id)
	s.observe("find_by_id", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonRecordStore) FindAllOrdered(ctx context.Context) ([]*domain.PersonRecord, error) {
	start := time.Now()
	out, err := s.inner.FindAllOrdered(ctx)
	s.observe("find_all_ordered", err, time.Since(start))
	return out, err
}

func (s *instrumentedPersonRecordStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	ok, err := s.inner.ExistsByID(ctx, id)
	s.observe("exists_by_id", err, time.Since(start))
	return ok, err
}

func (s *instrumentedPersonRecordStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	start := time.Now()
	ok, err := s.inner.DeleteByID(ctx, id)
	s.observe("delete_by_id", err, time.Since(start))
	if ok && err == nil {
		s.size(s.inner.Count(ctx))
	}
	return ok, err
}

func (s *instrumentedPersonRecordStore) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := s.inner.Count(ctx)
	s.observe("count", err, time.Since(start))
	s.size(n, err)
	return n, err
}

func (s *instrumentedPersonRecordStore) NextID(ctx context.Context) (int64, error) {
	start := time.Now()
	id, err := s.inner.NextID(ctx)
	s.observe("next_id", err, time.Since(start))
	return id, err
}
