package personrecord

import (
	"context"
	"sync"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type MemoryStore struct {
	mu   sync.RWMutex
	rows map[int64]*domain.PersonRecord
	log  *logger.Logger
}

func NewMemoryStore(baseLog *logger.Logger) *MemoryStore {
	return &MemoryStore{
		rows: make(map[int64]*domain.PersonRecord),
		log:  baseLog.With("repo", "PersonRecordMemoryStore"),
	}
}

func (s *MemoryStore) Save(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error) {
	if r == nil {
		return nil, domain.Validation("person_record.save", "record is required")
	}
	row := r.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	if row.ID == 0 {
		row.ID = s.nextIDLocked()
	}
	s.rows[row.ID] = row
	s.log.Debug("person record saved", "record_id", row.ID)
	return row.Clone(), nil
}

func (s *MemoryStore) nextIDLocked() int64 {
	var max int64
	for id := range s.rows {
		if id > max {
			max = id
		}
	}
	return max + 1
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[id].Clone(), nil
}

func (s *MemoryStore) FindAllOrdered(ctx context.Context) ([]*domain.PersonRecord, error) {
	s.mu.RLock()
	out := make([]*domain.PersonRecord, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row.Clone())
	}
	s.mu.RUnlock()
	sortByName(out)
	return out, nil
}

func (s *MemoryStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[id]
	return ok, nil
}

func (s *MemoryStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return false, nil
	}
	delete(s.rows, id)
	return true, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *MemoryStore) NextID(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextIDLocked(), nil
}
