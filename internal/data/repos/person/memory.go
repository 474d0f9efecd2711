package person

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// MemoryStore keeps persons in a mutex-guarded map. The id counter is atomic
// and only moves forward, so deleted ids are never handed out again.
type MemoryStore struct {
	mu    sync.RWMutex
	rows  map[int64]*domain.Person
	byDoc map[string]int64
	seq   atomic.Int64
	now   func() time.Time
	log   *logger.Logger
}

// Stats is a point-in-time view of the memory store.
type Stats struct {
	TotalPersons int     `json:"totalPersons"`
	NextID       int64   `json:"nextId"`
	IDs          []int64 `json:"ids"`
}

func NewMemoryStore(baseLog *logger.Logger) *MemoryStore {
	return &MemoryStore{
		rows:  make(map[int64]*domain.Person),
		byDoc: make(map[string]int64),
		now:   time.Now,
		log:   baseLog.With("repo", "PersonMemoryStore"),
	}
}

func (s *MemoryStore) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	if p == nil {
		return nil, domain.Validation("person.save", "person is required")
	}
	row := p.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if row.ID == 0 {
		row.ID = s.seq.Add(1)
	} else {
		s.bumpSeq(row.ID)
	}
	if owner, ok := s.byDoc[row.DocumentID]; ok && owner != row.ID {
		return nil, conflictDocument("person.save")
	}

	now := s.now().UTC()
	if existing, ok := s.rows[row.ID]; ok {
		row.CreatedAt = existing.CreatedAt
		if existing.DocumentID != row.DocumentID {
			delete(s.byDoc, existing.DocumentID)
		}
	} else {
		row.CreatedAt = now
	}
	row.UpdatedAt = now
	if row.UpdatedAt.Before(row.CreatedAt) {
		row.UpdatedAt = row.CreatedAt
	}

	s.rows[row.ID] = row
	s.byDoc[row.DocumentID] = row.ID
	s.log.Debug("person saved", "person_id", row.ID)
	return row.Clone(), nil
}

// bumpSeq moves the counter past an explicitly supplied id.
func (s *MemoryStore) bumpSeq(id int64) {
	for {
		cur := s.seq.Load()
		if id <= cur || s.seq.CompareAndSwap(cur, id) {
			return
		}
	}
}

func (s *MemoryStore) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows[id].Clone(), nil
}

func (s *MemoryStore) FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byDoc[documentID]
	if !ok {
		return nil, nil
	}
	return s.rows[id].Clone(), nil
}

func (s *MemoryStore) FindAll(ctx context.Context) ([]*domain.Person, error) {
	s.mu.RLock()
	out := make([]*domain.Person, 0, len(s.rows))
	for _, row := range s.rows {
		out = append(out, row.Clone())
	}
	s.mu.RUnlock()
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) SearchByName(ctx context.Context, name string) ([]*domain.Person, error) {
	s.mu.RLock()
	out := make([]*domain.Person, 0)
	for _, row := range s.rows {
		if nameMatches(row.Name, name) {
			out = append(out, row.Clone())
		}
	}
	s.mu.RUnlock()
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) ExistsByDocumentID(ctx context.Context, documentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byDoc[documentID]
	return ok, nil
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
	row, ok := s.rows[id]
	if !ok {
		return false, nil
	}
	delete(s.rows, id)
	delete(s.byDoc, row.DocumentID)
	s.log.Debug("person deleted", "person_id", id)
	return true, nil
}

func (s *MemoryStore) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.rows)), nil
}

func (s *MemoryStore) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return Stats{TotalPersons: len(s.rows), NextID: s.seq.Load() + 1, IDs: ids}
}

// Content returns a copy of every stored person keyed by id.
func (s *MemoryStore) Content() map[int64]*domain.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[int64]*domain.Person, len(s.rows))
	for id, row := range s.rows {
		out[id] = row.Clone()
	}
	return out
}
