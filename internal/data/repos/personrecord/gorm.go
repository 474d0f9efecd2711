package personrecord

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// Concurrent inserts can both read the same MAX(id); the loser hits the
// primary key and recomputes.
const maxInsertAttempts = 5

type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	return &GormStore{db: db, log: baseLog.With("repo", "PersonRecordGormStore")}
}

func (s *GormStore) Save(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error) {
	if r == nil {
		return nil, domain.Validation("person_record.save", "record is required")
	}
	row := r.Clone()
	if row.ID != 0 {
		if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
			return nil, fmt.Errorf("save person record: %w", err)
		}
		return row, nil
	}

	var err error
	for attempt := 1; attempt <= maxInsertAttempts; attempt++ {
		row.ID = 0
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := nextID(tx)
			if err != nil {
				return err
			}
			row.ID = id
			return tx.Create(row).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		s.log.Debug("person record id race, retrying", "attempt", attempt)
	}
	if err != nil {
		return nil, fmt.Errorf("create person record: %w", err)
	}
	return row, nil
}

func nextID(tx *gorm.DB) (int64, error) {
	var max int64
	if err := tx.Model(&domain.PersonRecord{}).Select("COALESCE(MAX(id), 0)").Scan(&max).Error; err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error) {
	var row domain.PersonRecord
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) FindAllOrdered(ctx context.Context) ([]*domain.PersonRecord, error) {
	var rows []*domain.PersonRecord
	if err := s.db.WithContext(ctx).Order("name ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	// Re-sorted in Go: collations differ from byte order.
	sortByName(rows)
	return rows, nil
}

func (s *GormStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.PersonRecord{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.PersonRecord{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.PersonRecord{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (s *GormStore) NextID(ctx context.Context) (int64, error) {
	return nextID(s.db.WithContext(ctx))
}
