package person

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

// GormStore persists persons in the person table (postgres or sqlite).
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
	log *logger.Logger
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	return &GormStore{db: db, now: time.Now, log: baseLog.With("repo", "PersonGormStore")}
}

func (s *GormStore) Save(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	if p == nil {
		return nil, domain.Validation("person.save", "person is required")
	}
	row := p.Clone()
	now := s.now().UTC()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var clash int64
		if err := tx.Model(&domain.Person{}).
			Where("document_id = ? AND id <> ?", row.DocumentID, row.ID).
			Count(&clash).Error; err != nil {
			return err
		}
		if clash > 0 {
			return conflictDocument("person.save")
		}

		if row.ID == 0 {
			row.CreatedAt, row.UpdatedAt = now, now
			return tx.Create(row).Error
		}

		var existing domain.Person
		err := tx.Where("id = ?", row.ID).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			row.CreatedAt, row.UpdatedAt = now, now
			if err := tx.Create(row).Error; err != nil {
				return err
			}
			return syncSequence(tx)
		case err != nil:
			return err
		}
		row.CreatedAt = existing.CreatedAt
		row.UpdatedAt = now
		if row.UpdatedAt.Before(row.CreatedAt) {
			row.UpdatedAt = row.CreatedAt
		}
		return tx.Save(row).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateConflict(ctx, row)
		}
		var de *domain.Error
		if errors.As(err, &de) {
			return nil, err
		}
		return nil, fmt.Errorf("save person: %w", err)
	}
	return row, nil
}

// duplicateConflict names the constraint a failed insert hit. The driver error
// is translated without the constraint name, so the document owner is looked
// up again after the transaction rolled back.
func (s *GormStore) duplicateConflict(ctx context.Context, row *domain.Person) error {
	const op = "person.save"
	var owner domain.Person
	err := s.db.WithContext(ctx).Where("document_id = ?", row.DocumentID).Take(&owner).Error
	if err == nil && owner.ID != row.ID {
		return conflictDocument(op)
	}
	if row.ID != 0 {
		return domain.Conflict(op, fmt.Sprintf("person %d already exists", row.ID))
	}
	return domain.Conflict(op, "person already exists")
}

// syncSequence keeps postgres' serial ahead of explicitly inserted ids.
// SQLite AUTOINCREMENT tracks the largest id itself.
func syncSequence(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(`SELECT setval(pg_get_serial_sequence('person', 'id'), GREATEST((SELECT MAX(id) FROM person), 1))`).Error
}

func (s *GormStore) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *GormStore) FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error) {
	if documentID == "" {
		return nil, nil
	}
	return s.first(ctx, "document_id = ?", documentID)
}

func (s *GormStore) first(ctx context.Context, query string, arg interface{}) (*domain.Person, error) {
	var row domain.Person
	err := s.db.WithContext(ctx).Where(query, arg).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (s *GormStore) FindAll(ctx context.Context) ([]*domain.Person, error) {
	var rows []*domain.Person
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) SearchByName(ctx context.Context, name string) ([]*domain.Person, error) {
	var rows []*domain.Person
	err := s.db.WithContext(ctx).
		Where(`LOWER(name) LIKE ? ESCAPE '\'`, likePattern(name)).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GormStore) ExistsByDocumentID(ctx context.Context, documentID string) (bool, error) {
	return s.exists(ctx, "document_id = ?", documentID)
}

func (s *GormStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return s.exists(ctx, "id = ?", id)
}

func (s *GormStore) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Person{}).Where(query, arg).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Person{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.Person{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}
