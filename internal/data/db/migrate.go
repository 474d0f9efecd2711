package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/person-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Person{},
		&domain.PersonRecord{},
	)
}

// EnsureIndexes adds the case-insensitive name lookup index used by name search.
func EnsureIndexes(db *gorm.DB) error {
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_person_lower_name ON person (lower(name));`).Error; err != nil {
		return fmt.Errorf("create idx_person_lower_name: %w", err)
	}
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_person_record_name_id ON person_record (name, id);`).Error; err != nil {
		return fmt.Errorf("create idx_person_record_name_id: %w", err)
	}
	return nil
}

func (s *Service) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...", "backend", s.backend)
	if err := AutoMigrateAll(s.db); err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	if err := EnsureIndexes(s.db); err != nil {
		s.log.Error("Index migration failed", "error", err)
		return err
	}
	return nil
}
