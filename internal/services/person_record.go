package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/person-backend/internal/calc"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/ctxutil"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type PersonRecordService interface {
	ListOrdered(ctx context.Context) ([]*domain.PersonRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error)
	Create(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error)
	Update(ctx context.Context, id int64, r *domain.PersonRecord) (*domain.PersonRecord, error)
	UpdateField(ctx context.Context, id int64, field, value string) (*domain.PersonRecord, error)
	Delete(ctx context.Context, id int64) error
	ComputeAge(ctx context.Context, id int64, unit string) (int64, error)
	ComputeSalary(ctx context.Context, id int64, format string) (float64, error)
}

type RecordField string

const (
	RecordFieldName          RecordField = "name"
	RecordFieldBirthDate     RecordField = "birth_date"
	RecordFieldAdmissionDate RecordField = "admission_date"
)

var recordFieldSetters = map[RecordField]func(r *domain.PersonRecord, value string) error{
	RecordFieldName: func(r *domain.PersonRecord, v string) error {
		r.Name = strings.TrimSpace(v)
		return nil
	},
	RecordFieldBirthDate: func(r *domain.PersonRecord, v string) error {
		d, err := parseFieldDate(RecordFieldBirthDate, v)
		if err == nil {
			r.BirthDate = d
		}
		return err
	},
	RecordFieldAdmissionDate: func(r *domain.PersonRecord, v string) error {
		d, err := parseFieldDate(RecordFieldAdmissionDate, v)
		if err == nil {
			r.AdmissionDate = d
		}
		return err
	},
}

// recordFieldAliases accepts camelCase spellings ("birthDate") after lowercasing.
var recordFieldAliases = map[string]RecordField{
	"birthdate":     RecordFieldBirthDate,
	"admissiondate": RecordFieldAdmissionDate,
}

func RecordFields() []string {
	out := make([]string, 0, len(recordFieldSetters))
	for f := range recordFieldSetters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func ParseRecordField(s string) (RecordField, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := recordFieldAliases[key]; ok {
		return alias, nil
	}
	f := RecordField(key)
	if _, ok := recordFieldSetters[f]; !ok {
		return "", domain.InvalidArgument("person_record.update_field", fmt.Sprintf("unknown field %q", s), RecordFields()...)
	}
	return f, nil
}

func parseFieldDate(f RecordField, v string) (datatypes.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(v))
	if err != nil {
		return d, domain.Validation("person_record.update_field", fmt.Sprintf("%s must be a %s date", f, domain.DateLayout))
	}
	return d, nil
}

// ValidatePersonRecord requires a 2..100 character name and both dates.
func ValidatePersonRecord(r *domain.PersonRecord) error {
	const op = "person_record.validate"
	if r == nil {
		return domain.Validation(op, "record is required")
	}
	if err := validateName(op, r.Name); err != nil {
		return err
	}
	if r.Birth().IsZero() {
		return domain.Validation(op, "birth_date is required")
	}
	if r.Admission().IsZero() {
		return domain.Validation(op, "admission_date is required")
	}
	return nil
}

type personRecordService struct {
	log   *logger.Logger
	store personrecord.Store
	now   func() time.Time
}

// NewPersonRecordService uses now as "today" for age and salary; nil means time.Now.
func NewPersonRecordService(log *logger.Logger, store personrecord.Store, now func() time.Time) PersonRecordService {
	if now == nil {
		now = time.Now
	}
	return &personRecordService{log: log.With("service", "PersonRecordService"), store: store, now: now}
}

func (s *personRecordService) ListOrdered(ctx context.Context) ([]*domain.PersonRecord, error) {
	return s.store.FindAllOrdered(ctx)
}

func (s *personRecordService) FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error) {
	return s.store.FindByID(ctx, id)
}

func (s *personRecordService) mustFind(ctx context.Context, op string, id int64) (*domain.PersonRecord, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound(op, fmt.Sprintf("person %d not found", id))
	}
	return existing, nil
}

func (s *personRecordService) Create(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error) {
	const op = "person_record.create"
	if r == nil {
		return nil, domain.Validation(op, "record is required")
	}
	row := r.Clone()
	row.Name = strings.TrimSpace(row.Name)
	if err := ValidatePersonRecord(row); err != nil {
		return nil, err
	}
	if row.ID != 0 {
		exists, err := s.store.ExistsByID(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.Conflict(op, fmt.Sprintf("person %d already exists", row.ID))
		}
	}
	saved, err := s.store.Save(ctx, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("person record created", append(ctxutil.LogFields(ctx), "record_id", saved.ID)...)
	return saved, nil
}

func (s *personRecordService) Update(ctx context.Context, id int64, r *domain.PersonRecord) (*domain.PersonRecord, error) {
	const op = "person_record.update"
	if _, err := s.mustFind(ctx, op, id); err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.Validation(op, "record is required")
	}
	row := r.Clone()
	row.ID = id
	row.Name = strings.TrimSpace(row.Name)
	if err := ValidatePersonRecord(row); err != nil {
		return nil, err
	}
	return s.store.Save(ctx, row)
}

func (s *personRecordService) UpdateField(ctx context.Context, id int64, field, value string) (*domain.PersonRecord, error) {
	const op = "person_record.update_field"
	existing, err := s.mustFind(ctx, op, id)
	if err != nil {
		return nil, err
	}
	f, err := ParseRecordField(field)
	if err != nil {
		return nil, err
	}
	if err := recordFieldSetters[f](existing, value); err != nil {
		return nil, err
	}
	if err := ValidatePersonRecord(existing); err != nil {
		return nil, err
	}
	return s.store.Save(ctx, existing)
}

func (s *personRecordService) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NotFound("person_record.delete", fmt.Sprintf("person %d not found", id))
	}
	s.log.Info("person record deleted", append(ctxutil.LogFields(ctx), "record_id", id)...)
	return nil
}

func (s *personRecordService) ComputeAge(ctx context.Context, id int64, unit string) (int64, error) {
	r, err := s.mustFind(ctx, "person_record.age", id)
	if err != nil {
		return 0, err
	}
	u, err := calc.ParseAgeUnit(unit)
	if err != nil {
		return 0, err
	}
	return calc.Age(r.Birth(), s.now(), u)
}

func (s *personRecordService) ComputeSalary(ctx context.Context, id int64, format string) (float64, error) {
	r, err := s.mustFind(ctx, "person_record.salary", id)
	if err != nil {
		return 0, err
	}
	f, err := calc.ParseSalaryFormat(format)
	if err != nil {
		return 0, err
	}
	return calc.Salary(r.Admission(), s.now(), f)
}
