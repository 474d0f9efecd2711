package services

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/domain"
	"github.com/yungbote/person-backend/internal/platform/ctxutil"
	"github.com/yungbote/person-backend/internal/platform/logger"
)

type PersonService interface {
	Create(ctx context.Context, p *domain.Person) (*domain.Person, error)
	Update(ctx context.Context, id int64, p *domain.Person) (*domain.Person, error)
	UpdateField(ctx context.Context, id int64, field, value string) (*domain.Person, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error)
	ListAll(ctx context.Context) ([]*domain.Person, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Person, error)
	Count(ctx context.Context) (int64, error)
}

// PersonField selects the attribute changed by UpdateField.
type PersonField string

const (
	PersonFieldName       PersonField = "name"
	PersonFieldDocumentID PersonField = "document_id"
	PersonFieldPhone      PersonField = "phone"
	PersonFieldEmail      PersonField = "email"
)

var personFieldSetters = map[PersonField]func(p *domain.Person, value string){
	PersonFieldName:       func(p *domain.Person, v string) { p.Name = v },
	PersonFieldDocumentID: func(p *domain.Person, v string) { p.DocumentID = v },
	PersonFieldPhone:      func(p *domain.Person, v string) { p.Phone = v },
	PersonFieldEmail:      func(p *domain.Person, v string) { p.Email = v },
}

func PersonFields() []string {
	out := make([]string, 0, len(personFieldSetters))
	for f := range personFieldSetters {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// ParsePersonField accepts snake_case or camelCase ("documentId") names.
func ParsePersonField(s string) (PersonField, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if key == "documentid" {
		key = string(PersonFieldDocumentID)
	}
	f := PersonField(key)
	if _, ok := personFieldSetters[f]; !ok {
		return "", domain.InvalidArgument("person.update_field", fmt.Sprintf("unknown field %q", s), PersonFields()...)
	}
	return f, nil
}

const (
	minNameLen = 2
	maxNameLen = 100
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@([A-Za-z0-9.-]+\.[A-Za-z]{2,})$`)

type personService struct {
	log   *logger.Logger
	store person.Store
}

func NewPersonService(log *logger.Logger, store person.Store) PersonService {
	return &personService{log: log.With("service", "PersonService"), store: store}
}

// ValidatePerson checks the full record as given.
func ValidatePerson(p *domain.Person) error {
	const op = "person.validate"
	if p == nil {
		return domain.Validation(op, "person is required")
	}
	if err := validateName(op, p.Name); err != nil {
		return err
	}
	if strings.TrimSpace(p.DocumentID) == "" {
		return domain.Validation(op, "document_id is required")
	}
	if !domain.ValidDocumentID(p.DocumentID) {
		return domain.Validation(op, "document_id is invalid")
	}
	if p.Email != "" && !emailPattern.MatchString(p.Email) {
		return domain.Validation(op, "email is malformed")
	}
	if p.Phone != "" {
		if n := len(domain.NormalizeDigits(p.Phone)); n < 10 || n > 11 {
			return domain.Validation(op, "phone must have 10 or 11 digits")
		}
	}
	return nil
}

func validateName(op, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Validation(op, "name is required")
	}
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return domain.Validation(op, fmt.Sprintf("name must have between %d and %d characters", minNameLen, maxNameLen))
	}
	return nil
}

// normalizePerson trims text fields and stores the document id as bare digits
// so "123.456.789-09" and "12345678909" are the same key.
func normalizePerson(p *domain.Person) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	if digits := domain.NormalizeDigits(p.DocumentID); digits != "" {
		p.DocumentID = digits
	} else {
		p.DocumentID = strings.TrimSpace(p.DocumentID)
	}
}

func (s *personService) Create(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	const op = "person.create"
	if p == nil {
		return nil, domain.Validation(op, "person is required")
	}
	row := p.Clone()
	normalizePerson(row)
	if err := ValidatePerson(row); err != nil {
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
	taken, err := s.store.ExistsByDocumentID(ctx, row.DocumentID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict(op, "document id already registered")
	}
	saved, err := s.store.Save(ctx, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("person created", append(ctxutil.LogFields(ctx), "person_id", saved.ID, "document_id", saved.DocumentID)...)
	return saved, nil
}

func (s *personService) Update(ctx context.Context, id int64, p *domain.Person) (*domain.Person, error) {
	const op = "person.update"
	existing, err := s.mustFind(ctx, op, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Validation(op, "person is required")
	}
	row := p.Clone()
	row.ID = id
	row.CreatedAt = existing.CreatedAt
	normalizePerson(row)
	if err := ValidatePerson(row); err != nil {
		return nil, err
	}
	return s.saveChecked(ctx, op, row)
}

func (s *personService) UpdateField(ctx context.Context, id int64, field, value string) (*domain.Person, error) {
	const op = "person.update_field"
	existing, err := s.mustFind(ctx, op, id)
	if err != nil {
		return nil, err
	}
	f, err := ParsePersonField(field)
	if err != nil {
		return nil, err
	}
	personFieldSetters[f](existing, value)
	normalizePerson(existing)
	if err := ValidatePerson(existing); err != nil {
		return nil, err
	}
	return s.saveChecked(ctx, op, existing)
}

// saveChecked persists row after making sure its document id is not owned by
// another person.
func (s *personService) saveChecked(ctx context.Context, op string, row *domain.Person) (*domain.Person, error) {
	owner, err := s.store.FindByDocumentID(ctx, row.DocumentID)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != row.ID {
		return nil, domain.Conflict(op, "document id already registered to another person")
	}
	saved, err := s.store.Save(ctx, row)
	if err != nil {
		return nil, err
	}
	s.log.Info("person updated", append(ctxutil.LogFields(ctx), "person_id", saved.ID)...)
	return saved, nil
}

func (s *personService) mustFind(ctx context.Context, op string, id int64) (*domain.Person, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.NotFound(op, fmt.Sprintf("person %d not found", id))
	}
	return existing, nil
}

func (s *personService) Delete(ctx context.Context, id int64) error {
	removed, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.NotFound("person.delete", fmt.Sprintf("person %d not found", id))
	}
	s.log.Info("person deleted", append(ctxutil.LogFields(ctx), "person_id", id)...)
	return nil
}

func (s *personService) FindByID(ctx context.Context, id int64) (*domain.Person, error) {
	return s.store.FindByID(ctx, id)
}

func (s *personService) FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error) {
	key := domain.NormalizeDigits(documentID)
	if key == "" {
		return nil, nil
	}
	return s.store.FindByDocumentID(ctx, key)
}

func (s *personService) ListAll(ctx context.Context) ([]*domain.Person, error) {
	return s.store.FindAll(ctx)
}

func (s *personService) SearchByName(ctx context.Context, name string) ([]*domain.Person, error) {
	return s.store.SearchByName(ctx, strings.TrimSpace(name))
}

func (s *personService) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}
