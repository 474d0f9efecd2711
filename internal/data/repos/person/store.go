package person

import (
	"context"
	"sort"
	"strings"

	"github.com/yungbote/person-backend/internal/domain"
)

// Store is the identifier-keyed Person store. Absence is reported as a nil
// record or false, never as an error. Ids assigned by Save are never reused.
type Store interface {
	Save(ctx context.Context, p *domain.Person) (*domain.Person, error)
	FindByID(ctx context.Context, id int64) (*domain.Person, error)
	FindByDocumentID(ctx context.Context, documentID string) (*domain.Person, error)
	FindAll(ctx context.Context) ([]*domain.Person, error)
	SearchByName(ctx context.Context, name string) ([]*domain.Person, error)
	ExistsByDocumentID(ctx context.Context, documentID string) (bool, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
}

func nameMatches(name, query string) bool {
	return strings.Contains(strings.ToLower(name), strings.ToLower(query))
}

func sortByID(rows []*domain.Person) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}

func conflictDocument(op string) error {
	return domain.Conflict(op, "document id already registered to another person")
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// likePattern builds a case-folded substring pattern for LIKE ... ESCAPE '\'.
func likePattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}
