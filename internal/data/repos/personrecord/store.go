package personrecord

import (
	"context"
	"sort"

	"github.com/yungbote/person-backend/internal/domain"
)

// Store is the ordered-listing PersonRecord store. New ids are max(id)+1, so
// the highest id becomes available again once it is deleted.
type Store interface {
	Save(ctx context.Context, r *domain.PersonRecord) (*domain.PersonRecord, error)
	FindByID(ctx context.Context, id int64) (*domain.PersonRecord, error)
	FindAllOrdered(ctx context.Context) ([]*domain.PersonRecord, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Count(ctx context.Context) (int64, error)
	NextID(ctx context.Context) (int64, error)
}

// sortByName orders by name (byte-wise), then id.
func sortByName(rows []*domain.PersonRecord) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].ID < rows[j].ID
	})
}
