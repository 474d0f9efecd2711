package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	"github.com/yungbote/person-backend/internal/observability"
)

func newSeedServices(t *testing.T) Services {
	log := testLogger(t)
	return wireServices(log, Repos{
		Person:       person.NewMemoryStore(log),
		PersonRecord: personrecord.NewMemoryStore(log),
	}, func() time.Time { return fixedToday })
}

func TestSeedPopulatesEmptyStores(t *testing.T) {
	svc := newSeedServices(t)
	m := observability.New()
	ctx := context.Background()

	require.NoError(t, seed(ctx, testLogger(t), svc, m))

	persons, err := svc.Person.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 3)
	for i, p := range persons {
		assert.EqualValues(t, i+1, p.ID)
	}

	records, err := svc.PersonRecord.ListOrdered(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "José da Silva", records[0].Name)

	months, err := svc.PersonRecord.ComputeAge(ctx, 1, "months")
	require.NoError(t, err)
	assert.EqualValues(t, 306, months)
}

func TestSeedIsIdempotent(t *testing.T) {
	svc := newSeedServices(t)
	ctx := context.Background()

	require.NoError(t, seed(ctx, testLogger(t), svc, nil))
	require.NoError(t, seed(ctx, testLogger(t), svc, nil))

	n, err := svc.Person.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
}
