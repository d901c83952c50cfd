package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

func newCountry(iso2, iso3 string) *entity.Country {
	return &entity.Country{Name: iso3, ISOCode2: iso2, ISOCode3: iso3, Audit: entity.NewAudit(entity.Stamp{At: time.Now()})}
}

func TestPartialUniqueIgnoresDeletedRows(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	r := s.Repos()

	mx := newCountry("MX", "MEX")
	require.NoError(t, r.Countries.Create(ctx, mx))
	assert.ErrorIs(t, r.Countries.Create(ctx, newCountry("MX", "MXX")), domain.ErrDuplicate)

	require.NoError(t, r.Countries.SoftDelete(ctx, mx.ID, entity.Stamp{At: time.Now()}))
	again := newCountry("MX", "MEX")
	require.NoError(t, r.Countries.Create(ctx, again))

	assert.ErrorIs(t, r.Countries.Restore(ctx, mx.ID, entity.Stamp{At: time.Now()}), domain.ErrDuplicate)

	got, err := r.Countries.GetByID(ctx, mx.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	deleted, err := r.Countries.GetDeletedByID(ctx, mx.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	assert.False(t, deleted.IsActive)
}

func TestRunRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Countries.Create(ctx, newCountry("CL", "CHL")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, _ := s.Repos().Countries.Count(ctx, false)
	assert.Zero(t, n)

	require.NoError(t, s.Run(ctx, func(r repository.Repos) error {
		return r.Countries.Create(ctx, newCountry("CL", "CHL"))
	}))
	n, _ = s.Repos().Countries.Count(ctx, false)
	assert.Equal(t, int64(1), n)
	assert.NotNil(t, s.Countries.Raw(1), "el id descartado por el rollback se reutiliza")
}

func TestListOrderingAndPaging(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	r := s.Repos()
	for _, c := range []*entity.Country{newCountry("AA", "AAA"), newCountry("BB", "BBB"), newCountry("CC", "CCC")} {
		require.NoError(t, r.Countries.Create(ctx, c))
	}
	c3 := s.Countries.Raw(3)
	c3.IsActive = false
	require.NoError(t, r.Countries.Update(ctx, c3))

	page, err := r.Countries.List(ctx, repository.ListOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, int64(2), page[0].ID)

	active, err := r.Countries.List(ctx, repository.ListOptions{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	empty, err := r.Countries.List(ctx, repository.ListOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestHardDeleteIgnoresDeletedRows(t *testing.T) {
	ctx := context.Background()
	r := NewStore().Repos()

	pe := newCountry("PE", "PER")
	require.NoError(t, r.Countries.Create(ctx, pe))
	require.NoError(t, r.Countries.SoftDelete(ctx, pe.ID, entity.Stamp{At: time.Now()}))

	assert.ErrorIs(t, r.Countries.HardDelete(ctx, pe.ID), domain.ErrNotFound)
	deleted, err := r.Countries.GetDeletedByID(ctx, pe.ID)
	require.NoError(t, err)
	assert.NotNil(t, deleted)
}
