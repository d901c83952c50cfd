package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// testPool conecta a TEST_DATABASE_URL, aplica migraciones y limpia las tablas.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE companies, states, countries RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func stamp() entity.Stamp {
	by := int64(1)
	return entity.Stamp{At: time.Now().UTC().Truncate(time.Microsecond), By: &by}
}

func seedMexico(t *testing.T, repos repository.Repos) (*entity.Country, *entity.State) {
	t.Helper()
	ctx := context.Background()
	mx := &entity.Country{Name: "México", ISOCode2: "MX", ISOCode3: "MEX", Audit: entity.NewAudit(stamp())}
	require.NoError(t, repos.Countries.Create(ctx, mx))
	jal := &entity.State{Name: "Jalisco", Code: "JAL", CountryID: mx.ID, Audit: entity.NewAudit(stamp())}
	require.NoError(t, repos.States.Create(ctx, jal))
	return mx, jal
}

func TestIntegration_SoftDeleteScopesReadsAndFreesNaturalKey(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	mx, jal := seedMexico(t, repos)

	c := &entity.Company{
		CompanyName: "Acme", TIN: "ABC123", TaxSystem: "RFC", CountryID: mx.ID, StateID: &jal.ID,
		Status: entity.CompanyStatusActive, Audit: entity.NewAudit(stamp()),
	}
	require.NoError(t, repos.Companies.Create(ctx, c))
	require.NotZero(t, c.ID)

	dup := *c
	dup.ID = 0
	err := repos.Companies.Create(ctx, &dup)
	var ae *domain.AlreadyExistsError
	require.ErrorAs(t, err, &ae, "el índice parcial debe rechazar un TIN vivo duplicado")
	assert.Equal(t, "tin", ae.Field)

	require.NoError(t, repos.Companies.SoftDelete(ctx, c.ID, stamp()))

	got, err := repos.Companies.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "una fila eliminada no debe aparecer en lecturas por defecto")

	gone, err := repos.Companies.GetDeletedByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, gone)
	assert.True(t, gone.IsDeleted)
	assert.False(t, gone.IsActive)
	assert.NotNil(t, gone.DeletedAt)
	assert.Equal(t, int64(1), *gone.DeletedBy)

	n, err := repos.Companies.Count(ctx, false)
	require.NoError(t, err)
	assert.Zero(t, n)

	dup.ID = 0
	require.NoError(t, repos.Companies.Create(ctx, &dup), "el TIN queda libre tras el soft delete")

	err = repos.Companies.Restore(ctx, c.ID, stamp())
	require.ErrorAs(t, err, &ae, "restaurar con el TIN ocupado debe fallar")
}

func TestIntegration_SearchAndAggregates(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	repos := NewRepos(pool)
	mx, jal := seedMexico(t, repos)

	for _, tin := range []string{"AAA111", "BBB222", "C_C%33"} {
		c := &entity.Company{
			CompanyName: "Empresa " + tin, TIN: tin, TaxSystem: "RFC", CountryID: mx.ID, StateID: &jal.ID,
			Status: entity.CompanyStatusActive, Audit: entity.NewAudit(stamp()),
		}
		require.NoError(t, repos.Companies.Create(ctx, c))
	}

	found, err := repos.Companies.Search(ctx, repository.CompanyFilter{Term: "_C%"}, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1, "los comodines del término deben tratarse como literales")
	assert.Equal(t, "C_C%33", found[0].TIN)

	page, err := repos.Companies.List(ctx, repository.ListOptions{Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "BBB222", page[0].TIN, "orden estable por id")

	byCountry, err := repos.Companies.CountByCountry(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"México": 3}, byCountry)

	states, err := repos.States.Search(ctx, "jal", &mx.ID, repository.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, states, 1)

	has, err := repos.States.HasDependents(ctx, jal.ID)
	require.NoError(t, err)
	assert.True(t, has)

	err = repos.Countries.HardDelete(ctx, mx.ID)
	assert.ErrorIs(t, err, domain.ErrBusinessRule, "ON DELETE RESTRICT se traduce a regla de negocio")
}

func TestIntegration_TxRunnerRollsBack(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	runner := NewTxRunner(pool)

	err := runner.Run(ctx, func(repos repository.Repos) error {
		c := &entity.Country{Name: "Chile", ISOCode2: "CL", ISOCode3: "CHL", Audit: entity.NewAudit(stamp())}
		require.NoError(t, repos.Countries.Create(ctx, c))
		return &domain.BusinessRuleError{Message: "forzar rollback"}
	})
	require.ErrorIs(t, err, domain.ErrBusinessRule)

	got, err := NewCountryRepository(pool).GetByISO2(ctx, "CL")
	require.NoError(t, err)
	assert.Nil(t, got, "la inserción debe revertirse")
}
