package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func TestFilter_LiveScopeAndPlaceholders(t *testing.T) {
	f := live().eq("country_id", int64(7)).ilikeAny("ab", "name", "code").activeOnly(true)

	assert.Equal(t,
		" WHERE is_deleted = false AND country_id = $1 AND (name ILIKE $2 OR code ILIKE $2) AND is_active = true",
		f.where())
	assert.Equal(t, []any{int64(7), "%ab%"}, f.args)
}

func TestFilter_ActiveOnlyOff(t *testing.T) {
	f := live().activeOnly(false)
	assert.Equal(t, " WHERE is_deleted = false", f.where())
	assert.Empty(t, f.args)
}

func TestFilter_Deleted(t *testing.T) {
	f := deleted().eq("id", int64(3))
	assert.Equal(t, " WHERE is_deleted = true AND id = $1", f.where())
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c:\\tmp`, escapeLike(`c:\tmp`))
}

func TestUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "uq_companies_tin"})
	name, ok := uniqueViolation(err)
	assert.True(t, ok)
	assert.Equal(t, "uq_companies_tin", name)

	_, ok = uniqueViolation(&pgconn.PgError{Code: "23503"})
	assert.False(t, ok)
	_, ok = uniqueViolation(errors.New("boom"))
	assert.False(t, ok)
	_, ok = uniqueViolation(nil)
	assert.False(t, ok)
}

func TestWriteErr_MapsUniqueIndexToField(t *testing.T) {
	r := newTableRepo[entity.Company, *entity.Company](nil, companyTable)
	c := &entity.Company{TIN: "ABC123"}

	err := r.writeErr("insert", &pgconn.PgError{Code: "23505", ConstraintName: "uq_companies_tin"}, c)

	var ae *domain.AlreadyExistsError
	if assert.ErrorAs(t, err, &ae) {
		assert.Equal(t, "Company", ae.Entity)
		assert.Equal(t, "tin", ae.Field)
		assert.Equal(t, "ABC123", ae.Value)
	}
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Una FK violada indica una carrera con otra transacción; no es una regla de negocio.
func TestWriteErr_ForeignKeyStaysUnclassified(t *testing.T) {
	r := newTableRepo[entity.State, *entity.State](nil, stateTable)
	cause := &pgconn.PgError{Code: "23503", ConstraintName: "companies_state_id_fkey"}
	err := r.writeErr("delete", cause, nil)

	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "23503", pgErr.Code)
	assert.False(t, domain.IsKind(err))
	assert.NotErrorIs(t, err, domain.ErrBusinessRule)
}

func TestWriteErr_OtherErrorsWrapped(t *testing.T) {
	r := newTableRepo[entity.Country, *entity.Country](nil, countryTable)
	cause := errors.New("conn reset")
	err := r.writeErr("update", cause, nil)
	assert.ErrorIs(t, err, cause)
	assert.False(t, domain.IsKind(err))
}

func TestColumns_IDFieldsAudit(t *testing.T) {
	r := newTableRepo[entity.State, *entity.State](nil, stateTable)
	assert.Equal(t,
		"id, name, code, country_id, is_active, is_deleted, created_at, created_by, updated_at, updated_by, deleted_at, deleted_by",
		r.columns())
}
