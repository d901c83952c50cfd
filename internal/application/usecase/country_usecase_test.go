package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

func TestCountryCreate_DuplicateISOCodes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.countries.Create(ctx, dto.CreateCountryRequest{Name: "Otro", ISOCode2: "mx", ISOCode3: "OTR"}, nil)
	var ae *domain.AlreadyExistsError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "iso_code_2", ae.Field)

	_, err = f.countries.Create(ctx, dto.CreateCountryRequest{Name: "Otro", ISOCode2: "OT", ISOCode3: " mex"}, nil)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "iso_code_3", ae.Field)
}

func TestCountryCreate_ISOReusableAfterSoftDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.countries.Delete(ctx, f.cl.ID, false, nil))

	again, err := f.countries.Create(ctx, dto.CreateCountryRequest{Name: "Chile", ISOCode2: "CL", ISOCode3: "CHL"}, nil)
	require.NoError(t, err)
	assert.NotEqual(t, f.cl.ID, again.ID)

	_, err = f.countries.Restore(ctx, f.cl.ID, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate, "el código ya lo usa otra fila viva")
}

func TestCountryCreate_Validation(t *testing.T) {
	f := newFixture(t)
	_, err := f.countries.Create(context.Background(),
		dto.CreateCountryRequest{Name: "X", ISOCode2: "M1", ISOCode3: "MEXI"}, nil)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Errors, "iso_code_2")
	assert.Contains(t, ve.Errors, "iso_code_3")
}

func TestCountryUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.countries.Update(ctx, 999, dto.UpdateCountryRequest{Name: strPtr("Nada")}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.countries.Update(ctx, f.cl.ID, dto.UpdateCountryRequest{ISOCode2: strPtr("MX")}, nil)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	up, err := f.countries.Update(ctx, f.mx.ID,
		dto.UpdateCountryRequest{Name: strPtr("  Estados   Unidos Mexicanos "), ISOCode2: strPtr("mx"), CurrencyCode: strPtr("mxn")}, i64Ptr(3))
	require.NoError(t, err)
	assert.Equal(t, "Estados Unidos Mexicanos", up.Name)
	assert.Equal(t, "MX", up.ISOCode2)
	assert.Equal(t, "MXN", *up.CurrencyCode)
	assert.Equal(t, int64(3), *up.UpdatedBy)

	assert.Equal(t, []string{"Country:updated"}, f.events.actions())
}

func TestCountryUpdate_CodeFormats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.countries.Update(ctx, f.mx.ID, dto.UpdateCountryRequest{NumericCode: strPtr("4a4")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.countries.Update(ctx, f.mx.ID, dto.UpdateCountryRequest{CurrencyCode: strPtr("M1")}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.events.actions())

	up, err := f.countries.Update(ctx, f.mx.ID, dto.UpdateCountryRequest{NumericCode: strPtr("484"), CurrencyCode: strPtr("mxn")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "484", *up.NumericCode)

	up, err = f.countries.Update(ctx, f.mx.ID, dto.UpdateCountryRequest{NumericCode: strPtr(""), CurrencyCode: strPtr("")}, nil)
	require.NoError(t, err)
	assert.Nil(t, up.NumericCode)
	assert.Nil(t, up.CurrencyCode)
}

func TestCountryHardDelete_RefusedWhileReferenced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.countries.Delete(ctx, f.mx.ID, true, nil)
	var br *domain.BusinessRuleError
	require.ErrorAs(t, err, &br)
	assert.Equal(t, f.mx.ID, br.Details["country_id"])
	assert.NotNil(t, f.db.Countries.Raw(f.mx.ID))

	empty, err := f.countries.Create(ctx, dto.CreateCountryRequest{Name: "Perú", ISOCode2: "PE", ISOCode3: "PER"}, nil)
	require.NoError(t, err)
	require.NoError(t, f.countries.Delete(ctx, empty.ID, true, nil))
	assert.Nil(t, f.db.Countries.Raw(empty.ID))
}

func TestCountryHardDelete_SoftDeletedIsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pe, err := f.countries.Create(ctx, dto.CreateCountryRequest{Name: "Perú", ISOCode2: "PE", ISOCode3: "PER"}, nil)
	require.NoError(t, err)
	require.NoError(t, f.countries.Delete(ctx, pe.ID, false, nil))
	f.events.events = nil

	assert.ErrorIs(t, f.countries.Delete(ctx, pe.ID, true, nil), domain.ErrNotFound)
	assert.NotNil(t, f.db.Countries.Raw(pe.ID))
	assert.Empty(t, f.events.actions())

	// país eliminado con dependientes: NotFound antes que la regla de dependencias
	require.NoError(t, f.countries.Delete(ctx, f.cl.ID, false, nil))
	assert.ErrorIs(t, f.countries.Delete(ctx, f.cl.ID, true, nil), domain.ErrNotFound)
}

func TestCountryReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.countries.GetByISO(ctx, "mex")
	require.NoError(t, err)
	assert.Equal(t, f.mx.ID, c.ID)

	c, err = f.countries.GetByISO(ctx, "cl")
	require.NoError(t, err)
	assert.Equal(t, f.cl.ID, c.ID)

	_, err = f.countries.GetByISO(ctx, "XX")
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "iso_code_2", nf.Field)

	_, err = f.countries.GetByISO(ctx, "ABCD")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	d, err := f.countries.GetDetails(ctx, f.mx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.StatesCount)

	found, err := f.countries.Search(ctx, "chi", repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "CL", found[0].ISOCode2)

	_, err = f.countries.Search(ctx, "  ", repository.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	items, total, err := f.countries.List(ctx, repository.ListOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), total)
	assert.Equal(t, f.mx.ID, items[0].ID, "orden por id ascendente")
}

func TestCountryListStates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	states, total, err := f.countries.ListStates(ctx, f.mx.ID, repository.ListOptions{})
	require.NoError(t, err)
	require.Len(t, states, 1)
	assert.Equal(t, "JAL", states[0].Code)
	assert.Equal(t, int64(1), total)

	_, _, err = f.countries.ListStates(ctx, 999, repository.ListOptions{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCountryCount_ActiveOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.countries.Update(ctx, f.cl.ID, dto.UpdateCountryRequest{IsActive: new(bool)}, nil)
	require.NoError(t, err)

	all, err := f.countries.Count(ctx, false)
	require.NoError(t, err)
	active, err := f.countries.Count(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all)
	assert.Equal(t, int64(1), active)
}
