package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func strPtr(s string) *string { return &s }
func i64Ptr(n int64) *int64   { return &n }

// ─────────────────────────────────────────────────────────────
// Validación
// ─────────────────────────────────────────────────────────────

func TestValidate_CreateCompany_ReportsJSONFieldNames(t *testing.T) {
	req := CreateCompanyRequest{CompanyName: "A", TIN: "12", TaxSystem: "XYZ", Email: strPtr("no-es-correo")}
	req.Normalize()

	err := Validate("Company", &req)
	require.Error(t, err)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Company", ve.Entity)
	assert.Equal(t, "debe tener al menos 2 caracteres", ve.Errors["company_name"])
	assert.Equal(t, "debe tener al menos 5 caracteres", ve.Errors["tin"])
	assert.Equal(t, "sistema fiscal no soportado", ve.Errors["tax_system"])
	assert.Equal(t, "es obligatorio", ve.Errors["country_id"])
	assert.Equal(t, "debe ser un correo válido", ve.Errors["email"])
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestValidate_CreateCompany_Valid(t *testing.T) {
	req := CreateCompanyRequest{
		CompanyName: "  Acme  ", TIN: " abc123 ", TaxSystem: "rfc", CountryID: 1,
		Website: strPtr("Acme.MX"), Phone: strPtr("+52 (555) 123-4567 ext"), Email: strPtr(" Info@Acme.MX "),
		City: strPtr("   "),
	}
	req.Normalize()
	require.NoError(t, Validate("Company", &req))

	assert.Equal(t, "Acme", req.CompanyName)
	assert.Equal(t, "ABC123", req.TIN)
	assert.Equal(t, "RFC", req.TaxSystem)
	assert.Equal(t, "https://acme.mx", *req.Website)
	assert.Equal(t, "+52 (555) 123-4567", *req.Phone)
	assert.Equal(t, "info@acme.mx", *req.Email)
	assert.Nil(t, req.City, "un opcional vacío en el alta queda ausente")
	assert.Equal(t, entity.CompanyStatusActive, req.Status, "status por defecto")
}

func TestValidate_UpdateCompany_OnlySuppliedFields(t *testing.T) {
	req := UpdateCompanyRequest{Status: strPtr("SUSPENDED")}
	req.Normalize()
	require.NoError(t, Validate("Company", &req))
	assert.Equal(t, "suspended", *req.Status)
	assert.False(t, req.Empty())

	bad := UpdateCompanyRequest{Status: strPtr("borrado"), StateID: i64Ptr(0)}
	bad.Normalize()
	var ve *domain.ValidationError
	require.ErrorAs(t, Validate("Company", &bad), &ve)
	assert.Equal(t, "debe ser uno de: active, inactive, suspended, waiting", ve.Errors["status"])
	assert.Equal(t, "debe ser mayor que 0", ve.Errors["state_id"])

	assert.True(t, (&UpdateCompanyRequest{}).Empty())
}

func TestValidate_Country(t *testing.T) {
	req := CreateCountryRequest{Name: "México", ISOCode2: "mx", ISOCode3: "me", NumericCode: strPtr("48a")}
	req.Normalize()
	var ve *domain.ValidationError
	require.ErrorAs(t, Validate("Country", &req), &ve)
	assert.NotContains(t, ve.Errors, "iso_code_2")
	assert.Equal(t, "debe tener exactamente 3 caracteres", ve.Errors["iso_code_3"])
	assert.Equal(t, "solo admite dígitos", ve.Errors["numeric_code"])
	assert.Equal(t, "MX", req.ISOCode2)
}

func TestValidate_UpdateCountry_CodeFormats(t *testing.T) {
	bad := UpdateCountryRequest{NumericCode: strPtr("12"), CurrencyCode: strPtr("m1n")}
	bad.Normalize()
	var ve *domain.ValidationError
	require.ErrorAs(t, Validate("Country", &bad), &ve)
	assert.Equal(t, "debe tener exactamente 3 caracteres", ve.Errors["numeric_code"])
	assert.Equal(t, "solo admite letras", ve.Errors["currency_code"])

	clear := UpdateCountryRequest{NumericCode: strPtr(""), CurrencyCode: strPtr(" ")}
	clear.Normalize()
	assert.NoError(t, Validate("Country", &clear))
}

func TestValidate_Company_EmptyEmailClears(t *testing.T) {
	up := UpdateCompanyRequest{Email: strPtr("  ")}
	up.Normalize()
	require.NoError(t, Validate("Company", &up))
	assert.Equal(t, "", *up.Email)

	bad := UpdateCompanyRequest{Email: strPtr("no-es-correo")}
	bad.Normalize()
	var ve *domain.ValidationError
	require.ErrorAs(t, Validate("Company", &bad), &ve)
	assert.Equal(t, "debe ser un correo válido", ve.Errors["email"])
}

func TestValidate_State(t *testing.T) {
	req := CreateStateRequest{Name: " Nuevo   León ", Code: " nl ", CountryID: 3}
	req.Normalize()
	require.NoError(t, Validate("State", &req))
	assert.Equal(t, "Nuevo León", req.Name)
	assert.Equal(t, "NL", req.Code)

	long := CreateStateRequest{Name: "X", Code: "ABCDEFGHIJK", CountryID: 3}
	var ve *domain.ValidationError
	require.ErrorAs(t, Validate("State", &long), &ve)
	assert.Equal(t, "debe tener como máximo 10 caracteres", ve.Errors["code"])
}

// ─────────────────────────────────────────────────────────────
// Paginación
// ─────────────────────────────────────────────────────────────

func TestPageRequest_ToOptions(t *testing.T) {
	opts, err := PageRequest{}.ToOptions(20, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, opts.Limit)
	assert.Equal(t, 0, opts.Offset)

	opts, err = PageRequest{Limit: 5, Offset: 10, ActiveOnly: true}.ToOptions(20, 100)
	require.NoError(t, err)
	assert.Equal(t, 5, opts.Limit)
	assert.Equal(t, 10, opts.Offset)
	assert.True(t, opts.ActiveOnly)

	_, err = PageRequest{Limit: 101}.ToOptions(20, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = PageRequest{Offset: -1}.ToOptions(20, 100)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─────────────────────────────────────────────────────────────
// Mapeo de presentación
// ─────────────────────────────────────────────────────────────

func TestNewCompanyDetailsResponse(t *testing.T) {
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	c := &entity.Company{ID: 9, CompanyName: "Acme", TIN: "ABC123", CountryID: 1, StateID: i64Ptr(2),
		Status: "active", Audit: entity.NewAudit(entity.Stamp{At: now})}
	d := &entity.CompanyDetails{
		Company: c,
		Country: &entity.Country{ID: 1, Name: "México", ISOCode2: "MX", ISOCode3: "MEX"},
		State:   &entity.State{ID: 2, Name: "Jalisco", Code: "JAL"},
	}

	out := NewCompanyDetailsResponse(d)
	assert.Equal(t, int64(9), out.ID)
	assert.Equal(t, "México", *out.CountryName)
	assert.Equal(t, "Jalisco", *out.StateName)
	assert.Equal(t, &CountryRef{ID: 1, Name: "México", ISOCode2: "MX", ISOCode3: "MEX"}, out.Country)
	assert.Equal(t, &StateRef{ID: 2, Name: "Jalisco", Code: "JAL"}, out.State)
	assert.True(t, out.IsActive)
	assert.Equal(t, now, out.CreatedAt)

	bare := NewCompanyDetailsResponse(&entity.CompanyDetails{Company: c})
	assert.Nil(t, bare.Country)
	assert.Nil(t, bare.StateName)
}

func TestNewCompanyStatisticsResponse(t *testing.T) {
	out := NewCompanyStatisticsResponse(&entity.CompanyStatistics{
		Total:       5,
		ByStatus:    map[string]int64{"active": 3, "suspended": 2},
		ByCountry:   map[string]int64{"México": 5},
		ByTaxSystem: map[string]int64{"RFC": 5},
	})
	assert.Equal(t, int64(5), out.TotalCompanies)
	assert.Equal(t, int64(3), out.ActiveCompanies)
	assert.Equal(t, int64(0), out.InactiveCompanies)
	assert.Equal(t, int64(2), out.SuspendedCompanies)
	assert.Equal(t, map[string]int64{"México": 5}, out.ByCountry)
}

func TestNewStateWithCountryResponse(t *testing.T) {
	out := NewStateWithCountryResponse(&entity.StateDetails{
		State:   &entity.State{ID: 4, Name: "Jalisco", Code: "JAL", CountryID: 1},
		Country: &entity.Country{ID: 1, Name: "México", ISOCode2: "MX"},
	})
	assert.Equal(t, "México", *out.CountryName)
	assert.Equal(t, "MX", *out.CountryISOCode)
	assert.Equal(t, "JAL", out.Code)
}

func TestNewTaxSystemsResponse_Sorted(t *testing.T) {
	out := NewTaxSystemsResponse()
	require.Len(t, out, len(entity.TaxSystems))
	assert.Equal(t, "CNPJ", out[0].Code)
	assert.Equal(t, "VAT", out[len(out)-1].Code)
}

func TestNewCountryListResponse_EmptyIsArray(t *testing.T) {
	out := NewCountryListResponse(nil, PageResponse{Limit: 20})
	assert.NotNil(t, out.Items)
	assert.Empty(t, out.Items)
}
