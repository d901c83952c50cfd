package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

func sampleCompany() *entity.Company {
	web := "https://abc.mx"
	stateID := int64(2)
	return &entity.Company{
		ID: 1, CompanyName: "Comercial ABC", TIN: "ABC010101XYZ", TaxSystem: "RFC",
		CountryID: 1, StateID: &stateID, Website: &web, Status: entity.CompanyStatusActive,
		Audit: entity.NewAudit(entity.Stamp{At: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}),
	}
}

func TestCompanySheet(t *testing.T) {
	g := NewMarotoPDFGenerator()
	d := &entity.CompanyDetails{
		Company: sampleCompany(),
		Country: &entity.Country{ID: 1, Name: "México", ISOCode2: "MX", ISOCode3: "MEX"},
		State:   &entity.State{ID: 2, Name: "Jalisco", Code: "JAL", CountryID: 1},
	}

	body, err := g.CompanySheet(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestCompanySheet_WithoutRelations(t *testing.T) {
	body, err := NewMarotoPDFGenerator().CompanySheet(&entity.CompanyDetails{Company: sampleCompany()})
	require.NoError(t, err)
	assert.NotEmpty(t, body)

	_, err = NewMarotoPDFGenerator().CompanySheet(nil)
	assert.Error(t, err)
}

func TestSheetHelpers(t *testing.T) {
	c := sampleCompany()
	assert.Equal(t, "https://abc.mx", qrData(c))
	c.Website = nil
	assert.Equal(t, "RFC:ABC010101XYZ", qrData(c))

	assert.Equal(t, "SUSPENDIDA", statusLabel(entity.CompanyStatusSuspended))
	assert.Equal(t, "OTRO", statusLabel("otro"))

	assert.Equal(t, "-", orDash(nil))
	empty := ""
	assert.Equal(t, "-", orDash(&empty))

	lines := fiscalLines(c)
	assert.Equal(t, "RFC (México)", lines[1].value)

	loc := locationLines(&entity.CompanyDetails{Company: c})
	assert.Equal(t, "ID 1", loc[0].value)
	assert.Equal(t, "-", loc[1].value)
}
