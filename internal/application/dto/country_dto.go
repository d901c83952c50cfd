package dto

import (
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateCountryRequest entrada para crear un país.
type CreateCountryRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=200"`
	ISOCode2     string  `json:"iso_code_2" validate:"required,len=2,alpha"`
	ISOCode3     string  `json:"iso_code_3" validate:"required,len=3,alpha"`
	NumericCode  *string `json:"numeric_code" validate:"omitnil,len=3,numeric"`
	PhoneCode    *string `json:"phone_code" validate:"omitnil,max=10"`
	CurrencyCode *string `json:"currency_code" validate:"omitnil,len=3,alpha"`
	CurrencyName *string `json:"currency_name" validate:"omitnil,max=50"`
}

func (r *CreateCountryRequest) Normalize() {
	r.Name = entity.NormalizeText(r.Name)
	r.ISOCode2 = entity.NormalizeCode(r.ISOCode2)
	r.ISOCode3 = entity.NormalizeCode(r.ISOCode3)
	r.NumericCode = nonEmpty(trimmed(r.NumericCode))
	r.PhoneCode = nonEmpty(trimmed(r.PhoneCode))
	r.CurrencyCode = nonEmpty(mapped(r.CurrencyCode, entity.NormalizeCode))
	r.CurrencyName = nonEmpty(trimmed(r.CurrencyName))
}

func (r *CreateCountryRequest) ToEntity(stamp entity.Stamp) *entity.Country {
	return &entity.Country{
		Name:         r.Name,
		ISOCode2:     r.ISOCode2,
		ISOCode3:     r.ISOCode3,
		NumericCode:  r.NumericCode,
		PhoneCode:    r.PhoneCode,
		CurrencyCode: r.CurrencyCode,
		CurrencyName: r.CurrencyName,
		Audit:        entity.NewAudit(stamp),
	}
}

// UpdateCountryRequest entrada para actualizar un país (campos opcionales).
type UpdateCountryRequest struct {
	Name         *string `json:"name" validate:"omitnil,min=1,max=200"`
	ISOCode2     *string `json:"iso_code_2" validate:"omitnil,len=2,alpha"`
	ISOCode3     *string `json:"iso_code_3" validate:"omitnil,len=3,alpha"`
	NumericCode  *string `json:"numeric_code" validate:"omitnil,omitempty,len=3,numeric"`
	PhoneCode    *string `json:"phone_code" validate:"omitnil,max=10"`
	CurrencyCode *string `json:"currency_code" validate:"omitnil,omitempty,len=3,alpha"`
	CurrencyName *string `json:"currency_name" validate:"omitnil,max=50"`
	IsActive     *bool   `json:"is_active"`
}

func (r *UpdateCountryRequest) Normalize() {
	r.Name = mapped(r.Name, entity.NormalizeText)
	r.ISOCode2 = mapped(r.ISOCode2, entity.NormalizeCode)
	r.ISOCode3 = mapped(r.ISOCode3, entity.NormalizeCode)
	r.NumericCode = trimmed(r.NumericCode)
	r.PhoneCode = trimmed(r.PhoneCode)
	r.CurrencyCode = mapped(r.CurrencyCode, entity.NormalizeCode)
	r.CurrencyName = trimmed(r.CurrencyName)
}

func (r *UpdateCountryRequest) Empty() bool {
	return r.Name == nil && r.ISOCode2 == nil && r.ISOCode3 == nil && r.NumericCode == nil &&
		r.PhoneCode == nil && r.CurrencyCode == nil && r.CurrencyName == nil && r.IsActive == nil
}

func (r *UpdateCountryRequest) ToPatch() entity.CountryPatch {
	return entity.CountryPatch{
		Name:         r.Name,
		ISOCode2:     r.ISOCode2,
		ISOCode3:     r.ISOCode3,
		NumericCode:  r.NumericCode,
		PhoneCode:    r.PhoneCode,
		CurrencyCode: r.CurrencyCode,
		CurrencyName: r.CurrencyName,
		IsActive:     r.IsActive,
	}
}

// CountryResponse salida de un país.
type CountryResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	ISOCode2     string  `json:"iso_code_2"`
	ISOCode3     string  `json:"iso_code_3"`
	NumericCode  *string `json:"numeric_code"`
	PhoneCode    *string `json:"phone_code"`
	CurrencyCode *string `json:"currency_code"`
	CurrencyName *string `json:"currency_name"`
	AuditResponse
}

// CountryWithStatesResponse país con el conteo de sus estados vivos.
type CountryWithStatesResponse struct {
	CountryResponse
	StatesCount int64 `json:"states_count"`
}

// CountryListResponse lista paginada de países.
type CountryListResponse struct {
	Items []CountryResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

func NewCountryResponse(c *entity.Country) CountryResponse {
	return CountryResponse{
		ID:            c.ID,
		Name:          c.Name,
		ISOCode2:      c.ISOCode2,
		ISOCode3:      c.ISOCode3,
		NumericCode:   c.NumericCode,
		PhoneCode:     c.PhoneCode,
		CurrencyCode:  c.CurrencyCode,
		CurrencyName:  c.CurrencyName,
		AuditResponse: newAuditResponse(c.Audit),
	}
}

func NewCountryWithStatesResponse(d *entity.CountryDetails) CountryWithStatesResponse {
	return CountryWithStatesResponse{CountryResponse: NewCountryResponse(d.Country), StatesCount: d.StatesCount}
}

func NewCountryListResponse(items []*entity.Country, page PageResponse) CountryListResponse {
	out := CountryListResponse{Items: make([]CountryResponse, 0, len(items)), Page: page}
	for _, c := range items {
		out.Items = append(out.Items, NewCountryResponse(c))
	}
	return out
}
