package dto

import (
	"sort"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	CompanyName string  `json:"company_name" validate:"required,min=2,max=200"`
	LegalName   *string `json:"legal_name" validate:"omitnil,max=200"`
	TIN         string  `json:"tin" validate:"required,min=5,max=30"`
	TaxSystem   string  `json:"tax_system" validate:"required,tax_system"`
	CountryID   int64   `json:"country_id" validate:"required,gt=0"`
	StateID     *int64  `json:"state_id" validate:"omitnil,gt=0"`
	City        *string `json:"city" validate:"omitnil,max=100"`
	Address     *string `json:"address" validate:"omitnil,max=255"`
	PostalCode  *string `json:"postal_code" validate:"omitnil,max=10"`
	Phone       *string `json:"phone" validate:"omitnil,max=20"`
	Email       *string `json:"email" validate:"omitnil,omitempty,email"`
	Website     *string `json:"website" validate:"omitnil,max=150"`
	Status      string  `json:"status" validate:"omitempty,oneof=active inactive suspended waiting"`
}

// Normalize recorta y normaliza los campos antes de validar.
func (r *CreateCompanyRequest) Normalize() {
	r.CompanyName = strings.TrimSpace(r.CompanyName)
	r.LegalName = nonEmpty(trimmed(r.LegalName))
	r.TIN = entity.NormalizeCode(r.TIN)
	r.TaxSystem = entity.NormalizeCode(r.TaxSystem)
	r.City = nonEmpty(trimmed(r.City))
	r.Address = nonEmpty(trimmed(r.Address))
	r.PostalCode = nonEmpty(trimmed(r.PostalCode))
	r.Phone = nonEmpty(mapped(r.Phone, entity.NormalizePhone))
	r.Email = nonEmpty(mapped(r.Email, entity.NormalizeEmail))
	r.Website = nonEmpty(mapped(r.Website, entity.NormalizeWebsite))
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
	if r.Status == "" {
		r.Status = entity.CompanyStatusActive
	}
}

// ToEntity construye la empresa con la auditoría inicial.
func (r *CreateCompanyRequest) ToEntity(stamp entity.Stamp) *entity.Company {
	return &entity.Company{
		CompanyName: r.CompanyName,
		LegalName:   r.LegalName,
		TIN:         r.TIN,
		TaxSystem:   r.TaxSystem,
		CountryID:   r.CountryID,
		StateID:     r.StateID,
		City:        r.City,
		Address:     r.Address,
		PostalCode:  r.PostalCode,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		Status:      r.Status,
		Audit:       entity.NewAudit(stamp),
	}
}

// UpdateCompanyRequest entrada para actualizar una empresa (campos opcionales).
type UpdateCompanyRequest struct {
	CompanyName *string `json:"company_name" validate:"omitnil,min=2,max=200"`
	LegalName   *string `json:"legal_name" validate:"omitnil,max=200"`
	TIN         *string `json:"tin" validate:"omitnil,min=5,max=30"`
	TaxSystem   *string `json:"tax_system" validate:"omitnil,tax_system"`
	CountryID   *int64  `json:"country_id" validate:"omitnil,gt=0"`
	StateID     *int64  `json:"state_id" validate:"omitnil,gt=0"`
	City        *string `json:"city" validate:"omitnil,max=100"`
	Address     *string `json:"address" validate:"omitnil,max=255"`
	PostalCode  *string `json:"postal_code" validate:"omitnil,max=10"`
	Phone       *string `json:"phone" validate:"omitnil,max=20"`
	Email       *string `json:"email" validate:"omitnil,omitempty,email"`
	Website     *string `json:"website" validate:"omitnil,max=150"`
	Status      *string `json:"status" validate:"omitnil,oneof=active inactive suspended waiting"`
	IsActive    *bool   `json:"is_active"`
}

func (r *UpdateCompanyRequest) Normalize() {
	r.CompanyName = trimmed(r.CompanyName)
	r.LegalName = trimmed(r.LegalName)
	r.TIN = mapped(r.TIN, entity.NormalizeCode)
	r.TaxSystem = mapped(r.TaxSystem, entity.NormalizeCode)
	r.City = trimmed(r.City)
	r.Address = trimmed(r.Address)
	r.PostalCode = trimmed(r.PostalCode)
	r.Phone = mapped(r.Phone, entity.NormalizePhone)
	r.Email = mapped(r.Email, entity.NormalizeEmail)
	r.Website = mapped(r.Website, entity.NormalizeWebsite)
	r.Status = mapped(r.Status, func(s string) string { return strings.ToLower(strings.TrimSpace(s)) })
}

// Empty informa si el request no trae ningún campo.
func (r *UpdateCompanyRequest) Empty() bool {
	return r.CompanyName == nil && r.LegalName == nil && r.TIN == nil && r.TaxSystem == nil &&
		r.CountryID == nil && r.StateID == nil && r.City == nil && r.Address == nil &&
		r.PostalCode == nil && r.Phone == nil && r.Email == nil && r.Website == nil &&
		r.Status == nil && r.IsActive == nil
}

func (r *UpdateCompanyRequest) ToPatch() entity.CompanyPatch {
	return entity.CompanyPatch{
		CompanyName: r.CompanyName,
		LegalName:   r.LegalName,
		TIN:         r.TIN,
		TaxSystem:   r.TaxSystem,
		CountryID:   r.CountryID,
		StateID:     r.StateID,
		City:        r.City,
		Address:     r.Address,
		PostalCode:  r.PostalCode,
		Phone:       r.Phone,
		Email:       r.Email,
		Website:     r.Website,
		Status:      r.Status,
		IsActive:    r.IsActive,
	}
}

// CompanySearchRequest filtros de búsqueda avanzada; todos opcionales.
type CompanySearchRequest struct {
	SearchTerm *string `json:"search_term" validate:"omitnil,min=2"`
	CountryID  *int64  `json:"country_id" validate:"omitnil,gt=0"`
	StateID    *int64  `json:"state_id" validate:"omitnil,gt=0"`
	Status     *string `json:"status" validate:"omitnil,oneof=active inactive suspended waiting"`
	TaxSystem  *string `json:"tax_system" validate:"omitnil,tax_system"`
}

func (r *CompanySearchRequest) Normalize() {
	r.SearchTerm = trimmed(r.SearchTerm)
	r.Status = mapped(r.Status, strings.ToLower)
	r.TaxSystem = mapped(r.TaxSystem, entity.NormalizeCode)
}

func (r *CompanySearchRequest) ToFilter() repository.CompanyFilter {
	f := repository.CompanyFilter{CountryID: r.CountryID, StateID: r.StateID}
	if r.SearchTerm != nil {
		f.Term = *r.SearchTerm
	}
	if r.Status != nil {
		f.Status = *r.Status
	}
	if r.TaxSystem != nil {
		f.TaxSystem = *r.TaxSystem
	}
	return f
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID          int64   `json:"id"`
	CompanyName string  `json:"company_name"`
	LegalName   *string `json:"legal_name"`
	TIN         string  `json:"tin"`
	TaxSystem   string  `json:"tax_system"`
	CountryID   int64   `json:"country_id"`
	StateID     *int64  `json:"state_id"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	PostalCode  *string `json:"postal_code"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Website     *string `json:"website"`
	Status      string  `json:"status"`
	AuditResponse
}

// CountryRef referencia compacta a un país dentro de otra respuesta.
type CountryRef struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ISOCode2 string `json:"iso_code_2"`
	ISOCode3 string `json:"iso_code_3"`
}

// StateRef referencia compacta a un estado dentro de otra respuesta.
type StateRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// CompanyDetailsResponse empresa con país y estado anidados.
type CompanyDetailsResponse struct {
	CompanyResponse
	CountryName *string     `json:"country_name"`
	StateName   *string     `json:"state_name"`
	Country     *CountryRef `json:"country"`
	State       *StateRef   `json:"state"`
}

// CompanyListResponse lista paginada de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CompanyStatisticsResponse conteos agregados de empresas no eliminadas.
type CompanyStatisticsResponse struct {
	TotalCompanies     int64            `json:"total_companies"`
	ActiveCompanies    int64            `json:"active_companies"`
	InactiveCompanies  int64            `json:"inactive_companies"`
	SuspendedCompanies int64            `json:"suspended_companies"`
	WaitingCompanies   int64            `json:"waiting_companies"`
	ByCountry          map[string]int64 `json:"companies_by_country"`
	ByTaxSystem        map[string]int64 `json:"companies_by_tax_system"`
}

// TaxSystemResponse sistema fiscal soportado.
type TaxSystemResponse struct {
	Code   string `json:"code"`
	Region string `json:"region"`
}

// NewCompanyResponse mapea la entidad a su salida.
func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:            c.ID,
		CompanyName:   c.CompanyName,
		LegalName:     c.LegalName,
		TIN:           c.TIN,
		TaxSystem:     c.TaxSystem,
		CountryID:     c.CountryID,
		StateID:       c.StateID,
		City:          c.City,
		Address:       c.Address,
		PostalCode:    c.PostalCode,
		Phone:         c.Phone,
		Email:         c.Email,
		Website:       c.Website,
		Status:        c.Status,
		AuditResponse: newAuditResponse(c.Audit),
	}
}

// NewCompanyDetailsResponse agrega nombres y referencias de país/estado cuando están cargados.
func NewCompanyDetailsResponse(d *entity.CompanyDetails) CompanyDetailsResponse {
	out := CompanyDetailsResponse{CompanyResponse: NewCompanyResponse(d.Company)}
	if d.Country != nil {
		out.CountryName = &d.Country.Name
		out.Country = &CountryRef{
			ID: d.Country.ID, Name: d.Country.Name, ISOCode2: d.Country.ISOCode2, ISOCode3: d.Country.ISOCode3,
		}
	}
	if d.State != nil {
		out.StateName = &d.State.Name
		out.State = &StateRef{ID: d.State.ID, Name: d.State.Name, Code: d.State.Code}
	}
	return out
}

func NewCompanyListResponse(items []*entity.Company, page PageResponse) CompanyListResponse {
	out := CompanyListResponse{Items: make([]CompanyResponse, 0, len(items)), Page: page}
	for _, c := range items {
		out.Items = append(out.Items, NewCompanyResponse(c))
	}
	return out
}

func NewCompanyStatisticsResponse(s *entity.CompanyStatistics) CompanyStatisticsResponse {
	return CompanyStatisticsResponse{
		TotalCompanies:     s.Total,
		ActiveCompanies:    s.ByStatus[entity.CompanyStatusActive],
		InactiveCompanies:  s.ByStatus[entity.CompanyStatusInactive],
		SuspendedCompanies: s.ByStatus[entity.CompanyStatusSuspended],
		WaitingCompanies:   s.ByStatus[entity.CompanyStatusWaiting],
		ByCountry:          s.ByCountry,
		ByTaxSystem:        s.ByTaxSystem,
	}
}

// NewTaxSystemsResponse catálogo de sistemas fiscales ordenado por código.
func NewTaxSystemsResponse() []TaxSystemResponse {
	out := make([]TaxSystemResponse, 0, len(entity.TaxSystems))
	for code, region := range entity.TaxSystems {
		out = append(out, TaxSystemResponse{Code: code, Region: region})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
