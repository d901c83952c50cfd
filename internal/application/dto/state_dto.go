package dto

import (
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CreateStateRequest entrada para crear un estado/provincia.
type CreateStateRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Code      string `json:"code" validate:"required,min=1,max=10"`
	CountryID int64  `json:"country_id" validate:"required,gt=0"`
}

func (r *CreateStateRequest) Normalize() {
	r.Name = entity.NormalizeText(r.Name)
	r.Code = entity.NormalizeCode(r.Code)
}

func (r *CreateStateRequest) ToEntity(stamp entity.Stamp) *entity.State {
	return &entity.State{
		Name:      r.Name,
		Code:      r.Code,
		CountryID: r.CountryID,
		Audit:     entity.NewAudit(stamp),
	}
}

// UpdateStateRequest entrada para actualizar un estado (campos opcionales).
type UpdateStateRequest struct {
	Name      *string `json:"name" validate:"omitnil,min=1,max=200"`
	Code      *string `json:"code" validate:"omitnil,min=1,max=10"`
	CountryID *int64  `json:"country_id" validate:"omitnil,gt=0"`
	IsActive  *bool   `json:"is_active"`
}

func (r *UpdateStateRequest) Normalize() {
	r.Name = mapped(r.Name, entity.NormalizeText)
	r.Code = mapped(r.Code, entity.NormalizeCode)
}

func (r *UpdateStateRequest) Empty() bool {
	return r.Name == nil && r.Code == nil && r.CountryID == nil && r.IsActive == nil
}

func (r *UpdateStateRequest) ToPatch() entity.StatePatch {
	return entity.StatePatch{Name: r.Name, Code: r.Code, CountryID: r.CountryID, IsActive: r.IsActive}
}

// StateResponse salida de un estado.
type StateResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CountryID int64  `json:"country_id"`
	AuditResponse
}

// StateWithCountryResponse estado con nombre y código ISO de su país.
type StateWithCountryResponse struct {
	StateResponse
	CountryName    *string `json:"country_name"`
	CountryISOCode *string `json:"country_iso_code"`
}

// StateListResponse lista paginada de estados.
type StateListResponse struct {
	Items []StateResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

func NewStateResponse(s *entity.State) StateResponse {
	return StateResponse{
		ID:            s.ID,
		Name:          s.Name,
		Code:          s.Code,
		CountryID:     s.CountryID,
		AuditResponse: newAuditResponse(s.Audit),
	}
}

func NewStateWithCountryResponse(d *entity.StateDetails) StateWithCountryResponse {
	out := StateWithCountryResponse{StateResponse: NewStateResponse(d.State)}
	if d.Country != nil {
		out.CountryName = &d.Country.Name
		out.CountryISOCode = &d.Country.ISOCode2
	}
	return out
}

func NewStateListResponse(items []*entity.State, page PageResponse) StateListResponse {
	out := StateListResponse{Items: make([]StateResponse, 0, len(items)), Page: page}
	for _, s := range items {
		out.Items = append(out.Items, NewStateResponse(s))
	}
	return out
}
