package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// PageRequest paginación para listados.
type PageRequest struct {
	Limit      int  `query:"limit"`
	Offset     int  `query:"offset"`
	ActiveOnly bool `query:"active_only"`
}

// ToOptions aplica el límite por defecto y rechaza valores fuera de rango.
func (p PageRequest) ToOptions(defLimit, maxLimit int) (repository.ListOptions, error) {
	if p.Limit == 0 {
		p.Limit = defLimit
	}
	if p.Limit < 1 || p.Limit > maxLimit {
		return repository.ListOptions{}, domain.NewValidationError("Page", "limit",
			"debe estar entre 1 y "+itoa(maxLimit))
	}
	if p.Offset < 0 {
		return repository.ListOptions{}, domain.NewValidationError("Page", "offset", "debe ser mayor o igual a 0")
	}
	return repository.ListOptions{Offset: p.Offset, Limit: p.Limit, ActiveOnly: p.ActiveOnly}, nil
}

// PageResponse metadatos de página en respuestas. Total se omite cuando el listado no lo calcula.
type PageResponse struct {
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
	Total  *int64 `json:"total,omitempty"`
}

// NewPageResponse metadatos de la página servida.
func NewPageResponse(opts repository.ListOptions) PageResponse {
	return PageResponse{Limit: opts.Limit, Offset: opts.Offset}
}

// WithTotal agrega el total de filas que cumplen el filtro.
func (p PageResponse) WithTotal(n int64) PageResponse {
	p.Total = &n
	return p
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// CountResponse conteo simple.
type CountResponse struct {
	Count int64 `json:"count"`
}

// AuditResponse campos de auditoría comunes a todas las respuestas.
type AuditResponse struct {
	IsActive  bool       `json:"is_active"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy *int64     `json:"created_by"`
	UpdatedAt time.Time  `json:"updated_at"`
	UpdatedBy *int64     `json:"updated_by"`
	DeletedAt *time.Time `json:"deleted_at"`
	DeletedBy *int64     `json:"deleted_by"`
}

func newAuditResponse(a entity.Audit) AuditResponse {
	return AuditResponse{
		IsActive:  a.IsActive,
		IsDeleted: a.IsDeleted,
		CreatedAt: a.CreatedAt,
		CreatedBy: a.CreatedBy,
		UpdatedAt: a.UpdatedAt,
		UpdatedBy: a.UpdatedBy,
		DeletedAt: a.DeletedAt,
		DeletedBy: a.DeletedBy,
	}
}
