package entity

import "time"

// Audit campos de ciclo de vida y auditoría compartidos por todas las entidades.
// Los IDs de actor referencian usuarios de un sistema externo (nil = anónimo).
type Audit struct {
	IsActive  bool
	IsDeleted bool
	CreatedAt time.Time
	CreatedBy *int64
	UpdatedAt time.Time
	UpdatedBy *int64
	DeletedAt *time.Time
	DeletedBy *int64
}

// Stamp par fecha + actor que se registra al crear, actualizar, eliminar o restaurar.
type Stamp struct {
	At time.Time
	By *int64
}

// Record capacidad mínima que necesita el repositorio genérico: identidad + auditoría.
type Record interface {
	GetID() int64
	SetID(id int64)
	AuditFields() *Audit
}

// NewAudit auditoría inicial de una fila recién creada.
func NewAudit(s Stamp) Audit {
	return Audit{
		IsActive:  true,
		CreatedAt: s.At,
		CreatedBy: s.By,
		UpdatedAt: s.At,
		UpdatedBy: s.By,
	}
}

// Touch registra una modificación.
func (a *Audit) Touch(s Stamp) {
	a.UpdatedAt = s.At
	a.UpdatedBy = s.By
}

// MarkDeleted aplica el soft delete: las banderas y el sello siempre van juntos.
func (a *Audit) MarkDeleted(s Stamp) {
	at := s.At
	a.IsDeleted = true
	a.IsActive = false
	a.DeletedAt = &at
	a.DeletedBy = s.By
}

// Restore revierte un soft delete.
func (a *Audit) Restore(s Stamp) {
	a.IsDeleted = false
	a.IsActive = true
	a.DeletedAt = nil
	a.DeletedBy = nil
	a.Touch(s)
}
