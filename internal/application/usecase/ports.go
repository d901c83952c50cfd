package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback; si no, Commit.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// Acciones publicadas en AuditEvent.Action.
const (
	ActionCreated     = "created"
	ActionUpdated     = "updated"
	ActionDeleted     = "deleted"
	ActionHardDeleted = "hard_deleted"
	ActionRestored    = "restored"
)

// AuditEvent evento emitido después de confirmar una escritura.
type AuditEvent struct {
	Entity  string    `json:"entity"`
	Action  string    `json:"action"`
	ID      int64     `json:"id"`
	ActorID *int64    `json:"actor_id,omitempty"`
	At      time.Time `json:"at"`
}

// AuditPublisher publica eventos de auditoría. Es best-effort: un fallo no revierte la escritura.
type AuditPublisher interface {
	Publish(ctx context.Context, ev AuditEvent) error
}

// CompanyPDFGenerator genera la ficha PDF de una empresa.
type CompanyPDFGenerator interface {
	CompanySheet(d *entity.CompanyDetails) ([]byte, error)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, AuditEvent) error { return nil }
