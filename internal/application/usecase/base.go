package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// base dependencias comunes de los casos de uso: repos sobre el pool para lecturas,
// TxRunner para escrituras y publicador de auditoría.
type base struct {
	repos  repository.Repos
	tx     TxRunner
	events AuditPublisher
	now    func() time.Time
}

func newBase(repos repository.Repos, tx TxRunner, events AuditPublisher) base {
	if events == nil {
		events = nopPublisher{}
	}
	return base{repos: repos, tx: tx, events: events, now: time.Now}
}

func (b base) stamp(actor *int64) entity.Stamp {
	return entity.Stamp{At: b.now().UTC(), By: actor}
}

// write ejecuta fn en una transacción y clasifica el error resultante.
func (b base) write(ctx context.Context, op string, fn func(r repository.Repos) error) error {
	return classify(op, b.tx.Run(ctx, fn))
}

func (b base) publish(ctx context.Context, entityName, action string, id int64, s entity.Stamp) {
	_ = b.events.Publish(ctx, AuditEvent{Entity: entityName, Action: action, ID: id, ActorID: s.By, At: s.At})
}

// classify deja pasar los errores tipados del dominio (incluida la carrera en un índice único,
// que llega como AlreadyExistsError) y envuelve el resto como DataIntegrityError.
func classify(op string, err error) error {
	if err == nil || domain.IsKind(err) {
		return err
	}
	return &domain.DataIntegrityError{Message: "error al " + op, Err: err}
}

func deleteAction(hard bool) string {
	if hard {
		return ActionHardDeleted
	}
	return ActionDeleted
}

// normalizer requests con normalización previa a la validación.
type normalizer interface {
	Normalize()
}

func (b base) validate(entityName string, req normalizer) error {
	req.Normalize()
	return dto.Validate(entityName, req)
}
