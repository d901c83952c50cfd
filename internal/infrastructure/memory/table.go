// Package memory implementa los repositorios del catálogo en memoria: soft delete e índices
// únicos parciales con la misma semántica que PostgreSQL. No es seguro para uso concurrente.
package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

type recordPtr[T any] interface {
	*T
	entity.Record
}

// unique índice único parcial (solo filas no eliminadas).
type unique[T any] struct {
	field string
	key   func(*T) string
}

// Table tabla genérica con IDs autoincrementales.
type Table[T any, PT recordPtr[T]] struct {
	entity  string
	rows    map[int64]*T
	nextID  int64
	uniques []unique[T]

	// FailWith si no es nil, toda escritura falla con este error.
	FailWith error
}

func newTable[T any, PT recordPtr[T]](name string, uniques ...unique[T]) *Table[T, PT] {
	return &Table[T, PT]{entity: name, rows: map[int64]*T{}, uniques: uniques}
}

func (m *Table[T, PT]) clone() *Table[T, PT] {
	cp := *m
	cp.rows = make(map[int64]*T, len(m.rows))
	for id, r := range m.rows {
		cp.rows[id] = copyOf(r)
	}
	return &cp
}

// Raw fila tal como está guardada, eliminada o no (nil si no existe).
func (m *Table[T, PT]) Raw(id int64) *T {
	return copyOf(m.rows[id])
}

func auditOf[T any, PT recordPtr[T]](r *T) *entity.Audit { return PT(r).AuditFields() }

func (m *Table[T, PT]) live(id int64) *T {
	r, ok := m.rows[id]
	if !ok || auditOf[T, PT](r).IsDeleted {
		return nil
	}
	return r
}

func (m *Table[T, PT]) checkUnique(item *T, selfID int64) error {
	for _, u := range m.uniques {
		k := u.key(item)
		for id, r := range m.rows {
			if id != selfID && !auditOf[T, PT](r).IsDeleted && u.key(r) == k {
				return &domain.AlreadyExistsError{Entity: m.entity, Field: u.field, Value: k}
			}
		}
	}
	return nil
}

func copyOf[T any](r *T) *T {
	if r == nil {
		return nil
	}
	cp := *r
	return &cp
}

// find filas vivas que cumplen pred, ordenadas por id y paginadas.
func (m *Table[T, PT]) find(pred func(*T) bool, opts repository.ListOptions) []*T {
	ids := make([]int64, 0, len(m.rows))
	for id, r := range m.rows {
		a := auditOf[T, PT](r)
		if a.IsDeleted || (opts.ActiveOnly && !a.IsActive) || !pred(r) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if opts.Offset > len(ids) {
		ids = nil
	} else {
		ids = ids[opts.Offset:]
	}
	if opts.Limit > 0 && len(ids) > opts.Limit {
		ids = ids[:opts.Limit]
	}
	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, copyOf(m.rows[id]))
	}
	return out
}

func (m *Table[T, PT]) all() []*T {
	return m.find(func(*T) bool { return true }, repository.ListOptions{})
}

func (m *Table[T, PT]) count(pred func(*T) bool) int64 {
	return int64(len(m.find(pred, repository.ListOptions{})))
}

func (m *Table[T, PT]) Create(_ context.Context, item *T) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if err := m.checkUnique(item, 0); err != nil {
		return err
	}
	m.nextID++
	PT(item).SetID(m.nextID)
	m.rows[m.nextID] = copyOf(item)
	return nil
}

func (m *Table[T, PT]) GetByID(_ context.Context, id int64) (*T, error) {
	return copyOf(m.live(id)), nil
}

func (m *Table[T, PT]) GetDeletedByID(_ context.Context, id int64) (*T, error) {
	r, ok := m.rows[id]
	if !ok || !auditOf[T, PT](r).IsDeleted {
		return nil, nil
	}
	return copyOf(r), nil
}

func (m *Table[T, PT]) List(_ context.Context, opts repository.ListOptions) ([]*T, error) {
	return m.find(func(*T) bool { return true }, opts), nil
}

func (m *Table[T, PT]) Update(_ context.Context, item *T) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	id := PT(item).GetID()
	if m.live(id) == nil {
		return &domain.NotFoundError{Entity: m.entity, Key: id}
	}
	if err := m.checkUnique(item, id); err != nil {
		return err
	}
	m.rows[id] = copyOf(item)
	return nil
}

func (m *Table[T, PT]) SoftDelete(_ context.Context, id int64, s entity.Stamp) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	r := m.live(id)
	if r == nil {
		return &domain.NotFoundError{Entity: m.entity, Key: id}
	}
	auditOf[T, PT](r).MarkDeleted(s)
	return nil
}

func (m *Table[T, PT]) Restore(_ context.Context, id int64, s entity.Stamp) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	r, ok := m.rows[id]
	if !ok || !auditOf[T, PT](r).IsDeleted {
		return &domain.NotFoundError{Entity: m.entity, Key: id}
	}
	if err := m.checkUnique(r, id); err != nil {
		return err
	}
	auditOf[T, PT](r).Restore(s)
	return nil
}

func (m *Table[T, PT]) HardDelete(_ context.Context, id int64) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	if m.live(id) == nil {
		return &domain.NotFoundError{Entity: m.entity, Key: id}
	}
	delete(m.rows, id)
	return nil
}

func (m *Table[T, PT]) Count(_ context.Context, activeOnly bool) (int64, error) {
	return int64(len(m.find(func(*T) bool { return true }, repository.ListOptions{ActiveOnly: activeOnly}))), nil
}

func (m *Table[T, PT]) Exists(_ context.Context, id int64) (bool, error) {
	return m.live(id) != nil, nil
}
