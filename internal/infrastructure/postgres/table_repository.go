package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// auditColumns columnas de auditoría comunes a todas las tablas, en orden de Scan.
var auditColumns = []string{
	"is_active", "is_deleted", "created_at", "created_by",
	"updated_at", "updated_by", "deleted_at", "deleted_by",
}

// recordPtr restringe PT a *T que implementa entity.Record.
type recordPtr[T any] interface {
	*T
	entity.Record
}

// uniqueKey describe un índice único parcial: qué campo de dominio protege y cómo leer su valor.
type uniqueKey[T any] struct {
	field string
	value func(*T) any
}

// table metadatos de mapeo fila <-> entidad. fields excluye id y auditoría.
type table[T any] struct {
	name    string
	entity  string
	fields  []string
	dest    func(*T) []any
	values  func(*T) []any
	uniques map[string]uniqueKey[T]
}

// tableRepo CRUD genérico con soft delete. Las lecturas excluyen filas eliminadas salvo GetDeletedByID.
type tableRepo[T any, PT recordPtr[T]] struct {
	q Querier
	t table[T]
}

var _ repository.CRUDRepository[entity.State] = (*tableRepo[entity.State, *entity.State])(nil)

func newTableRepo[T any, PT recordPtr[T]](q Querier, t table[T]) *tableRepo[T, PT] {
	return &tableRepo[T, PT]{q: q, t: t}
}

func (r *tableRepo[T, PT]) columns() string {
	cols := make([]string, 0, 1+len(r.t.fields)+len(auditColumns))
	cols = append(cols, "id")
	cols = append(cols, r.t.fields...)
	cols = append(cols, auditColumns...)
	return strings.Join(cols, ", ")
}

func (r *tableRepo[T, PT]) scan(row pgx.Row) (*T, error) {
	var item T
	p := PT(&item)
	a := p.AuditFields()
	var id int64
	dest := make([]any, 0, 1+len(r.t.fields)+len(auditColumns))
	dest = append(dest, &id)
	dest = append(dest, r.t.dest(&item)...)
	dest = append(dest, &a.IsActive, &a.IsDeleted, &a.CreatedAt, &a.CreatedBy,
		&a.UpdatedAt, &a.UpdatedBy, &a.DeletedAt, &a.DeletedBy)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.SetID(id)
	return &item, nil
}

// findOne devuelve (nil, nil) si no hay fila.
func (r *tableRepo[T, PT]) findOne(ctx context.Context, f *filter) (*T, error) {
	query := "SELECT " + r.columns() + " FROM " + r.t.name + f.where() + " ORDER BY id LIMIT 1"
	item, err := r.scan(r.q.QueryRow(ctx, query, f.args...))
	if isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", r.t.name, err)
	}
	return item, nil
}

// find lista con orden estable por id y paginación offset/limit (limit <= 0: sin límite).
func (r *tableRepo[T, PT]) find(ctx context.Context, f *filter, opts repository.ListOptions) ([]*T, error) {
	f.activeOnly(opts.ActiveOnly)
	query := "SELECT " + r.columns() + " FROM " + r.t.name + f.where() + " ORDER BY id"
	if opts.Limit > 0 {
		query += " LIMIT " + f.arg(opts.Limit)
	}
	if opts.Offset > 0 {
		query += " OFFSET " + f.arg(opts.Offset)
	}
	rows, err := r.q.Query(ctx, query, f.args...)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.t.name, err)
	}
	defer rows.Close()

	var list []*T
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", r.t.name, err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

func (r *tableRepo[T, PT]) count(ctx context.Context, f *filter) (int64, error) {
	var n int64
	query := "SELECT COUNT(*) FROM " + r.t.name + f.where()
	if err := r.q.QueryRow(ctx, query, f.args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.t.name, err)
	}
	return n, nil
}

// writeErr traduce violaciones de índice único a AlreadyExistsError. item puede ser nil (restore).
func (r *tableRepo[T, PT]) writeErr(op string, err error, item *T) error {
	if constraint, ok := uniqueViolation(err); ok {
		key, known := r.t.uniques[constraint]
		if !known {
			return &domain.AlreadyExistsError{Entity: r.t.entity, Field: constraint}
		}
		var value any
		if item != nil {
			value = key.value(item)
		}
		return &domain.AlreadyExistsError{Entity: r.t.entity, Field: key.field, Value: value}
	}
	return fmt.Errorf("%s %s: %w", op, r.t.name, err)
}

func (r *tableRepo[T, PT]) notFound(id int64) error {
	return &domain.NotFoundError{Entity: r.t.entity, Key: id}
}

// Create inserta la fila con su auditoría y asigna el ID generado.
func (r *tableRepo[T, PT]) Create(ctx context.Context, item *T) error {
	p := PT(item)
	a := p.AuditFields()
	cols := make([]string, 0, len(r.t.fields)+6)
	cols = append(cols, r.t.fields...)
	cols = append(cols, "is_active", "is_deleted", "created_at", "created_by", "updated_at", "updated_by")
	vals := append(r.t.values(item), a.IsActive, a.IsDeleted, a.CreatedAt, a.CreatedBy, a.UpdatedAt, a.UpdatedBy)
	ph := make([]string, len(vals))
	for i := range vals {
		ph[i] = "$" + strconv.Itoa(i+1)
	}
	query := "INSERT INTO " + r.t.name + " (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.Join(ph, ", ") + ") RETURNING id"
	var id int64
	if err := r.q.QueryRow(ctx, query, vals...).Scan(&id); err != nil {
		return r.writeErr("insert", err, item)
	}
	p.SetID(id)
	return nil
}

func (r *tableRepo[T, PT]) GetByID(ctx context.Context, id int64) (*T, error) {
	return r.findOne(ctx, live().eq("id", id))
}

// GetDeletedByID busca solo entre filas con soft delete.
func (r *tableRepo[T, PT]) GetDeletedByID(ctx context.Context, id int64) (*T, error) {
	return r.findOne(ctx, deleted().eq("id", id))
}

func (r *tableRepo[T, PT]) List(ctx context.Context, opts repository.ListOptions) ([]*T, error) {
	return r.find(ctx, live(), opts)
}

// Update reescribe los campos de dominio, is_active y el sello de modificación de una fila viva.
func (r *tableRepo[T, PT]) Update(ctx context.Context, item *T) error {
	p := PT(item)
	a := p.AuditFields()
	vals := append([]any{p.GetID()}, r.t.values(item)...)
	vals = append(vals, a.IsActive, a.UpdatedAt, a.UpdatedBy)
	sets := make([]string, 0, len(r.t.fields)+3)
	for i, col := range append(append([]string{}, r.t.fields...), "is_active", "updated_at", "updated_by") {
		sets = append(sets, col+" = $"+strconv.Itoa(i+2))
	}
	query := "UPDATE " + r.t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = $1 AND " + liveClause
	tag, err := r.q.Exec(ctx, query, vals...)
	if err != nil {
		return r.writeErr("update", err, item)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(p.GetID())
	}
	return nil
}

// SoftDelete marca la fila como eliminada e inactiva con su sello.
func (r *tableRepo[T, PT]) SoftDelete(ctx context.Context, id int64, stamp entity.Stamp) error {
	query := "UPDATE " + r.t.name + ` SET is_deleted = true, is_active = false, deleted_at = $2, deleted_by = $3
		WHERE id = $1 AND ` + liveClause
	tag, err := r.q.Exec(ctx, query, id, stamp.At, stamp.By)
	if err != nil {
		return r.writeErr("soft delete", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}
	return nil
}

// Restore revierte el soft delete; la llave natural puede chocar con una fila viva.
func (r *tableRepo[T, PT]) Restore(ctx context.Context, id int64, stamp entity.Stamp) error {
	query := "UPDATE " + r.t.name + ` SET is_deleted = false, is_active = true, deleted_at = NULL, deleted_by = NULL,
		updated_at = $2, updated_by = $3 WHERE id = $1 AND is_deleted = true`
	tag, err := r.q.Exec(ctx, query, id, stamp.At, stamp.By)
	if err != nil {
		return r.writeErr("restore", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}
	return nil
}

// HardDelete borra físicamente una fila viva; una fila ya eliminada cuenta como inexistente.
func (r *tableRepo[T, PT]) HardDelete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, "DELETE FROM "+r.t.name+" WHERE id = $1 AND is_deleted = false", id)
	if err != nil {
		return r.writeErr("delete", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return r.notFound(id)
	}
	return nil
}

func (r *tableRepo[T, PT]) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return r.count(ctx, live().activeOnly(activeOnly))
}

func (r *tableRepo[T, PT]) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.count(ctx, live().eq("id", id))
	return n > 0, err
}

// groupCounts ejecuta un "SELECT clave, COUNT(*) ... GROUP BY" y lo vuelca en un mapa.
func groupCounts[K comparable](ctx context.Context, q Querier, query string, args ...any) (map[K]int64, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group count: %w", err)
	}
	defer rows.Close()

	out := make(map[K]int64)
	for rows.Next() {
		var (
			k K
			n int64
		)
		if err := rows.Scan(&k, &n); err != nil {
			return nil, fmt.Errorf("scan group count: %w", err)
		}
		out[k] = n
	}
	return out, rows.Err()
}
