package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ListOptions paginación offset/limit y filtro opcional de activos.
type ListOptions struct {
	Offset     int
	Limit      int
	ActiveOnly bool
}

// CRUDRepository contrato genérico de persistencia para cualquier entidad con ID + auditoría.
// Las lecturas por defecto excluyen filas con soft delete. GetByID devuelve (nil, nil) si no existe.
type CRUDRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id int64) (*T, error)
	GetDeletedByID(ctx context.Context, id int64) (*T, error)
	List(ctx context.Context, opts ListOptions) ([]*T, error)
	Update(ctx context.Context, item *T) error
	SoftDelete(ctx context.Context, id int64, stamp entity.Stamp) error
	Restore(ctx context.Context, id int64, stamp entity.Stamp) error
	HardDelete(ctx context.Context, id int64) error
	Count(ctx context.Context, activeOnly bool) (int64, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

// Repos agrupa los puertos de persistencia atados a un mismo ejecutor (pool o transacción).
type Repos struct {
	Companies CompanyRepository
	Countries CountryRepository
	States    StateRepository
}
