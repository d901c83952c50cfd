package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// StateRepository puerto de persistencia para State.
type StateRepository interface {
	CRUDRepository[entity.State]
	GetByCodeAndCountry(ctx context.Context, code string, countryID int64) (*entity.State, error)
	ListByCountry(ctx context.Context, countryID int64, opts ListOptions) ([]*entity.State, error)
	Search(ctx context.Context, term string, countryID *int64, opts ListOptions) ([]*entity.State, error)
	CountForCountry(ctx context.Context, countryID int64) (int64, error)
	CountByCountry(ctx context.Context) (map[int64]int64, error)
	// HasDependents informa si alguna empresa (incluso eliminada) referencia al estado.
	HasDependents(ctx context.Context, id int64) (bool, error)
}
