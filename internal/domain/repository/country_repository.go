package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CountryRepository puerto de persistencia para Country.
type CountryRepository interface {
	CRUDRepository[entity.Country]
	GetByISO2(ctx context.Context, code string) (*entity.Country, error)
	GetByISO3(ctx context.Context, code string) (*entity.Country, error)
	Search(ctx context.Context, term string, opts ListOptions) ([]*entity.Country, error)
	// HasDependents informa si algún estado o empresa (incluso eliminados) referencia al país.
	HasDependents(ctx context.Context, id int64) (bool, error)
}
