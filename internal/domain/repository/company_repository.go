package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CompanyFilter criterios de búsqueda avanzada. Los campos vacíos/nil no filtran.
type CompanyFilter struct {
	Term      string // nombre comercial, razón social, TIN o email (ILIKE, combinados con OR)
	CountryID *int64
	StateID   *int64
	Status    string
	TaxSystem string
}

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	CRUDRepository[entity.Company]
	GetByTIN(ctx context.Context, tin string) (*entity.Company, error)
	ListByCountry(ctx context.Context, countryID int64, opts ListOptions) ([]*entity.Company, error)
	ListByState(ctx context.Context, stateID int64, opts ListOptions) ([]*entity.Company, error)
	ListByTaxSystem(ctx context.Context, taxSystem string, opts ListOptions) ([]*entity.Company, error)
	ListByStatus(ctx context.Context, status string, opts ListOptions) ([]*entity.Company, error)
	Search(ctx context.Context, f CompanyFilter, opts ListOptions) ([]*entity.Company, error)
	CountByState(ctx context.Context, stateID int64) (int64, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
	CountByCountry(ctx context.Context) (map[string]int64, error)
	CountByTaxSystem(ctx context.Context) (map[string]int64, error)
}
