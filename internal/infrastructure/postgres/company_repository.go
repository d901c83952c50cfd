package postgres

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

var companyTable = table[entity.Company]{
	name:   "companies",
	entity: "Company",
	fields: []string{
		"company_name", "legal_name", "tin", "tax_system", "country_id", "state_id",
		"city", "address", "postal_code", "phone", "email", "website", "status",
	},
	dest: func(c *entity.Company) []any {
		return []any{
			&c.CompanyName, &c.LegalName, &c.TIN, &c.TaxSystem, &c.CountryID, &c.StateID,
			&c.City, &c.Address, &c.PostalCode, &c.Phone, &c.Email, &c.Website, &c.Status,
		}
	},
	values: func(c *entity.Company) []any {
		return []any{
			c.CompanyName, c.LegalName, c.TIN, c.TaxSystem, c.CountryID, c.StateID,
			c.City, c.Address, c.PostalCode, c.Phone, c.Email, c.Website, c.Status,
		}
	},
	uniques: map[string]uniqueKey[entity.Company]{
		"uq_companies_tin": {field: "tin", value: func(c *entity.Company) any { return c.TIN }},
	},
}

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	*tableRepo[entity.Company, *entity.Company]
}

// NewCompanyRepository construye el adaptador de persistencia para empresas (pool o tx).
func NewCompanyRepository(q Querier) *CompanyRepo {
	return &CompanyRepo{tableRepo: newTableRepo[entity.Company, *entity.Company](q, companyTable)}
}

// GetByTIN obtiene una empresa viva por TIN (ya normalizado).
func (r *CompanyRepo) GetByTIN(ctx context.Context, tin string) (*entity.Company, error) {
	return r.findOne(ctx, live().eq("tin", tin))
}

func (r *CompanyRepo) ListByCountry(ctx context.Context, countryID int64, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(ctx, live().eq("country_id", countryID), opts)
}

func (r *CompanyRepo) ListByState(ctx context.Context, stateID int64, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(ctx, live().eq("state_id", stateID), opts)
}

func (r *CompanyRepo) ListByTaxSystem(ctx context.Context, taxSystem string, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(ctx, live().eq("tax_system", taxSystem), opts)
}

func (r *CompanyRepo) ListByStatus(ctx context.Context, status string, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(ctx, live().eq("status", status), opts)
}

// Search combina el término libre (OR entre columnas) con los filtros exactos (AND).
func (r *CompanyRepo) Search(ctx context.Context, f repository.CompanyFilter, opts repository.ListOptions) ([]*entity.Company, error) {
	q := live()
	if f.Term != "" {
		q.ilikeAny(f.Term, "company_name", "legal_name", "tin", "email")
	}
	if f.CountryID != nil {
		q.eq("country_id", *f.CountryID)
	}
	if f.StateID != nil {
		q.eq("state_id", *f.StateID)
	}
	if f.Status != "" {
		q.eq("status", f.Status)
	}
	if f.TaxSystem != "" {
		q.eq("tax_system", f.TaxSystem)
	}
	return r.find(ctx, q, opts)
}

func (r *CompanyRepo) CountByState(ctx context.Context, stateID int64) (int64, error) {
	return r.count(ctx, live().eq("state_id", stateID))
}

func (r *CompanyRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return groupCounts[string](ctx, r.q,
		`SELECT status, COUNT(*) FROM companies WHERE `+liveClause+` GROUP BY status`)
}

// CountByCountry conteo por nombre de país (solo países vivos).
func (r *CompanyRepo) CountByCountry(ctx context.Context) (map[string]int64, error) {
	const query = `
		SELECT co.name, COUNT(c.id)
		  FROM companies c
		  JOIN countries co ON co.id = c.country_id AND co.is_deleted = false
		 WHERE c.is_deleted = false
		 GROUP BY co.name`
	return groupCounts[string](ctx, r.q, query)
}

func (r *CompanyRepo) CountByTaxSystem(ctx context.Context) (map[string]int64, error) {
	return groupCounts[string](ctx, r.q,
		`SELECT tax_system, COUNT(*) FROM companies WHERE `+liveClause+` GROUP BY tax_system`)
}
