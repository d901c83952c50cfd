package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CountryRepository = (*CountryRepo)(nil)

var countryTable = table[entity.Country]{
	name:   "countries",
	entity: "Country",
	fields: []string{
		"name", "iso_code_2", "iso_code_3", "numeric_code", "phone_code", "currency_code", "currency_name",
	},
	dest: func(c *entity.Country) []any {
		return []any{&c.Name, &c.ISOCode2, &c.ISOCode3, &c.NumericCode, &c.PhoneCode, &c.CurrencyCode, &c.CurrencyName}
	},
	values: func(c *entity.Country) []any {
		return []any{c.Name, c.ISOCode2, c.ISOCode3, c.NumericCode, c.PhoneCode, c.CurrencyCode, c.CurrencyName}
	},
	uniques: map[string]uniqueKey[entity.Country]{
		"uq_countries_iso_code_2": {field: "iso_code_2", value: func(c *entity.Country) any { return c.ISOCode2 }},
		"uq_countries_iso_code_3": {field: "iso_code_3", value: func(c *entity.Country) any { return c.ISOCode3 }},
	},
}

// CountryRepo implementación del puerto CountryRepository sobre PostgreSQL.
type CountryRepo struct {
	*tableRepo[entity.Country, *entity.Country]
}

// NewCountryRepository construye el adaptador de persistencia para países.
func NewCountryRepository(q Querier) *CountryRepo {
	return &CountryRepo{tableRepo: newTableRepo[entity.Country, *entity.Country](q, countryTable)}
}

func (r *CountryRepo) GetByISO2(ctx context.Context, code string) (*entity.Country, error) {
	return r.findOne(ctx, live().eq("iso_code_2", code))
}

func (r *CountryRepo) GetByISO3(ctx context.Context, code string) (*entity.Country, error) {
	return r.findOne(ctx, live().eq("iso_code_3", code))
}

// Search por nombre o cualquiera de los códigos ISO.
func (r *CountryRepo) Search(ctx context.Context, term string, opts repository.ListOptions) ([]*entity.Country, error) {
	return r.find(ctx, live().ilikeAny(term, "name", "iso_code_2", "iso_code_3"), opts)
}

func (r *CountryRepo) HasDependents(ctx context.Context, id int64) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM states WHERE country_id = $1)
		    OR EXISTS (SELECT 1 FROM companies WHERE country_id = $1)`
	var found bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("check country dependents: %w", err)
	}
	return found, nil
}
