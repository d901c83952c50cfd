package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.StateRepository = (*StateRepo)(nil)

var stateTable = table[entity.State]{
	name:   "states",
	entity: "State",
	fields: []string{"name", "code", "country_id"},
	dest: func(s *entity.State) []any {
		return []any{&s.Name, &s.Code, &s.CountryID}
	},
	values: func(s *entity.State) []any {
		return []any{s.Name, s.Code, s.CountryID}
	},
	uniques: map[string]uniqueKey[entity.State]{
		"uq_states_code_country": {
			field: "code",
			value: func(s *entity.State) any { return fmt.Sprintf("%s (país %d)", s.Code, s.CountryID) },
		},
	},
}

// StateRepo implementación del puerto StateRepository sobre PostgreSQL.
type StateRepo struct {
	*tableRepo[entity.State, *entity.State]
}

// NewStateRepository construye el adaptador de persistencia para estados.
func NewStateRepository(q Querier) *StateRepo {
	return &StateRepo{tableRepo: newTableRepo[entity.State, *entity.State](q, stateTable)}
}

func (r *StateRepo) GetByCodeAndCountry(ctx context.Context, code string, countryID int64) (*entity.State, error) {
	return r.findOne(ctx, live().eq("code", code).eq("country_id", countryID))
}

func (r *StateRepo) ListByCountry(ctx context.Context, countryID int64, opts repository.ListOptions) ([]*entity.State, error) {
	return r.find(ctx, live().eq("country_id", countryID), opts)
}

// Search por nombre o código, opcionalmente acotado a un país.
func (r *StateRepo) Search(ctx context.Context, term string, countryID *int64, opts repository.ListOptions) ([]*entity.State, error) {
	q := live().ilikeAny(term, "name", "code")
	if countryID != nil {
		q.eq("country_id", *countryID)
	}
	return r.find(ctx, q, opts)
}

func (r *StateRepo) CountForCountry(ctx context.Context, countryID int64) (int64, error) {
	return r.count(ctx, live().eq("country_id", countryID))
}

func (r *StateRepo) CountByCountry(ctx context.Context) (map[int64]int64, error) {
	return groupCounts[int64](ctx, r.q,
		`SELECT country_id, COUNT(*) FROM states WHERE `+liveClause+` GROUP BY country_id`)
}

func (r *StateRepo) HasDependents(ctx context.Context, id int64) (bool, error) {
	var found bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM companies WHERE state_id = $1)`, id).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check state dependents: %w", err)
	}
	return found, nil
}
