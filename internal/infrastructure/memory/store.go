package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

// Store las tres tablas del catálogo. Run serializa las escrituras; las lecturas directas
// (Repos fuera de Run) no toman el lock.
type Store struct {
	mu        sync.Mutex
	Countries *Table[entity.Country, *entity.Country]
	States    *Table[entity.State, *entity.State]
	Companies *Table[entity.Company, *entity.Company]
}

var _ usecase.TxRunner = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		Countries: newTable[entity.Country, *entity.Country]("Country",
			unique[entity.Country]{"iso_code_2", func(c *entity.Country) string { return c.ISOCode2 }},
			unique[entity.Country]{"iso_code_3", func(c *entity.Country) string { return c.ISOCode3 }},
		),
		States: newTable[entity.State, *entity.State]("State",
			unique[entity.State]{"code", func(s *entity.State) string {
				return s.Code + "|" + strconv.FormatInt(s.CountryID, 10)
			}},
		),
		Companies: newTable[entity.Company, *entity.Company]("Company",
			unique[entity.Company]{"tin", func(c *entity.Company) string { return c.TIN }},
		),
	}
}

// Repos repositorios sobre el store.
func (s *Store) Repos() repository.Repos {
	return repository.Repos{
		Companies: &companies{Table: s.Companies, s: s},
		Countries: &countries{Table: s.Countries, s: s},
		States:    &states{Table: s.States, s: s},
	}
}

// Snapshot copia profunda del contenido actual.
type Snapshot struct {
	countries *Table[entity.Country, *entity.Country]
	states    *Table[entity.State, *entity.State]
	companies *Table[entity.Company, *entity.Company]
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{countries: s.Countries.clone(), states: s.States.clone(), companies: s.Companies.clone()}
}

// Rollback vuelve al contenido del snapshot.
func (s *Store) Rollback(snap Snapshot) {
	*s.Countries = *snap.countries
	*s.States = *snap.states
	*s.Companies = *snap.companies
}

// Run ejecuta fn como una transacción: si fn falla, el store vuelve al estado previo.
func (s *Store) Run(_ context.Context, fn func(repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.Snapshot()
	if err := fn(s.Repos()); err != nil {
		s.Rollback(snap)
		return err
	}
	return nil
}

// ─────────────────────────────────────────────────────────────
// Extensiones por entidad
// ─────────────────────────────────────────────────────────────

type countries struct {
	*Table[entity.Country, *entity.Country]
	s *Store
}

func (r *countries) GetByISO2(_ context.Context, code string) (*entity.Country, error) {
	return first(r.find(func(c *entity.Country) bool { return c.ISOCode2 == code }, repository.ListOptions{})), nil
}

func (r *countries) GetByISO3(_ context.Context, code string) (*entity.Country, error) {
	return first(r.find(func(c *entity.Country) bool { return c.ISOCode3 == code }, repository.ListOptions{})), nil
}

func (r *countries) Search(_ context.Context, term string, opts repository.ListOptions) ([]*entity.Country, error) {
	return r.find(func(c *entity.Country) bool {
		return contains(c.Name, term) || contains(c.ISOCode2, term) || contains(c.ISOCode3, term)
	}, opts), nil
}

// HasDependents considera también filas eliminadas: la FK las sigue viendo.
func (r *countries) HasDependents(_ context.Context, id int64) (bool, error) {
	for _, st := range r.s.States.rows {
		if st.CountryID == id {
			return true, nil
		}
	}
	for _, c := range r.s.Companies.rows {
		if c.CountryID == id {
			return true, nil
		}
	}
	return false, nil
}

type states struct {
	*Table[entity.State, *entity.State]
	s *Store
}

func (r *states) GetByCodeAndCountry(_ context.Context, code string, countryID int64) (*entity.State, error) {
	return first(r.find(func(st *entity.State) bool {
		return st.Code == code && st.CountryID == countryID
	}, repository.ListOptions{})), nil
}

func (r *states) ListByCountry(_ context.Context, countryID int64, opts repository.ListOptions) ([]*entity.State, error) {
	return r.find(func(st *entity.State) bool { return st.CountryID == countryID }, opts), nil
}

func (r *states) Search(_ context.Context, term string, countryID *int64, opts repository.ListOptions) ([]*entity.State, error) {
	return r.find(func(st *entity.State) bool {
		if countryID != nil && st.CountryID != *countryID {
			return false
		}
		return contains(st.Name, term) || contains(st.Code, term)
	}, opts), nil
}

func (r *states) CountForCountry(_ context.Context, countryID int64) (int64, error) {
	return r.count(func(st *entity.State) bool { return st.CountryID == countryID }), nil
}

func (r *states) CountByCountry(_ context.Context) (map[int64]int64, error) {
	out := map[int64]int64{}
	for _, st := range r.all() {
		out[st.CountryID]++
	}
	return out, nil
}

func (r *states) HasDependents(_ context.Context, id int64) (bool, error) {
	for _, c := range r.s.Companies.rows {
		if c.StateID != nil && *c.StateID == id {
			return true, nil
		}
	}
	return false, nil
}

type companies struct {
	*Table[entity.Company, *entity.Company]
	s *Store
}

func (r *companies) GetByTIN(_ context.Context, tin string) (*entity.Company, error) {
	return first(r.find(func(c *entity.Company) bool { return c.TIN == tin }, repository.ListOptions{})), nil
}

func (r *companies) ListByCountry(_ context.Context, id int64, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(func(c *entity.Company) bool { return c.CountryID == id }, opts), nil
}

func (r *companies) ListByState(_ context.Context, id int64, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(func(c *entity.Company) bool { return c.StateID != nil && *c.StateID == id }, opts), nil
}

func (r *companies) ListByTaxSystem(_ context.Context, ts string, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(func(c *entity.Company) bool { return c.TaxSystem == ts }, opts), nil
}

func (r *companies) ListByStatus(_ context.Context, st string, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(func(c *entity.Company) bool { return c.Status == st }, opts), nil
}

func (r *companies) Search(_ context.Context, f repository.CompanyFilter, opts repository.ListOptions) ([]*entity.Company, error) {
	return r.find(func(c *entity.Company) bool {
		if f.Term != "" && !(contains(c.CompanyName, f.Term) || contains(deref(c.LegalName), f.Term) ||
			contains(c.TIN, f.Term) || contains(deref(c.Email), f.Term)) {
			return false
		}
		if f.CountryID != nil && c.CountryID != *f.CountryID {
			return false
		}
		if f.StateID != nil && (c.StateID == nil || *c.StateID != *f.StateID) {
			return false
		}
		if f.Status != "" && c.Status != f.Status {
			return false
		}
		return f.TaxSystem == "" || c.TaxSystem == f.TaxSystem
	}, opts), nil
}

func (r *companies) CountByState(_ context.Context, id int64) (int64, error) {
	return r.count(func(c *entity.Company) bool { return c.StateID != nil && *c.StateID == id }), nil
}

func (r *companies) CountByStatus(_ context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, c := range r.all() {
		out[c.Status]++
	}
	return out, nil
}

// CountByCountry agrupa por nombre de país vivo, como el JOIN de PostgreSQL.
func (r *companies) CountByCountry(_ context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, c := range r.all() {
		if country := r.s.Countries.live(c.CountryID); country != nil {
			out[country.Name]++
		}
	}
	return out, nil
}

func (r *companies) CountByTaxSystem(_ context.Context) (map[string]int64, error) {
	out := map[string]int64{}
	for _, c := range r.all() {
		out[c.TaxSystem]++
	}
	return out, nil
}

func first[T any](items []*T) *T {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func contains(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
