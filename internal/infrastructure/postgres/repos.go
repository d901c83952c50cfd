package postgres

import "github.com/jhoicas/catalogo-api/internal/domain/repository"

// NewRepos construye los tres repositorios sobre el mismo ejecutor (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Companies: NewCompanyRepository(q),
		Countries: NewCountryRepository(q),
		States:    NewStateRepository(q),
	}
}
