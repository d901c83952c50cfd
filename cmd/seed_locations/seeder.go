package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

type seedStats struct {
	CountriesCreated int
	CountriesSkipped int
	StatesCreated    int
	StatesSkipped    int
}

func (s seedStats) String() string {
	return fmt.Sprintf("países: %d creados, %d existentes; estados: %d creados, %d existentes",
		s.CountriesCreated, s.CountriesSkipped, s.StatesCreated, s.StatesSkipped)
}

type seeder struct {
	countries *usecase.CountryUseCase
	states    *usecase.StateUseCase
	log       *logger.Logger
	actor     *int64
}

// run crea países y estados del catálogo. Los ya existentes (llave natural viva) se omiten,
// así que ejecutarlo dos veces no duplica nada.
func (s *seeder) run(ctx context.Context, cat *catalog, only map[string]bool) (seedStats, error) {
	var stats seedStats
	for _, c := range cat.Countries {
		if len(only) > 0 && !only[c.ISO2] {
			continue
		}
		country, err := s.countries.Create(ctx, c.request(), s.actor)
		switch {
		case err == nil:
			stats.CountriesCreated++
		case errors.Is(err, domain.ErrDuplicate):
			stats.CountriesSkipped++
			if country, err = s.countries.GetByISO(ctx, c.ISO2); err != nil {
				return stats, fmt.Errorf("país %s: %w", c.ISO2, err)
			}
		default:
			return stats, fmt.Errorf("país %s: %w", c.ISO2, err)
		}

		for _, st := range c.States {
			_, err := s.states.Create(ctx, st.request(country.ID), s.actor)
			switch {
			case err == nil:
				stats.StatesCreated++
			case errors.Is(err, domain.ErrDuplicate):
				stats.StatesSkipped++
			default:
				return stats, fmt.Errorf("estado %s/%s: %w", c.ISO2, st.Code, err)
			}
		}
		s.log.Debug().Str("country", country.ISOCode2).Int("states", len(c.States)).Msg("país procesado")
	}
	return stats, nil
}
