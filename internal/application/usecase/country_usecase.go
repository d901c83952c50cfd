package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const countryEntity = "Country"

// CountryUseCase catálogo de países: ISO alpha-2 y alpha-3 únicos entre filas vivas.
type CountryUseCase struct {
	base
}

func NewCountryUseCase(repos repository.Repos, tx TxRunner, events AuditPublisher) *CountryUseCase {
	return &CountryUseCase{base: newBase(repos, tx, events)}
}

func (uc *CountryUseCase) Create(ctx context.Context, in dto.CreateCountryRequest, actor *int64) (*entity.Country, error) {
	if err := uc.validate(countryEntity, &in); err != nil {
		return nil, err
	}
	stamp := uc.stamp(actor)
	country := in.ToEntity(stamp)

	err := uc.write(ctx, "crear "+countryEntity, func(r repository.Repos) error {
		if err := ensureISOFree(ctx, r, country, 0); err != nil {
			return err
		}
		return r.Countries.Create(ctx, country)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, countryEntity, ActionCreated, country.ID, stamp)
	return country, nil
}

func (uc *CountryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCountryRequest, actor *int64) (*entity.Country, error) {
	if err := uc.validate(countryEntity, &in); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, domain.NewValidationError(countryEntity, "body", "no hay campos para actualizar")
	}
	stamp := uc.stamp(actor)

	var country *entity.Country
	err := uc.write(ctx, "actualizar "+countryEntity, func(r repository.Repos) error {
		current, err := r.Countries.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &domain.NotFoundError{Entity: countryEntity, Key: id}
		}
		in.ToPatch().Apply(current)
		if err := ensureISOFree(ctx, r, current, id); err != nil {
			return err
		}
		current.Touch(stamp)
		if err := r.Countries.Update(ctx, current); err != nil {
			return err
		}
		country = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, countryEntity, ActionUpdated, id, stamp)
	return country, nil
}

// Delete soft delete por defecto. El borrado físico se rechaza mientras haya estados o empresas que lo referencien.
func (uc *CountryUseCase) Delete(ctx context.Context, id int64, hard bool, actor *int64) error {
	stamp := uc.stamp(actor)
	err := uc.write(ctx, "eliminar "+countryEntity, func(r repository.Repos) error {
		if !hard {
			return r.Countries.SoftDelete(ctx, id, stamp)
		}
		exists, err := r.Countries.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Entity: countryEntity, Key: id}
		}
		referenced, err := r.Countries.HasDependents(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return &domain.BusinessRuleError{
				Message: "No se puede eliminar el país: tiene estados o empresas asociados",
				Details: map[string]any{"country_id": id},
			}
		}
		return r.Countries.HardDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.publish(ctx, countryEntity, deleteAction(hard), id, stamp)
	return nil
}

func (uc *CountryUseCase) Restore(ctx context.Context, id int64, actor *int64) (*entity.Country, error) {
	stamp := uc.stamp(actor)
	var country *entity.Country
	err := uc.write(ctx, "restaurar "+countryEntity, func(r repository.Repos) error {
		gone, err := r.Countries.GetDeletedByID(ctx, id)
		if err != nil {
			return err
		}
		if gone == nil {
			return &domain.NotFoundError{Entity: countryEntity, Key: id}
		}
		if err := ensureISOFree(ctx, r, gone, id); err != nil {
			return err
		}
		if err := r.Countries.Restore(ctx, id, stamp); err != nil {
			return err
		}
		country, err = r.Countries.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, countryEntity, ActionRestored, id, stamp)
	return country, nil
}

func (uc *CountryUseCase) GetByID(ctx context.Context, id int64) (*entity.Country, error) {
	c, err := uc.repos.Countries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: countryEntity, Key: id}
	}
	return c, nil
}

// GetDetails país con el conteo de sus estados vivos.
func (uc *CountryUseCase) GetDetails(ctx context.Context, id int64) (*entity.CountryDetails, error) {
	c, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n, err := uc.repos.States.CountForCountry(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.CountryDetails{Country: c, StatesCount: n}, nil
}

// GetByISO resuelve alpha-2 o alpha-3 según la longitud del código.
func (uc *CountryUseCase) GetByISO(ctx context.Context, code string) (*entity.Country, error) {
	code = entity.NormalizeCode(code)
	var (
		c     *entity.Country
		err   error
		field string
	)
	switch len(code) {
	case 2:
		field = "iso_code_2"
		c, err = uc.repos.Countries.GetByISO2(ctx, code)
	case 3:
		field = "iso_code_3"
		c, err = uc.repos.Countries.GetByISO3(ctx, code)
	default:
		return nil, domain.NewValidationError(countryEntity, "iso_code", "debe tener 2 o 3 caracteres")
	}
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: countryEntity, Field: field, Key: code}
	}
	return c, nil
}

func (uc *CountryUseCase) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Country, int64, error) {
	items, err := uc.repos.Countries.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repos.Countries.Count(ctx, opts.ActiveOnly)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (uc *CountryUseCase) Search(ctx context.Context, term string, opts repository.ListOptions) ([]*entity.Country, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewValidationError(countryEntity, "q", "es obligatorio")
	}
	return uc.repos.Countries.Search(ctx, term, opts)
}

func (uc *CountryUseCase) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return uc.repos.Countries.Count(ctx, activeOnly)
}

// ListStates estados vivos del país (NotFound si el país no existe) con su total.
func (uc *CountryUseCase) ListStates(ctx context.Context, countryID int64, opts repository.ListOptions) ([]*entity.State, int64, error) {
	if _, err := uc.GetByID(ctx, countryID); err != nil {
		return nil, 0, err
	}
	items, err := uc.repos.States.ListByCountry(ctx, countryID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repos.States.CountForCountry(ctx, countryID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ensureISOFree ambos códigos ISO deben estar libres entre países vivos distintos de selfID.
func ensureISOFree(ctx context.Context, r repository.Repos, c *entity.Country, selfID int64) error {
	existing, err := r.Countries.GetByISO2(ctx, c.ISOCode2)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &domain.AlreadyExistsError{Entity: countryEntity, Field: "iso_code_2", Value: c.ISOCode2}
	}
	existing, err = r.Countries.GetByISO3(ctx, c.ISOCode3)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &domain.AlreadyExistsError{Entity: countryEntity, Field: "iso_code_3", Value: c.ISOCode3}
	}
	return nil
}
