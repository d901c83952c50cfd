package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const stateEntity = "State"

// StateUseCase estados/provincias: (code, country_id) único entre filas vivas.
type StateUseCase struct {
	base
}

func NewStateUseCase(repos repository.Repos, tx TxRunner, events AuditPublisher) *StateUseCase {
	return &StateUseCase{base: newBase(repos, tx, events)}
}

func (uc *StateUseCase) Create(ctx context.Context, in dto.CreateStateRequest, actor *int64) (*entity.State, error) {
	if err := uc.validate(stateEntity, &in); err != nil {
		return nil, err
	}
	stamp := uc.stamp(actor)
	state := in.ToEntity(stamp)

	err := uc.write(ctx, "crear "+stateEntity, func(r repository.Repos) error {
		if err := requireCountry(ctx, r, state.CountryID); err != nil {
			return err
		}
		if err := ensureStateCodeFree(ctx, r, state.Code, state.CountryID, 0); err != nil {
			return err
		}
		return r.States.Create(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, stateEntity, ActionCreated, state.ID, stamp)
	return state, nil
}

// Update no permite mover a otro país un estado referenciado por empresas vivas.
func (uc *StateUseCase) Update(ctx context.Context, id int64, in dto.UpdateStateRequest, actor *int64) (*entity.State, error) {
	if err := uc.validate(stateEntity, &in); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, domain.NewValidationError(stateEntity, "body", "no hay campos para actualizar")
	}
	stamp := uc.stamp(actor)

	var state *entity.State
	err := uc.write(ctx, "actualizar "+stateEntity, func(r repository.Repos) error {
		current, err := r.States.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &domain.NotFoundError{Entity: stateEntity, Key: id}
		}
		if in.CountryID != nil && *in.CountryID != current.CountryID {
			if err := requireCountry(ctx, r, *in.CountryID); err != nil {
				return err
			}
			n, err := r.Companies.CountByState(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return &domain.BusinessRuleError{
					Message: "No se puede cambiar el país de un estado con empresas asociadas",
					Details: map[string]any{"state_id": id, "companies": n},
				}
			}
		}
		prevCode, prevCountry := current.Code, current.CountryID
		in.ToPatch().Apply(current)
		if current.Code != prevCode || current.CountryID != prevCountry {
			if err := ensureStateCodeFree(ctx, r, current.Code, current.CountryID, id); err != nil {
				return err
			}
		}
		current.Touch(stamp)
		if err := r.States.Update(ctx, current); err != nil {
			return err
		}
		state = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, stateEntity, ActionUpdated, id, stamp)
	return state, nil
}

// Delete soft delete por defecto. El borrado físico se rechaza mientras haya empresas que lo referencien.
func (uc *StateUseCase) Delete(ctx context.Context, id int64, hard bool, actor *int64) error {
	stamp := uc.stamp(actor)
	err := uc.write(ctx, "eliminar "+stateEntity, func(r repository.Repos) error {
		if !hard {
			return r.States.SoftDelete(ctx, id, stamp)
		}
		exists, err := r.States.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return &domain.NotFoundError{Entity: stateEntity, Key: id}
		}
		referenced, err := r.States.HasDependents(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return &domain.BusinessRuleError{
				Message: "No se puede eliminar el estado: tiene empresas asociadas",
				Details: map[string]any{"state_id": id},
			}
		}
		return r.States.HardDelete(ctx, id)
	})
	if err != nil {
		return err
	}
	uc.publish(ctx, stateEntity, deleteAction(hard), id, stamp)
	return nil
}

func (uc *StateUseCase) Restore(ctx context.Context, id int64, actor *int64) (*entity.State, error) {
	stamp := uc.stamp(actor)
	var state *entity.State
	err := uc.write(ctx, "restaurar "+stateEntity, func(r repository.Repos) error {
		gone, err := r.States.GetDeletedByID(ctx, id)
		if err != nil {
			return err
		}
		if gone == nil {
			return &domain.NotFoundError{Entity: stateEntity, Key: id}
		}
		country, err := r.Countries.GetByID(ctx, gone.CountryID)
		if err != nil {
			return err
		}
		if country == nil {
			return &domain.BusinessRuleError{
				Message: "No se puede restaurar: el país del estado está eliminado",
				Details: map[string]any{"state_id": id, "country_id": gone.CountryID},
			}
		}
		if err := ensureStateCodeFree(ctx, r, gone.Code, gone.CountryID, id); err != nil {
			return err
		}
		if err := r.States.Restore(ctx, id, stamp); err != nil {
			return err
		}
		state, err = r.States.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, stateEntity, ActionRestored, id, stamp)
	return state, nil
}

func (uc *StateUseCase) GetByID(ctx context.Context, id int64) (*entity.State, error) {
	s, err := uc.repos.States.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Entity: stateEntity, Key: id}
	}
	return s, nil
}

// GetDetails estado con su país (nil si el país ya no está vivo).
func (uc *StateUseCase) GetDetails(ctx context.Context, id int64) (*entity.StateDetails, error) {
	s, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	country, err := uc.repos.Countries.GetByID(ctx, s.CountryID)
	if err != nil {
		return nil, err
	}
	return &entity.StateDetails{State: s, Country: country}, nil
}

func (uc *StateUseCase) GetByCode(ctx context.Context, code string, countryID int64) (*entity.State, error) {
	code = entity.NormalizeCode(code)
	s, err := uc.repos.States.GetByCodeAndCountry(ctx, code, countryID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &domain.NotFoundError{Entity: stateEntity, Field: "code", Key: fmt.Sprintf("%s (país %d)", code, countryID)}
	}
	return s, nil
}

// List estados vivos, opcionalmente de un solo país, con su total.
func (uc *StateUseCase) List(ctx context.Context, countryID *int64, opts repository.ListOptions) ([]*entity.State, int64, error) {
	if countryID == nil {
		items, err := uc.repos.States.List(ctx, opts)
		if err != nil {
			return nil, 0, err
		}
		total, err := uc.repos.States.Count(ctx, opts.ActiveOnly)
		return items, total, err
	}
	items, err := uc.repos.States.ListByCountry(ctx, *countryID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repos.States.CountForCountry(ctx, *countryID)
	return items, total, err
}

func (uc *StateUseCase) Search(ctx context.Context, term string, countryID *int64, opts repository.ListOptions) ([]*entity.State, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewValidationError(stateEntity, "q", "es obligatorio")
	}
	return uc.repos.States.Search(ctx, term, countryID, opts)
}

func (uc *StateUseCase) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return uc.repos.States.Count(ctx, activeOnly)
}

// CountByCountry conteo de estados vivos por país.
func (uc *StateUseCase) CountByCountry(ctx context.Context) (map[int64]int64, error) {
	return uc.repos.States.CountByCountry(ctx)
}

func requireCountry(ctx context.Context, r repository.Repos, countryID int64) error {
	c, err := r.Countries.GetByID(ctx, countryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NewValidationError(stateEntity, "country_id", fmt.Sprintf("el país con ID %d no existe", countryID))
	}
	return nil
}

func ensureStateCodeFree(ctx context.Context, r repository.Repos, code string, countryID, selfID int64) error {
	existing, err := r.States.GetByCodeAndCountry(ctx, code, countryID)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &domain.AlreadyExistsError{Entity: stateEntity, Field: "code", Value: code}
	}
	return nil
}
