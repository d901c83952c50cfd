package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

const companyEntity = "Company"

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	base
	pdf CompanyPDFGenerator
}

// NewCompanyUseCase construye el caso de uso. events y pdf pueden ser nil.
func NewCompanyUseCase(repos repository.Repos, tx TxRunner, events AuditPublisher, pdf CompanyPDFGenerator) *CompanyUseCase {
	return &CompanyUseCase{base: newBase(repos, tx, events), pdf: pdf}
}

// Create crea una empresa. El TIN debe estar libre y el estado (si viene) debe pertenecer al país.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest, actor *int64) (*entity.Company, error) {
	if err := uc.validate(companyEntity, &in); err != nil {
		return nil, err
	}
	stamp := uc.stamp(actor)
	company := in.ToEntity(stamp)

	err := uc.write(ctx, "crear "+companyEntity, func(r repository.Repos) error {
		if err := ensureTINFree(ctx, r, company.TIN, 0); err != nil {
			return err
		}
		if err := checkLocation(ctx, r, company.CountryID, company.StateID); err != nil {
			return err
		}
		return r.Companies.Create(ctx, company)
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, companyEntity, ActionCreated, company.ID, stamp)
	return company, nil
}

// Update aplica solo los campos presentes. La coherencia estado/país se revisa contra los valores efectivos.
func (uc *CompanyUseCase) Update(ctx context.Context, id int64, in dto.UpdateCompanyRequest, actor *int64) (*entity.Company, error) {
	if err := uc.validate(companyEntity, &in); err != nil {
		return nil, err
	}
	if in.Empty() {
		return nil, domain.NewValidationError(companyEntity, "body", "no hay campos para actualizar")
	}
	stamp := uc.stamp(actor)

	var company *entity.Company
	err := uc.write(ctx, "actualizar "+companyEntity, func(r repository.Repos) error {
		current, err := r.Companies.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return &domain.NotFoundError{Entity: companyEntity, Key: id}
		}
		if in.TIN != nil && *in.TIN != current.TIN {
			if err := ensureTINFree(ctx, r, *in.TIN, id); err != nil {
				return err
			}
		}
		if in.CountryID != nil || in.StateID != nil {
			countryID := current.CountryID
			if in.CountryID != nil {
				countryID = *in.CountryID
			}
			stateID := current.StateID
			if in.StateID != nil {
				stateID = in.StateID
			}
			if err := checkLocation(ctx, r, countryID, stateID); err != nil {
				return err
			}
		}

		in.ToPatch().Apply(current)
		current.Touch(stamp)
		if err := r.Companies.Update(ctx, current); err != nil {
			return err
		}
		company = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, companyEntity, ActionUpdated, id, stamp)
	return company, nil
}

// Delete elimina una empresa: soft delete por defecto, borrado físico si hard.
func (uc *CompanyUseCase) Delete(ctx context.Context, id int64, hard bool, actor *int64) error {
	stamp := uc.stamp(actor)
	err := uc.write(ctx, "eliminar "+companyEntity, func(r repository.Repos) error {
		if hard {
			return r.Companies.HardDelete(ctx, id)
		}
		return r.Companies.SoftDelete(ctx, id, stamp)
	})
	if err != nil {
		return err
	}
	uc.publish(ctx, companyEntity, deleteAction(hard), id, stamp)
	return nil
}

// Restore revierte un soft delete si el TIN sigue libre y país/estado siguen vivos.
func (uc *CompanyUseCase) Restore(ctx context.Context, id int64, actor *int64) (*entity.Company, error) {
	stamp := uc.stamp(actor)
	var company *entity.Company
	err := uc.write(ctx, "restaurar "+companyEntity, func(r repository.Repos) error {
		gone, err := r.Companies.GetDeletedByID(ctx, id)
		if err != nil {
			return err
		}
		if gone == nil {
			return &domain.NotFoundError{Entity: companyEntity, Key: id}
		}
		if err := ensureTINFree(ctx, r, gone.TIN, id); err != nil {
			return err
		}
		if err := requireLiveRefs(ctx, r, gone.CountryID, gone.StateID); err != nil {
			return err
		}
		if err := r.Companies.Restore(ctx, id, stamp); err != nil {
			return err
		}
		company, err = r.Companies.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.publish(ctx, companyEntity, ActionRestored, id, stamp)
	return company, nil
}

// Activate, Suspend y Deactivate son atajos sobre Update: status + is_active.
func (uc *CompanyUseCase) Activate(ctx context.Context, id int64, actor *int64) (*entity.Company, error) {
	return uc.setStatus(ctx, id, entity.CompanyStatusActive, true, actor)
}

func (uc *CompanyUseCase) Suspend(ctx context.Context, id int64, actor *int64) (*entity.Company, error) {
	return uc.setStatus(ctx, id, entity.CompanyStatusSuspended, false, actor)
}

func (uc *CompanyUseCase) Deactivate(ctx context.Context, id int64, actor *int64) (*entity.Company, error) {
	return uc.setStatus(ctx, id, entity.CompanyStatusInactive, false, actor)
}

func (uc *CompanyUseCase) setStatus(ctx context.Context, id int64, status string, active bool, actor *int64) (*entity.Company, error) {
	return uc.Update(ctx, id, dto.UpdateCompanyRequest{Status: &status, IsActive: &active}, actor)
}

// GetByID obtiene una empresa viva.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id int64) (*entity.Company, error) {
	c, err := uc.repos.Companies.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: companyEntity, Key: id}
	}
	return c, nil
}

// GetDetails empresa con país y estado (nil si ya no están vivos).
func (uc *CompanyUseCase) GetDetails(ctx context.Context, id int64) (*entity.CompanyDetails, error) {
	c, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &entity.CompanyDetails{Company: c}
	if d.Country, err = uc.repos.Countries.GetByID(ctx, c.CountryID); err != nil {
		return nil, err
	}
	if c.StateID != nil {
		if d.State, err = uc.repos.States.GetByID(ctx, *c.StateID); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// GetByTIN búsqueda por llave natural (se normaliza antes de consultar).
func (uc *CompanyUseCase) GetByTIN(ctx context.Context, tin string) (*entity.Company, error) {
	tin = entity.NormalizeCode(tin)
	c, err := uc.repos.Companies.GetByTIN(ctx, tin)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &domain.NotFoundError{Entity: companyEntity, Field: "tin", Key: tin}
	}
	return c, nil
}

// List devuelve la página y el total de empresas vivas.
func (uc *CompanyUseCase) List(ctx context.Context, opts repository.ListOptions) ([]*entity.Company, int64, error) {
	items, err := uc.repos.Companies.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repos.Companies.Count(ctx, opts.ActiveOnly)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (uc *CompanyUseCase) ListByCountry(ctx context.Context, countryID int64, opts repository.ListOptions) ([]*entity.Company, error) {
	return uc.repos.Companies.ListByCountry(ctx, countryID, opts)
}

// ListByState incluye el total de empresas vivas del estado.
func (uc *CompanyUseCase) ListByState(ctx context.Context, stateID int64, opts repository.ListOptions) ([]*entity.Company, int64, error) {
	items, err := uc.repos.Companies.ListByState(ctx, stateID, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := uc.repos.Companies.CountByState(ctx, stateID)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (uc *CompanyUseCase) ListByTaxSystem(ctx context.Context, taxSystem string, opts repository.ListOptions) ([]*entity.Company, error) {
	taxSystem = entity.NormalizeCode(taxSystem)
	if _, ok := entity.TaxSystems[taxSystem]; !ok {
		return nil, domain.NewValidationError(companyEntity, "tax_system", "sistema fiscal no soportado")
	}
	return uc.repos.Companies.ListByTaxSystem(ctx, taxSystem, opts)
}

func (uc *CompanyUseCase) ListByStatus(ctx context.Context, status string, opts repository.ListOptions) ([]*entity.Company, error) {
	if !entity.IsValidCompanyStatus(status) {
		return nil, domain.NewValidationError(companyEntity, "status", fmt.Sprintf("estado %q no válido", status))
	}
	return uc.repos.Companies.ListByStatus(ctx, status, opts)
}

// Search búsqueda avanzada: término libre más filtros exactos.
func (uc *CompanyUseCase) Search(ctx context.Context, in dto.CompanySearchRequest, opts repository.ListOptions) ([]*entity.Company, error) {
	if err := uc.validate(companyEntity, &in); err != nil {
		return nil, err
	}
	return uc.repos.Companies.Search(ctx, in.ToFilter(), opts)
}

func (uc *CompanyUseCase) Count(ctx context.Context, activeOnly bool) (int64, error) {
	return uc.repos.Companies.Count(ctx, activeOnly)
}

// Statistics totales por estado, país y sistema fiscal.
func (uc *CompanyUseCase) Statistics(ctx context.Context) (*entity.CompanyStatistics, error) {
	var (
		s   entity.CompanyStatistics
		err error
	)
	if s.Total, err = uc.repos.Companies.Count(ctx, false); err != nil {
		return nil, err
	}
	if s.ByStatus, err = uc.repos.Companies.CountByStatus(ctx); err != nil {
		return nil, err
	}
	if s.ByCountry, err = uc.repos.Companies.CountByCountry(ctx); err != nil {
		return nil, err
	}
	if s.ByTaxSystem, err = uc.repos.Companies.CountByTaxSystem(ctx); err != nil {
		return nil, err
	}
	return &s, nil
}

// SheetPDF genera la ficha PDF de la empresa.
func (uc *CompanyUseCase) SheetPDF(ctx context.Context, id int64) ([]byte, *entity.Company, error) {
	if uc.pdf == nil {
		return nil, nil, fmt.Errorf("generador PDF no configurado")
	}
	d, err := uc.GetDetails(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	body, err := uc.pdf.CompanySheet(d)
	if err != nil {
		return nil, nil, fmt.Errorf("generar ficha PDF: %w", err)
	}
	return body, d.Company, nil
}

// ensureTINFree falla con AlreadyExistsError si otra empresa viva (distinta de selfID) usa el TIN.
func ensureTINFree(ctx context.Context, r repository.Repos, tin string, selfID int64) error {
	existing, err := r.Companies.GetByTIN(ctx, tin)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return &domain.AlreadyExistsError{Entity: companyEntity, Field: "tin", Value: tin}
	}
	return nil
}

// checkLocation país y estado deben existir vivos y el estado debe pertenecer al país.
func checkLocation(ctx context.Context, r repository.Repos, countryID int64, stateID *int64) error {
	country, err := r.Countries.GetByID(ctx, countryID)
	if err != nil {
		return err
	}
	if country == nil {
		return domain.NewValidationError(companyEntity, "country_id",
			fmt.Sprintf("el país con ID %d no existe", countryID))
	}
	if stateID == nil {
		return nil
	}
	state, err := r.States.GetByID(ctx, *stateID)
	if err != nil {
		return err
	}
	if state == nil {
		return domain.NewValidationError(companyEntity, "state_id",
			fmt.Sprintf("el estado con ID %d no existe", *stateID))
	}
	if state.CountryID != countryID {
		return &domain.BusinessRuleError{
			Message: "El estado no pertenece al país seleccionado",
			Details: map[string]any{
				"state_id":            state.ID,
				"state_country_id":    state.CountryID,
				"selected_country_id": countryID,
			},
		}
	}
	return nil
}

// requireLiveRefs variante de restauración: una referencia muerta es una regla de negocio, no un input inválido.
func requireLiveRefs(ctx context.Context, r repository.Repos, countryID int64, stateID *int64) error {
	err := checkLocation(ctx, r, countryID, stateID)
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		details := map[string]any{"country_id": countryID}
		if stateID != nil {
			details["state_id"] = *stateID
		}
		return &domain.BusinessRuleError{
			Message: "No se puede restaurar: referencia a un registro eliminado",
			Details: details,
		}
	}
	return err
}
