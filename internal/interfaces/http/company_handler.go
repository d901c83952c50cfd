package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	paging config.PaginationConfig
}

// NewCompanyHandler construye el handler inyectando el caso de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, paging config.PaginationConfig) *CompanyHandler {
	return &CompanyHandler{uc: uc, paging: paging}
}

// Create godoc
// @Summary      Crear empresa
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCompanyResponse(out))
}

// GetByID godoc
// @Summary      Obtener empresa por ID
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [get]
func (h *CompanyHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyResponse(out))
}

// GetDetails godoc
// @Summary      Empresa con país y estado
// @Tags         companies
// @Produce      json
// @Param        id   path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/details [get]
func (h *CompanyHandler) GetDetails(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetDetails(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyDetailsResponse(out))
}

// GetByTIN godoc
// @Summary      Obtener empresa por TIN
// @Tags         companies
// @Produce      json
// @Param        tin  path  string  true  "Tax Identification Number"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/by-tin/{tin} [get]
func (h *CompanyHandler) GetByTIN(c *fiber.Ctx) error {
	out, err := h.uc.GetByTIN(c.UserContext(), c.Params("tin"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyResponse(out))
}

// List godoc
// @Summary      Listar empresas
// @Tags         companies
// @Produce      json
// @Param        limit        query  int   false  "Límite"   default(20)
// @Param        offset       query  int   false  "Offset"   default(0)
// @Param        active_only  query  bool  false  "Solo activas"
// @Success      200     {object}  dto.CompanyListResponse
// @Failure      422     {object}  dto.ErrorResponse
// @Router       /api/companies [get]
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, total, err := h.uc.List(c.UserContext(), opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyListResponse(items, dto.NewPageResponse(opts).WithTotal(total)))
}

// ListByCountry godoc
// @Summary      Empresas de un país
// @Tags         companies
// @Produce      json
// @Param        country_id  path   int  true   "ID del país"
// @Param        limit       query  int  false  "Límite"
// @Param        offset      query  int  false  "Offset"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies/by-country/{country_id} [get]
func (h *CompanyHandler) ListByCountry(c *fiber.Ctx) error {
	countryID, err := pathID(c, "country_id")
	if err != nil {
		return fail(c, err)
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.uc.ListByCountry(c.UserContext(), countryID, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyListResponse(items, dto.NewPageResponse(opts)))
}

// ListByTaxSystem godoc
// @Summary      Empresas por sistema fiscal
// @Tags         companies
// @Produce      json
// @Param        tax_system  path   string  true   "Sigla (RFC, RUT, CNPJ...)"
// @Param        limit       query  int     false  "Límite"
// @Param        offset      query  int     false  "Offset"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/companies/by-tax-system/{tax_system} [get]
func (h *CompanyHandler) ListByTaxSystem(c *fiber.Ctx) error {
	return h.listBy(c, func(ctx context.Context, opts repository.ListOptions) ([]*entity.Company, error) {
		return h.uc.ListByTaxSystem(ctx, c.Params("tax_system"), opts)
	})
}

// ListByStatus godoc
// @Summary      Empresas por estado operativo
// @Tags         companies
// @Produce      json
// @Param        status  path   string  true   "active, inactive, suspended o waiting"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/companies/by-status/{status} [get]
func (h *CompanyHandler) ListByStatus(c *fiber.Ctx) error {
	return h.listBy(c, func(ctx context.Context, opts repository.ListOptions) ([]*entity.Company, error) {
		return h.uc.ListByStatus(ctx, c.Params("status"), opts)
	})
}

func (h *CompanyHandler) listBy(c *fiber.Ctx, fetch func(context.Context, repository.ListOptions) ([]*entity.Company, error)) error {
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, err := fetch(c.UserContext(), opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyListResponse(items, dto.NewPageResponse(opts)))
}

// ListByState godoc
// @Summary      Empresas de un estado
// @Tags         companies
// @Produce      json
// @Param        state_id  path   int  true   "ID del estado"
// @Param        limit     query  int  false  "Límite"
// @Param        offset    query  int  false  "Offset"
// @Success      200  {object}  dto.CompanyListResponse
// @Router       /api/companies/by-state/{state_id} [get]
func (h *CompanyHandler) ListByState(c *fiber.Ctx) error {
	stateID, err := pathID(c, "state_id")
	if err != nil {
		return fail(c, err)
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, total, err := h.uc.ListByState(c.UserContext(), stateID, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyListResponse(items, dto.NewPageResponse(opts).WithTotal(total)))
}

// Search godoc
// @Summary      Búsqueda avanzada de empresas
// @Description  search_term busca en nombre, razón social, TIN y email; el resto son filtros exactos.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body    body   dto.CompanySearchRequest  true   "Filtros"
// @Param        limit   query  int                       false  "Límite"
// @Param        offset  query  int                       false  "Offset"
// @Success      200  {object}  dto.CompanyListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/companies/search [post]
func (h *CompanyHandler) Search(c *fiber.Ctx) error {
	var in dto.CompanySearchRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.uc.Search(c.UserContext(), in, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyListResponse(items, dto.NewPageResponse(opts)))
}

// Update godoc
// @Summary      Actualizar empresa
// @Description  Solo se modifican los campos enviados. En opcionales de texto "" borra el valor.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID de la empresa"
// @Param        body  body  dto.UpdateCompanyRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CompanyResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [put]
func (h *CompanyHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyResponse(out))
}

// Delete godoc
// @Summary      Eliminar empresa
// @Description  Soft delete por defecto; hard=true borra la fila.
// @Tags         companies
// @Security     Bearer
// @Param        id    path   int   true   "ID de la empresa"
// @Param        hard  query  bool  false  "Borrado físico"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id} [delete]
func (h *CompanyHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id, hardDelete(c), actor(c)); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Restore godoc
// @Summary      Restaurar empresa eliminada
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/restore [patch]
func (h *CompanyHandler) Restore(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Restore)
}

// Activate godoc
// @Summary      Activar empresa (status=active, is_active=true)
// @Tags         companies
// @Produce      json
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/activate [patch]
func (h *CompanyHandler) Activate(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Activate)
}

// Suspend godoc
// @Summary      Suspender empresa (status=suspended, is_active=false)
// @Tags         companies
// @Produce      json
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/suspend [patch]
func (h *CompanyHandler) Suspend(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Suspend)
}

// Deactivate godoc
// @Summary      Desactivar empresa (status=inactive, is_active=false)
// @Tags         companies
// @Produce      json
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/deactivate [patch]
func (h *CompanyHandler) Deactivate(c *fiber.Ctx) error {
	return h.transition(c, h.uc.Deactivate)
}

type companyTransition func(ctx context.Context, id int64, actor *int64) (*entity.Company, error)

func (h *CompanyHandler) transition(c *fiber.Ctx, fn companyTransition) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := fn(c.UserContext(), id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyResponse(out))
}

// Count godoc
// @Summary      Contar empresas
// @Tags         companies
// @Produce      json
// @Param        active_only  query  bool  false  "Solo activas"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/companies/count [get]
func (h *CompanyHandler) Count(c *fiber.Ctx) error {
	n, err := h.uc.Count(c.UserContext(), c.QueryBool("active_only", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// Statistics godoc
// @Summary      Estadísticas de empresas
// @Tags         companies
// @Produce      json
// @Success      200  {object}  dto.CompanyStatisticsResponse
// @Router       /api/companies/statistics [get]
func (h *CompanyHandler) Statistics(c *fiber.Ctx) error {
	s, err := h.uc.Statistics(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCompanyStatisticsResponse(s))
}

// Statuses godoc
// @Summary      Estados administrativos válidos
// @Tags         companies
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/companies/statuses [get]
func (h *CompanyHandler) Statuses(c *fiber.Ctx) error {
	return c.JSON(entity.CompanyStatuses)
}

// TaxSystems godoc
// @Summary      Sistemas fiscales soportados
// @Tags         companies
// @Produce      json
// @Success      200  {array}  dto.TaxSystemResponse
// @Router       /api/companies/tax-systems [get]
func (h *CompanyHandler) TaxSystems(c *fiber.Ctx) error {
	return c.JSON(dto.NewTaxSystemsResponse())
}

// SheetPDF godoc
// @Summary      Ficha PDF de la empresa
// @Tags         companies
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la empresa"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/{id}/pdf [get]
func (h *CompanyHandler) SheetPDF(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	body, company, err := h.uc.SheetPDF(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="empresa-%s.pdf"`, company.TIN))
	return c.Send(body)
}
