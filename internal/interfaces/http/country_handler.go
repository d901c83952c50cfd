package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// CountryHandler maneja las peticiones HTTP para Country.
type CountryHandler struct {
	uc     *usecase.CountryUseCase
	paging config.PaginationConfig
}

func NewCountryHandler(uc *usecase.CountryUseCase, paging config.PaginationConfig) *CountryHandler {
	return &CountryHandler{uc: uc, paging: paging}
}

// Create godoc
// @Summary      Crear país
// @Tags         countries
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCountryRequest  true  "Datos del país"
// @Success      201   {object}  dto.CountryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/countries [post]
func (h *CountryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCountryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCountryResponse(out))
}

// GetByID godoc
// @Summary      País con conteo de estados
// @Tags         countries
// @Produce      json
// @Param        id   path  int  true  "ID del país"
// @Success      200  {object}  dto.CountryWithStatesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [get]
func (h *CountryHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetDetails(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryWithStatesResponse(out))
}

// GetByISO godoc
// @Summary      País por código ISO (alpha-2 o alpha-3)
// @Tags         countries
// @Produce      json
// @Param        code  path  string  true  "MX o MEX"
// @Success      200  {object}  dto.CountryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/countries/iso/{code} [get]
func (h *CountryHandler) GetByISO(c *fiber.Ctx) error {
	out, err := h.uc.GetByISO(c.UserContext(), c.Params("code"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryResponse(out))
}

// List godoc
// @Summary      Listar países
// @Tags         countries
// @Produce      json
// @Param        limit        query  int   false  "Límite"
// @Param        offset       query  int   false  "Offset"
// @Param        active_only  query  bool  false  "Solo activos"
// @Success      200  {object}  dto.CountryListResponse
// @Router       /api/countries [get]
func (h *CountryHandler) List(c *fiber.Ctx) error {
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, total, err := h.uc.List(c.UserContext(), opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryListResponse(items, dto.NewPageResponse(opts).WithTotal(total)))
}

// Count godoc
// @Summary      Conteo de países
// @Tags         countries
// @Produce      json
// @Param        active_only  query  bool  false  "Solo activos"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/countries/count [get]
func (h *CountryHandler) Count(c *fiber.Ctx) error {
	n, err := h.uc.Count(c.UserContext(), c.QueryBool("active_only", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// Search godoc
// @Summary      Buscar países por nombre o código ISO
// @Tags         countries
// @Produce      json
// @Param        q       query  string  true   "Término"
// @Param        limit   query  int     false  "Límite"
// @Param        offset  query  int     false  "Offset"
// @Success      200  {object}  dto.CountryListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/countries/search [get]
func (h *CountryHandler) Search(c *fiber.Ctx) error {
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.uc.Search(c.UserContext(), c.Query("q"), opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryListResponse(items, dto.NewPageResponse(opts)))
}

// ListStates godoc
// @Summary      Estados de un país
// @Tags         countries
// @Produce      json
// @Param        id      path   int  true   "ID del país"
// @Param        limit   query  int  false  "Límite"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {object}  dto.StateListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id}/states [get]
func (h *CountryHandler) ListStates(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, total, err := h.uc.ListStates(c.UserContext(), id, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateListResponse(items, dto.NewPageResponse(opts).WithTotal(total)))
}

// Update godoc
// @Summary      Actualizar país
// @Tags         countries
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "ID del país"
// @Param        body  body  dto.UpdateCountryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CountryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [put]
func (h *CountryHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateCountryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryResponse(out))
}

// Delete godoc
// @Summary      Eliminar país
// @Description  Soft delete por defecto; hard=true se rechaza si hay estados o empresas asociados.
// @Tags         countries
// @Security     Bearer
// @Param        id    path   int   true   "ID del país"
// @Param        hard  query  bool  false  "Borrado físico"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/countries/{id} [delete]
func (h *CountryHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Restaurar país eliminado
// @Tags         countries
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del país"
// @Success      200  {object}  dto.CountryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/countries/{id}/restore [patch]
func (h *CountryHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Restore(c.UserContext(), id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewCountryResponse(out))
}
