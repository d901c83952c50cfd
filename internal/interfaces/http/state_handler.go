package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// StateHandler maneja las peticiones HTTP para State.
type StateHandler struct {
	uc     *usecase.StateUseCase
	paging config.PaginationConfig
}

func NewStateHandler(uc *usecase.StateUseCase, paging config.PaginationConfig) *StateHandler {
	return &StateHandler{uc: uc, paging: paging}
}

// Create godoc
// @Summary      Crear estado/provincia
// @Tags         states
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStateRequest  true  "Datos del estado"
// @Success      201   {object}  dto.StateResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/states [post]
func (h *StateHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStateResponse(out))
}

// GetByID godoc
// @Summary      Estado con su país
// @Tags         states
// @Produce      json
// @Param        id   path  int  true  "ID del estado"
// @Success      200  {object}  dto.StateWithCountryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/states/{id} [get]
func (h *StateHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.GetDetails(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateWithCountryResponse(out))
}

// GetByCode godoc
// @Summary      Estado por código dentro de un país
// @Tags         states
// @Produce      json
// @Param        code        path   string  true  "Código del estado"
// @Param        country_id  query  int     true  "ID del país"
// @Success      200  {object}  dto.StateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/states/code/{code} [get]
func (h *StateHandler) GetByCode(c *fiber.Ctx) error {
	countryID, err := optionalID(c, "country_id")
	if err != nil {
		return fail(c, err)
	}
	if countryID == nil {
		return fail(c, domain.NewValidationError("State", "country_id", "es obligatorio"))
	}
	out, err := h.uc.GetByCode(c.UserContext(), c.Params("code"), *countryID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateResponse(out))
}

// Count godoc
// @Summary      Conteo de estados
// @Tags         states
// @Produce      json
// @Param        active_only  query  bool  false  "Solo activos"
// @Success      200  {object}  dto.CountResponse
// @Router       /api/states/count [get]
func (h *StateHandler) Count(c *fiber.Ctx) error {
	n, err := h.uc.Count(c.UserContext(), c.QueryBool("active_only", false))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// CountByCountry godoc
// @Summary      Estados vivos por país
// @Tags         states
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/states/count-by-country [get]
func (h *StateHandler) CountByCountry(c *fiber.Ctx) error {
	counts, err := h.uc.CountByCountry(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	out := make(map[string]int64, len(counts))
	for id, n := range counts {
		out[strconv.FormatInt(id, 10)] = n
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar estados
// @Tags         states
// @Produce      json
// @Param        country_id   query  int   false  "Filtrar por país"
// @Param        limit        query  int   false  "Límite"
// @Param        offset       query  int   false  "Offset"
// @Param        active_only  query  bool  false  "Solo activos"
// @Success      200  {object}  dto.StateListResponse
// @Router       /api/states [get]
func (h *StateHandler) List(c *fiber.Ctx) error {
	countryID, err := optionalID(c, "country_id")
	if err != nil {
		return fail(c, err)
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, total, err := h.uc.List(c.UserContext(), countryID, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateListResponse(items, dto.NewPageResponse(opts).WithTotal(total)))
}

// Search godoc
// @Summary      Buscar estados por nombre o código
// @Tags         states
// @Produce      json
// @Param        q           query  string  true   "Término"
// @Param        country_id  query  int     false  "Filtrar por país"
// @Success      200  {object}  dto.StateListResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/states/search [get]
func (h *StateHandler) Search(c *fiber.Ctx) error {
	countryID, err := optionalID(c, "country_id")
	if err != nil {
		return fail(c, err)
	}
	opts, err := pageOptions(c, h.paging)
	if err != nil {
		return fail(c, err)
	}
	items, err := h.uc.Search(c.UserContext(), c.Query("q"), countryID, opts)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateListResponse(items, dto.NewPageResponse(opts)))
}

// Update godoc
// @Summary      Actualizar estado
// @Tags         states
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID del estado"
// @Param        body  body  dto.UpdateStateRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.StateResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/states/{id} [put]
func (h *StateHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var in dto.UpdateStateRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), id, in, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateResponse(out))
}

// Delete godoc
// @Summary      Eliminar estado
// @Tags         states
// @Security     Bearer
// @Param        id    path   int   true   "ID del estado"
// @Param        hard  query  bool  false  "Borrado físico"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/states/{id} [delete]
func (h *StateHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Restaurar estado eliminado
// @Tags         states
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del estado"
// @Success      200  {object}  dto.StateResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/states/{id}/restore [patch]
func (h *StateHandler) Restore(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	out, err := h.uc.Restore(c.UserContext(), id, actor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.NewStateResponse(out))
}
