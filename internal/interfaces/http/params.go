package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// pathID lee un parámetro de ruta entero positivo.
func pathID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("Request", name, "debe ser un entero positivo")
	}
	return id, nil
}

// optionalID lee un query param entero positivo opcional.
func optionalID(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, domain.NewValidationError("Request", name, "debe ser un entero positivo")
	}
	return &id, nil
}

// pageOptions paginación desde la query (limit, offset, active_only).
func pageOptions(c *fiber.Ctx, paging config.PaginationConfig) (repository.ListOptions, error) {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return repository.ListOptions{}, domain.NewValidationError("Page", "query", "parámetros de paginación inválidos")
	}
	return p.ToOptions(paging.DefaultLimit, paging.MaxLimit)
}

func hardDelete(c *fiber.Ctx) bool {
	return c.QueryBool("hard", false)
}
