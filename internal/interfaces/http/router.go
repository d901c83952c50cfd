package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/pkg/config"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RoleAdmin rol requerido para eliminar y restaurar.
const RoleAdmin = "admin"

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC  *usecase.CompanyUseCase
	CountryUC  *usecase.CountryUseCase
	StateUC    *usecase.StateUseCase
	JWTSecret  string
	Pagination config.PaginationConfig
	Log        *logger.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	api := app.Group("/api", RequestID(), RequestLogger(log.Named("http")), ActorMiddleware(deps.JWTSecret))
	admin := RequireRole(RoleAdmin)

	countries := api.Group("/countries")
	countryHandler := NewCountryHandler(deps.CountryUC, deps.Pagination)
	countries.Get("/", countryHandler.List)
	countries.Post("/", countryHandler.Create)
	countries.Get("/search", countryHandler.Search)
	countries.Get("/count", countryHandler.Count)
	countries.Get("/iso/:code", countryHandler.GetByISO)
	countries.Get("/:id", countryHandler.GetByID)
	countries.Get("/:id/states", countryHandler.ListStates)
	countries.Put("/:id", countryHandler.Update)
	countries.Delete("/:id", admin, countryHandler.Delete)
	countries.Patch("/:id/restore", admin, countryHandler.Restore)

	states := api.Group("/states")
	stateHandler := NewStateHandler(deps.StateUC, deps.Pagination)
	states.Get("/", stateHandler.List)
	states.Post("/", stateHandler.Create)
	states.Get("/search", stateHandler.Search)
	states.Get("/code/:code", stateHandler.GetByCode)
	states.Get("/count", stateHandler.Count)
	states.Get("/count-by-country", stateHandler.CountByCountry)
	states.Get("/:id", stateHandler.GetByID)
	states.Put("/:id", stateHandler.Update)
	states.Delete("/:id", admin, stateHandler.Delete)
	states.Patch("/:id/restore", admin, stateHandler.Restore)

	// Las rutas fijas van antes de /:id.
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.Pagination)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Post("/search", companyHandler.Search)
	companies.Get("/statistics", companyHandler.Statistics)
	companies.Get("/count", companyHandler.Count)
	companies.Get("/statuses", companyHandler.Statuses)
	companies.Get("/tax-systems", companyHandler.TaxSystems)
	companies.Get("/by-tin/:tin", companyHandler.GetByTIN)
	companies.Get("/by-country/:country_id", companyHandler.ListByCountry)
	companies.Get("/by-state/:state_id", companyHandler.ListByState)
	companies.Get("/by-tax-system/:tax_system", companyHandler.ListByTaxSystem)
	companies.Get("/by-status/:status", companyHandler.ListByStatus)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Get("/:id/details", companyHandler.GetDetails)
	companies.Get("/:id/pdf", companyHandler.SheetPDF)
	companies.Put("/:id", companyHandler.Update)
	companies.Delete("/:id", admin, companyHandler.Delete)
	companies.Patch("/:id/restore", admin, companyHandler.Restore)
	companies.Patch("/:id/activate", companyHandler.Activate)
	companies.Patch("/:id/suspend", companyHandler.Suspend)
	companies.Patch("/:id/deactivate", companyHandler.Deactivate)
}
