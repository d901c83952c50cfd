package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
)

// fail traduce un error del dominio a su respuesta HTTP.
//
//	NotFound 404 · AlreadyExists 409 · Validation 422 · BusinessRule 400 · DataIntegrity 409 · resto 500
func fail(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	if status >= fiber.StatusInternalServerError {
		c.Locals(localError, err)
	}
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	var (
		nf *domain.NotFoundError
		ae *domain.AlreadyExistsError
		ve *domain.ValidationError
		br *domain.BusinessRuleError
		di *domain.DataIntegrityError
	)
	switch {
	case errors.As(err, &nf):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: nf.Error()}
	case errors.As(err, &ae):
		return fiber.StatusConflict, dto.ErrorResponse{
			Code: "DUPLICATE", Message: ae.Error(), Details: fiber.Map{"field": ae.Field, "value": ae.Value},
		}
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity, dto.ErrorResponse{Code: "VALIDATION", Message: ve.Error(), Details: ve.Errors}
	case errors.As(err, &br):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "BUSINESS_RULE", Message: br.Message, Details: br.Details}
	case errors.As(err, &di):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DATA_INTEGRITY", Message: di.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"}
}

// ErrorHandler manejador global de Fiber: errores de Fiber (404 de ruta, 405, body demasiado grande)
// con su código; el resto pasa por el mapeo del dominio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return fail(c, err)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
