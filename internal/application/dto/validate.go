package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los errores se reportan con el nombre JSON del campo.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("tax_system", func(fl validator.FieldLevel) bool {
		_, ok := entity.TaxSystems[entity.NormalizeCode(fl.Field().String())]
		return ok
	})
	return v
}

// Validate valida req y traduce los errores a domain.ValidationError (campo -> mensaje).
func Validate(entityName string, req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", entityName, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = message(fe)
	}
	return &domain.ValidationError{Entity: entityName, Errors: fields}
}

func message(fe validator.FieldError) string {
	text := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "min":
		if text {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		if text {
			return "debe tener como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "len":
		return "debe tener exactamente " + fe.Param() + " caracteres"
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "email":
		return "debe ser un correo válido"
	case "alpha":
		return "solo admite letras"
	case "numeric":
		return "solo admite dígitos"
	case "oneof":
		return "debe ser uno de: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "tax_system":
		return "sistema fiscal no soportado"
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

func itoa(n int) string { return strconv.Itoa(n) }

// trimmed recorta p; "" se conserva para que la capa de entidad lo interprete como borrado.
func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.TrimSpace(*p)
	return &s
}

// mapped aplica fn a un opcional presente.
func mapped(p *string, fn func(string) string) *string {
	if p == nil {
		return nil
	}
	s := fn(*p)
	return &s
}

// nonEmpty convierte "" en nil (altas: un opcional vacío es ausente).
func nonEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	return p
}
