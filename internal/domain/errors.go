package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrBusinessRule  = errors.New("regla de negocio violada")
	ErrDataIntegrity = errors.New("error de integridad de datos")
)

// NotFoundError la entidad solicitada no tiene una fila viva (no eliminada).
// Field vacío significa búsqueda por ID.
type NotFoundError struct {
	Entity string
	Field  string
	Key    any
}

func (e *NotFoundError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s con %s %v no encontrado", e.Entity, e.Field, e.Key)
	}
	return fmt.Sprintf("%s con ID %v no encontrado", e.Entity, e.Key)
}

// Is permite errors.Is(err, ErrNotFound).
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// AlreadyExistsError la escritura violaría la unicidad de una llave natural.
type AlreadyExistsError struct {
	Entity string
	Field  string
	Value  any
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s con %s %v ya existe", e.Entity, e.Field, e.Value)
}

func (e *AlreadyExistsError) Is(target error) bool { return target == ErrDuplicate }

// ValidationError uno o más campos no cumplen su restricción. Errors: campo -> mensaje.
type ValidationError struct {
	Entity string
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for f := range e.Errors {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e.Errors[f])
	}
	return fmt.Sprintf("errores de validación en %s: %s", e.Entity, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidInput }

// NewValidationError atajo para un único campo inválido.
func NewValidationError(entity, field, message string) *ValidationError {
	return &ValidationError{Entity: entity, Errors: map[string]string{field: message}}
}

// BusinessRuleError se violó una regla de coherencia entre campos o entidades.
type BusinessRuleError struct {
	Message string
	Details map[string]any
}

func (e *BusinessRuleError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Details))
	for k := range e.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, e.Details[k]))
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(parts, ", "))
}

func (e *BusinessRuleError) Is(target error) bool { return target == ErrBusinessRule }

// DataIntegrityError falla inesperada al confirmar una escritura. Err conserva la causa.
type DataIntegrityError struct {
	Message string
	Err     error
}

func (e *DataIntegrityError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

func (e *DataIntegrityError) Is(target error) bool { return target == ErrDataIntegrity }

// IsKind informa si err ya es uno de los errores tipados del dominio.
func IsKind(err error) bool {
	var (
		nf *NotFoundError
		ae *AlreadyExistsError
		ve *ValidationError
		br *BusinessRuleError
		di *DataIntegrityError
	)
	return errors.As(err, &nf) || errors.As(err, &ae) || errors.As(err, &ve) ||
		errors.As(err, &br) || errors.As(err, &di)
}
