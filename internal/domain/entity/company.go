package entity

import "strings"

// Estados administrativos de una empresa. No hay grafo de transiciones: cualquier valor es asignable.
const (
	CompanyStatusActive    = "active"
	CompanyStatusInactive  = "inactive"
	CompanyStatusSuspended = "suspended"
	CompanyStatusWaiting   = "waiting"
)

// CompanyStatuses valores válidos de Company.Status.
var CompanyStatuses = []string{
	CompanyStatusActive, CompanyStatusInactive, CompanyStatusSuspended, CompanyStatusWaiting,
}

// TaxSystems sistemas fiscales soportados (sigla -> país/región de referencia).
var TaxSystems = map[string]string{
	"RFC":   "México",
	"EIN":   "Estados Unidos",
	"NIF":   "España",
	"VAT":   "Reino Unido",
	"CUIL":  "Colombia",
	"CUIT":  "Argentina",
	"RUC":   "Perú, Ecuador",
	"RUT":   "Chile",
	"CNPJ":  "Brasil",
	"OTHER": "Otros",
}

// Company representa una empresa con datos fiscales, ubicación y contacto.
// El TIN (Tax Identification Number) es la llave natural: único entre filas no eliminadas.
type Company struct {
	ID          int64
	CompanyName string
	LegalName   *string
	TIN         string
	TaxSystem   string
	CountryID   int64
	StateID     *int64
	City        *string
	Address     *string
	PostalCode  *string
	Phone       *string
	Email       *string
	Website     *string
	Status      string // active, inactive, suspended, waiting
	Audit
}

func (c *Company) GetID() int64        { return c.ID }
func (c *Company) SetID(id int64)      { c.ID = id }
func (c *Company) AuditFields() *Audit { return &c.Audit }

// CompanyPatch campos actualizables de una empresa; nil = no se modifica.
// En los campos opcionales de texto, "" borra el valor.
type CompanyPatch struct {
	CompanyName *string
	LegalName   *string
	TIN         *string
	TaxSystem   *string
	CountryID   *int64
	StateID     *int64
	City        *string
	Address     *string
	PostalCode  *string
	Phone       *string
	Email       *string
	Website     *string
	Status      *string
	IsActive    *bool
}

// Apply asigna campo por campo los valores presentes en el patch.
func (p CompanyPatch) Apply(c *Company) {
	if p.CompanyName != nil {
		c.CompanyName = *p.CompanyName
	}
	if p.LegalName != nil {
		c.LegalName = clearable(p.LegalName)
	}
	if p.TIN != nil {
		c.TIN = NormalizeCode(*p.TIN)
	}
	if p.TaxSystem != nil {
		c.TaxSystem = NormalizeCode(*p.TaxSystem)
	}
	if p.CountryID != nil {
		c.CountryID = *p.CountryID
	}
	if p.StateID != nil {
		c.StateID = p.StateID
	}
	if p.City != nil {
		c.City = clearable(p.City)
	}
	if p.Address != nil {
		c.Address = clearable(p.Address)
	}
	if p.PostalCode != nil {
		c.PostalCode = clearable(p.PostalCode)
	}
	if p.Phone != nil {
		c.Phone = clearable(p.Phone)
	}
	if p.Email != nil {
		c.Email = clearable(p.Email)
	}
	if p.Website != nil {
		c.Website = clearable(p.Website)
	}
	if p.Status != nil {
		c.Status = strings.ToLower(*p.Status)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// CompanyDetails empresa con sus relaciones cargadas (país y estado pueden ser nil si ya no están vivos).
type CompanyDetails struct {
	Company *Company
	Country *Country
	State   *State
}

// CompanyStatistics conteos agregados de empresas no eliminadas.
type CompanyStatistics struct {
	Total       int64
	ByStatus    map[string]int64
	ByCountry   map[string]int64
	ByTaxSystem map[string]int64
}

// IsValidCompanyStatus informa si s es un estado conocido.
func IsValidCompanyStatus(s string) bool {
	for _, v := range CompanyStatuses {
		if v == s {
			return true
		}
	}
	return false
}
