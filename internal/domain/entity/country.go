package entity

// Country país identificado por sus códigos ISO 3166-1 (alpha-2 y alpha-3, ambos únicos).
type Country struct {
	ID           int64
	Name         string
	ISOCode2     string
	ISOCode3     string
	NumericCode  *string
	PhoneCode    *string
	CurrencyCode *string
	CurrencyName *string
	Audit
}

func (c *Country) GetID() int64        { return c.ID }
func (c *Country) SetID(id int64)      { c.ID = id }
func (c *Country) AuditFields() *Audit { return &c.Audit }

// CountryPatch campos actualizables de un país.
type CountryPatch struct {
	Name         *string
	ISOCode2     *string
	ISOCode3     *string
	NumericCode  *string
	PhoneCode    *string
	CurrencyCode *string
	CurrencyName *string
	IsActive     *bool
}

func (p CountryPatch) Apply(c *Country) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ISOCode2 != nil {
		c.ISOCode2 = NormalizeCode(*p.ISOCode2)
	}
	if p.ISOCode3 != nil {
		c.ISOCode3 = NormalizeCode(*p.ISOCode3)
	}
	if p.NumericCode != nil {
		c.NumericCode = clearable(p.NumericCode)
	}
	if p.PhoneCode != nil {
		c.PhoneCode = clearable(p.PhoneCode)
	}
	if p.CurrencyCode != nil {
		code := NormalizeCode(*p.CurrencyCode)
		c.CurrencyCode = clearable(&code)
	}
	if p.CurrencyName != nil {
		c.CurrencyName = clearable(p.CurrencyName)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}

// CountryDetails país con el número de estados vivos que le pertenecen.
type CountryDetails struct {
	Country     *Country
	StatesCount int64
}
