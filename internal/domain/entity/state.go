package entity

// State estado, provincia o departamento de un país. Llave natural: (Code, CountryID).
type State struct {
	ID        int64
	Name      string
	Code      string
	CountryID int64
	Audit
}

func (s *State) GetID() int64        { return s.ID }
func (s *State) SetID(id int64)      { s.ID = id }
func (s *State) AuditFields() *Audit { return &s.Audit }

// StatePatch campos actualizables de un estado.
type StatePatch struct {
	Name      *string
	Code      *string
	CountryID *int64
	IsActive  *bool
}

func (p StatePatch) Apply(s *State) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Code != nil {
		s.Code = NormalizeCode(*p.Code)
	}
	if p.CountryID != nil {
		s.CountryID = *p.CountryID
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}

// StateDetails estado con su país cargado (nil si el país ya no está vivo).
type StateDetails struct {
	State   *State
	Country *Country
}
