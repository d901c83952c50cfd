package postgres

import (
	"strconv"
	"strings"
)

// liveClause predicado de soft delete: toda lectura por defecto lo incluye.
const liveClause = "is_deleted = false"

// filter acumula condiciones WHERE con placeholders posicionales de PostgreSQL.
type filter struct {
	conds []string
	args  []any
}

// live filtro base de las lecturas por defecto (excluye filas eliminadas).
func live() *filter {
	return &filter{conds: []string{liveClause}}
}

// deleted solo filas con soft delete (restauración).
func deleted() *filter {
	return &filter{conds: []string{"is_deleted = true"}}
}

// arg registra un valor y devuelve su placeholder ($n).
func (f *filter) arg(v any) string {
	f.args = append(f.args, v)
	return "$" + strconv.Itoa(len(f.args))
}

// eq agrega "col = $n".
func (f *filter) eq(col string, v any) *filter {
	f.conds = append(f.conds, col+" = "+f.arg(v))
	return f
}

// ilikeAny agrega "(c1 ILIKE $n OR c2 ILIKE $n ...)" con coincidencia por subcadena.
func (f *filter) ilikeAny(term string, cols ...string) *filter {
	p := f.arg("%" + escapeLike(term) + "%")
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = c + " ILIKE " + p
	}
	f.conds = append(f.conds, "("+strings.Join(parts, " OR ")+")")
	return f
}

// activeOnly agrega is_active = true cuando se solicita.
func (f *filter) activeOnly(on bool) *filter {
	if on {
		f.conds = append(f.conds, "is_active = true")
	}
	return f
}

func (f *filter) where() string {
	if len(f.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(f.conds, " AND ")
}
