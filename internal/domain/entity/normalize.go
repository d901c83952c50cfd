package entity

import "strings"

// NormalizeCode llaves naturales y códigos (TIN, ISO, código de estado): sin espacios y en mayúsculas.
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeEmail correo en minúsculas.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeWebsite minúsculas y esquema https:// cuando no trae uno.
func NormalizeWebsite(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return s
}

// NormalizePhone conserva dígitos, '+', '-', '(', ')' y espacios.
// Ej: "+52 (555) 123-4567 ext" -> "+52 (555) 123-4567"
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || strings.ContainsRune("+-() ", r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// NormalizeText colapsa espacios repetidos.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// clearable convierte "" en nil: borrar un opcional equivale a dejarlo en NULL.
func clearable(p *string) *string {
	if p == nil || strings.TrimSpace(*p) == "" {
		return nil
	}
	return p
}
