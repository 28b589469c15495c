package cfdi

import (
	"fmt"
	"regexp"
	"strings"
)

// rfcPattern: 3 letras (moral) o 4 (física), fecha AAMMDD y homoclave de 3 caracteres.
var rfcPattern = regexp.MustCompile(`^[A-ZÑ&]{3,4}[0-9]{6}[A-Z0-9]{3}$`)

// NormalizeRFC elimina espacios/guiones y pasa a mayúsculas.
func NormalizeRFC(rfc string) string {
	r := strings.ToUpper(strings.TrimSpace(rfc))
	return strings.NewReplacer(" ", "", "-", "").Replace(r)
}

// ValidateRFC valida la forma del RFC (ya normalizado o no).
func ValidateRFC(rfc string) error {
	r := NormalizeRFC(rfc)
	if r == "" {
		return fmt.Errorf("cfdi: RFC vacío")
	}
	if !rfcPattern.MatchString(r) {
		return fmt.Errorf("cfdi: RFC con formato inválido: %q", r)
	}
	return nil
}

// IsPersonaMoral indica si el RFC pertenece a una persona moral (12 caracteres).
func IsPersonaMoral(rfc string) bool {
	return len([]rune(NormalizeRFC(rfc))) == 12
}
