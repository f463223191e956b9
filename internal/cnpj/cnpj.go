// Package cnpj normalizes and validates CNPJ registration keys, the login
// identifier of client organizations.
package cnpj

// Normalize strips every non-digit rune from the input.
func Normalize(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			out = append(out, r)
		}
	}
	return string(out)
}

// Valid reports whether s is exactly 14 digits. Check digits are not
// verified; registration keeps the strict-but-simple rule.
func Valid(s string) bool {
	if len(s) != 14 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
