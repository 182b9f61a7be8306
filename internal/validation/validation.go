// Package validation reúne los validadores de formato compartidos entre
// servicios (slugs de contenido, emails de formularios públicos).
package validation

import "regexp"

// Slug rules:
// - Lowercase only.
// - Segments of [a-z0-9] joined by single hyphens.
// - No leading/trailing hyphen, no consecutive hyphens.
//
// Examples valid: hola, campana-2026, a-b-c. Invalid: -x, x-, a--b, MAYUS.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Chequeo permisivo de forma local@dominio.tld; la verificación real la hace
// el mail de confirmación, acá solo filtramos basura obvia.
var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidSlug indica si name sirve como slug de URL.
func ValidSlug(name string) bool {
	return slugRe.MatchString(name)
}

// ValidEmail indica si addr tiene forma de dirección de correo.
func ValidEmail(addr string) bool {
	return emailRe.MatchString(addr)
}
