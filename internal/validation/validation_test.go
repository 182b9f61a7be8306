package validation

import "testing"

func TestValidSlug(t *testing.T) {
	valids := []string{"a", "hola", "campana-2026", "a-b-c", "123"}
	for _, v := range valids {
		if !ValidSlug(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}
	invalids := []string{"", "-x", "x-", "a--b", "MAYUS", "con espacio", "acentó"}
	for _, v := range invalids {
		if ValidSlug(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valids := []string{"a@b.co", "maria.perez@sakhu.org", "x+tag@sub.dominio.ar"}
	for _, v := range valids {
		if !ValidEmail(v) {
			t.Fatalf("expected valid: %q", v)
		}
	}
	invalids := []string{"", "sin-arroba", "a@b", "a @b.co", "a@b c.co"}
	for _, v := range invalids {
		if ValidEmail(v) {
			t.Fatalf("expected invalid: %q", v)
		}
	}
}
