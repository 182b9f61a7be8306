// Package password centraliza el hashing de credenciales del panel.
//
// Usamos bcrypt con el costo por defecto; los hashes son compatibles con los
// que ya emitió el frontend legado, así que no hay migración de formato.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength es el largo mínimo aceptado para contraseñas nuevas.
const MinLength = 8

var ErrTooShort = errors.New("password: too short")

// Hash genera el hash bcrypt de una contraseña nueva. Valida el largo mínimo.
func Hash(plain string) (string, error) {
	if len(plain) < MinLength {
		return "", ErrTooShort
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify compara una contraseña en claro contra un hash almacenado.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummy es un hash válido de contenido arbitrario; se usa para igualar el
// costo de CPU cuando el usuario no existe y no filtrar existencia por timing.
const dummy = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// VerifyDummy quema un compare bcrypt contra un hash fijo y siempre falla.
func VerifyDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummy), []byte(plain))
}
