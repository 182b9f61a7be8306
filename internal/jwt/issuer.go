// Package jwt firma y valida los tokens de acceso del panel de administración.
//
// El formato está fijado por el frontend existente: HS256 con claims planas
// userId / email / role. No usamos keystore rotativo acá; el secreto viene
// de configuración y es único por despliegue.
package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// Roles reconocidos por el panel.
const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
	RoleUser   = "USER"
)

var (
	ErrTokenInvalid = errors.New("jwt: invalid token")
	ErrNoSecret     = errors.New("jwt: secret not configured")
)

// Claims son las claims de negocio embebidas en cada token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwtv5.RegisteredClaims
}

// IsEditor indica si el rol permite editar contenido (EDITOR o ADMIN).
func (c *Claims) IsEditor() bool {
	return c.Role == RoleAdmin || c.Role == RoleEditor
}

// IsAdmin indica si el rol es ADMIN.
func (c *Claims) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// Issuer firma y valida tokens con un secreto compartido.
type Issuer struct {
	secret    []byte
	accessTTL time.Duration
}

// NewIssuer crea un Issuer. ttl define la vigencia de los tokens emitidos.
func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	if ttl <= 0 {
		ttl = 168 * time.Hour // 7d
	}
	return &Issuer{secret: []byte(secret), accessTTL: ttl}, nil
}

// Sign emite un token HS256 para el usuario dado.
func (i *Issuer) Sign(userID, email, role string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwtv5.RegisteredClaims{
			IssuedAt:  jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(now.Add(i.accessTTL)),
		},
	}
	tok := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parsea y valida un token. Devuelve las claims si es válido.
func (i *Issuer) Verify(raw string) (*Claims, error) {
	var claims Claims
	tok, err := jwtv5.ParseWithClaims(raw, &claims, func(t *jwtv5.Token) (any, error) {
		if _, ok := t.Method.(*jwtv5.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("jwt: unexpected signing method %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwtv5.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return nil, ErrTokenInvalid
	}
	return &claims, nil
}

// AccessTTL expone la vigencia configurada (para el Max-Age de la cookie).
func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}
