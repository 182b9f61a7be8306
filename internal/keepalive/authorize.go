package keepalive

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// AuthResult es el veredicto del Authorizer, en orden de chequeo.
type AuthResult int

const (
	AuthOK AuthResult = iota
	AuthMissingToken  // sin header Authorization o sin esquema Bearer
	AuthMisconfigured // no hay token esperado configurado
	AuthInvalidToken  // token presente pero no coincide
	AuthIPDenied      // allowlist configurada y la IP no está
)

// Authorizer valida el bearer token del scheduler y la allowlist de IPs.
type Authorizer struct {
	token     string
	allowlist []string
}

func NewAuthorizer(token string, allowlist []string) *Authorizer {
	var list []string
	for _, ip := range allowlist {
		if ip = strings.TrimSpace(ip); ip != "" {
			list = append(list, ip)
		}
	}
	return &Authorizer{token: token, allowlist: list}
}

// Authorize corre los chequeos en orden fijo: header → config → token → IP.
// Devuelve además el token provisto (si hubo) para masking/rate limiting.
func (a *Authorizer) Authorize(authHeader, ip string) (AuthResult, string) {
	if authHeader == "" || !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return AuthMissingToken, ""
	}
	provided := strings.TrimSpace(authHeader[7:])
	if a.token == "" {
		return AuthMisconfigured, provided
	}
	if subtle.ConstantTimeCompare([]byte(provided), []byte(a.token)) != 1 {
		return AuthInvalidToken, provided
	}
	if len(a.allowlist) > 0 {
		if ip == "" {
			return AuthIPDenied, provided
		}
		allowed := false
		for _, candidate := range a.allowlist {
			if candidate == ip {
				allowed = true
				break
			}
		}
		if !allowed {
			return AuthIPDenied, provided
		}
	}
	return AuthOK, provided
}

// MaskToken reduce el token a un identificador corto apto para logs:
// primeros 12 hex del sha256. Nunca se loguea el token en claro.
func MaskToken(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])[:12]
}

// ClientIP extrae la primera IP de un header x-forwarded-for.
func ClientIP(forwardedFor string) string {
	if forwardedFor == "" {
		return ""
	}
	first, _, _ := strings.Cut(forwardedFor, ",")
	return strings.TrimSpace(first)
}
