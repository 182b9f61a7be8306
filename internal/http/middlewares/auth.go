package middlewares

import (
	"net/http"
	"strings"

	"github.com/sakhu-org/sakhu-backend/internal/http/errors"
	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
)

// bearerOrCookie saca el token crudo del header Authorization o, si no hay,
// de la cookie de sesión (el frontend del sitio usa cookie httpOnly).
func bearerOrCookie(r *http.Request, cookieName string) string {
	ah := strings.TrimSpace(r.Header.Get("Authorization"))
	if ah != "" && strings.HasPrefix(strings.ToLower(ah), "bearer ") {
		return strings.TrimSpace(ah[len("Bearer "):])
	}
	if cookieName != "" {
		if c, err := r.Cookie(cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

// RequireAuth valida el JWT (header o cookie) y guarda las claims en el
// contexto. Token ausente o inválido responde 401.
func RequireAuth(issuer *jwtx.Issuer, cookieName string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerOrCookie(r, cookieName)
			if raw == "" {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireEditor exige rol EDITOR o ADMIN. Corre después de RequireAuth.
func RequireEditor() Middleware {
	return requireRole(func(c *jwtx.Claims) bool { return c.IsEditor() }, errors.ErrEditorRequired)
}

// RequireAdmin exige rol ADMIN. Corre después de RequireAuth.
func RequireAdmin() Middleware {
	return requireRole(func(c *jwtx.Claims) bool { return c.IsAdmin() }, errors.ErrAdminRequired)
}

func requireRole(allowed func(*jwtx.Claims) bool, failure *errors.AppError) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetClaims(r.Context())
			if claims == nil {
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			if !allowed(claims) {
				errors.WriteError(w, failure)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
