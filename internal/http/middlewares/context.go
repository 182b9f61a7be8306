package middlewares

import (
	"context"

	jwtx "github.com/sakhu-org/sakhu-backend/internal/jwt"
)

type ctxKeyRequestID struct{}
type ctxKeyClaims struct{}

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID{}, rid)
}

// GetRequestID devuelve el request id del contexto, o "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID{}).(string); ok {
		return v
	}
	return ""
}

// WithClaims inyecta las claims verificadas del caller.
func WithClaims(ctx context.Context, c *jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims{}, c)
}

// GetClaims devuelve las claims del contexto, o nil si el request no está
// autenticado.
func GetClaims(ctx context.Context) *jwtx.Claims {
	if v, ok := ctx.Value(ctxKeyClaims{}).(*jwtx.Claims); ok {
		return v
	}
	return nil
}

// GetUserID es un atajo sobre GetClaims.
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.UserID
	}
	return ""
}
